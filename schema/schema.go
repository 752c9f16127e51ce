package schema

import "time"

// Author is one identity as seen from one data provider within one
// organization. Authors are created by the ingestion pipeline; the linking
// service mutates LinkedAuthorID and GroupID in batch, and the aggregation
// engine overwrites the cached Rollup fields.
type Author struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	ProviderID     int64  `json:"provider_id"`
	ExternalID     string `json:"external_id"` // provider-native id; may carry an email for some providers
	Name           string `json:"name"`
	Email          string `json:"email"`
	Login          string `json:"login"`

	// LinkedAuthorID points to the canonical parent when this author has
	// been merged into another. An author with LinkedAuthorID set must have
	// GroupID unset: group membership only applies to parents.
	LinkedAuthorID *int64 `json:"linked_author_id,omitempty"`
	GroupID        *int64 `json:"group_id,omitempty"`

	// Split marks an author a human operator forced to stay independent.
	// The linking service must never auto-merge it again.
	Split bool `json:"split"`

	Rollup Rollup `json:"rollup"`
}

// IsParent reports whether the author is a canonical (non-linked) identity.
func (a *Author) IsParent() bool {
	return a.LinkedAuthorID == nil
}

// ManuallyDecided reports whether linking already made a durable decision
// for this author, either a merge or a split.
func (a *Author) ManuallyDecided() bool {
	return a.Split || a.LinkedAuthorID != nil
}

// MatchableEmail returns the email usable for identity matching: the genuine
// email field when present, otherwise an external id that carries an email.
// Returns "" for authors that can never be automatically linked.
func (a *Author) MatchableEmail() string {
	if a.Email != "" {
		return a.Email
	}
	if containsAt(a.ExternalID) {
		return a.ExternalID
	}
	return ""
}

func containsAt(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '@' {
			return true
		}
	}
	return false
}

// RollupRef identifies the author as a roll-up target.
func (a *Author) RollupRef() (EntityKind, int64) {
	return AuthorKind, a.ID
}

// AuthorGroup is a named collection of parent authors within an organization,
// carrying its own cached aggregate fields for team-level reporting.
type AuthorGroup struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	Rollup         Rollup `json:"rollup"`
}

// RollupRef identifies the group as a roll-up target.
func (g *AuthorGroup) RollupRef() (EntityKind, int64) {
	return AuthorGroupKind, g.ID
}

// RepositoryGroup is the repository analogue of AuthorGroup.
type RepositoryGroup struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	Rollup         Rollup `json:"rollup"`
}

// RollupRef identifies the group as a roll-up target.
func (g *RepositoryGroup) RollupRef() (EntityKind, int64) {
	return RepositoryGroupKind, g.ID
}

// RollupTarget is any entity that carries cached roll-up fields. It lets the
// aggregation engine substitute a just-edited instance mid-batch so that the
// surrounding transaction's in-memory copy is the one persisted.
type RollupTarget interface {
	RollupRef() (EntityKind, int64)
}

// Provider is one telemetry source (GitHub, BitBucket, Azure DevOps, ...).
type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Contribution is one per-author, per-commit, per-repository stat record.
// It is the raw fact the aggregation engine rolls up; written by the
// ingestion pipeline and read-only here. Absent optional counts are zero.
type Contribution struct {
	AuthorID          int64
	RepositoryID      int64
	CommitDate        time.Time
	TotalLines        int
	AILines           int
	AIBlendedLines    int
	AIPureLines       int
	NotEvaluatedFiles int
	NotEvaluatedLines int
}

// Rollup holds summed line counts and the percentages derived from them.
// Human lines are derived as total minus AI; PercentageAIPure is derived by
// subtraction from the rounded overall and blended percentages so that
// overall == pure + blended holds exactly.
type Rollup struct {
	TotalLines        int `json:"total_lines"`
	AILines           int `json:"ai_lines"`
	AIBlendedLines    int `json:"ai_blended_lines"`
	AIPureLines       int `json:"ai_pure_lines"`
	HumanLines        int `json:"human_lines"`
	NotEvaluatedFiles int `json:"not_evaluated_files"`
	NotEvaluatedLines int `json:"not_evaluated_lines"`

	PercentageAIOverall int `json:"pct_ai_overall"`
	PercentageAIBlended int `json:"pct_ai_blended"`
	PercentageAIPure    int `json:"pct_ai_pure"`
	PercentageHuman     int `json:"pct_human"`
}

// DailyRollup is one gap-filled day of a time-bucketed series.
type DailyRollup struct {
	Date   time.Time `json:"date"`
	Rollup Rollup    `json:"rollup"`
}

// AuthorRollup pairs a parent author with its freshly computed roll-up,
// for display and export.
type AuthorRollup struct {
	Author Author `json:"author"`
	Rollup Rollup `json:"rollup"`
}

// GroupRollup pairs a group name with its freshly computed roll-up.
type GroupRollup struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Kind   EntityKind `json:"kind"`
	Rollup Rollup     `json:"rollup"`
}

// LinkSet is one planned bulk update: every member gets LinkedAuthorID set
// to ParentID and its group cleared. The parent itself is never updated.
type LinkSet struct {
	ParentID  int64   `json:"parent_id"`
	MemberIDs []int64 `json:"member_ids"`
}

// LinkReport summarizes one linking run for operator display.
type LinkReport struct {
	OrganizationID    int64     `json:"organization_id"`
	AuthorsConsidered int       `json:"authors_considered"`
	Components        int       `json:"components"`
	LinkSets          []LinkSet `json:"link_sets"`
	SkippedDecided    int       `json:"skipped_decided"`
	RowsUpdated       int64     `json:"rows_updated"`
	DryRun            bool      `json:"dry_run"`
}

// AggregateReport summarizes one aggregation run.
type AggregateReport struct {
	OrganizationID   int64          `json:"organization_id"`
	AuthorRollups    []AuthorRollup `json:"author_rollups"`
	GroupRollups     []GroupRollup  `json:"group_rollups"`
	RepoGroupRollups []GroupRollup  `json:"repo_group_rollups"`
	Ungrouped        Rollup         `json:"ungrouped"`
}

// StoreStatus holds connectivity and size information about the store.
type StoreStatus struct {
	Backend    string           `json:"backend"`
	Connected  bool             `json:"connected"`
	TableSizes map[string]int64 `json:"table_sizes"`
}
