package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/schema"
)

// mockStore is an in-memory Store backed by plain slices. BulkLinkAuthors
// mutates the authors so that back-to-back runs see the persisted state.
type mockStore struct {
	authors     []schema.Author
	contribs    []schema.Contribution
	groups      []schema.AuthorGroup
	repoGroups  []schema.RepositoryGroup
	repoMembers map[int64][]int64
	providers   []schema.Provider

	linkCalls []schema.LinkSet
	saved     map[string]schema.Rollup
}

var _ store.Store = &mockStore{} // Compile-time check

func newMockStore() *mockStore {
	return &mockStore{saved: make(map[string]schema.Rollup)}
}

func (m *mockStore) ListProviders(context.Context) ([]schema.Provider, error) {
	return m.providers, nil
}

func (m *mockStore) ListAuthors(context.Context, int64) ([]schema.Author, error) {
	return append([]schema.Author(nil), m.authors...), nil
}

func (m *mockStore) ListMatchableAuthors(context.Context, int64) ([]schema.Author, error) {
	var out []schema.Author
	for _, a := range m.authors {
		if a.MatchableEmail() != "" {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockStore) ListParentAuthorIDs(context.Context, int64) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	for _, a := range m.authors {
		if a.IsParent() {
			ids[a.ID] = true
		}
	}
	return ids, nil
}

func (m *mockStore) ListDecidedAuthorIDs(context.Context, int64) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	for _, a := range m.authors {
		if a.ManuallyDecided() {
			ids[a.ID] = true
		}
	}
	return ids, nil
}

func (m *mockStore) BulkLinkAuthors(_ context.Context, set schema.LinkSet) (int64, error) {
	m.linkCalls = append(m.linkCalls, set)
	var updated int64
	for _, id := range set.MemberIDs {
		for i := range m.authors {
			if m.authors[i].ID == id {
				parent := set.ParentID
				m.authors[i].LinkedAuthorID = &parent
				m.authors[i].GroupID = nil
				updated++
			}
		}
	}
	return updated, nil
}

func (m *mockStore) ListAuthorGroups(context.Context, int64) ([]schema.AuthorGroup, error) {
	return m.groups, nil
}

func (m *mockStore) ListRepositoryGroups(context.Context, int64) ([]schema.RepositoryGroup, error) {
	return m.repoGroups, nil
}

func (m *mockStore) ListRepositoryGroupMembers(_ context.Context, groupID int64) ([]int64, error) {
	return m.repoMembers[groupID], nil
}

func (m *mockStore) ListContributions(context.Context, int64) ([]schema.Contribution, error) {
	return m.contribs, nil
}

func (m *mockStore) ListContributionsBetween(_ context.Context, _ int64, start, end time.Time) ([]schema.Contribution, error) {
	var out []schema.Contribution
	for _, c := range m.contribs {
		if !c.CommitDate.Before(start) && !c.CommitDate.After(end) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) SaveRollup(_ context.Context, target schema.RollupTarget, r schema.Rollup) error {
	kind, id := target.RollupRef()
	m.saved[fmt.Sprintf("%s:%d", kind, id)] = r
	return nil
}

func (m *mockStore) Status(context.Context) (schema.StoreStatus, error) {
	return schema.StoreStatus{Backend: "mock", Connected: true}, nil
}

func (m *mockStore) Close() error { return nil }

// TestResolveOrganizationIdentities links matching authors and is idempotent
// on the second run.
func TestResolveOrganizationIdentities(t *testing.T) {
	m := newMockStore()
	m.authors = []schema.Author{
		{ID: 1, OrganizationID: 1, Name: "ivan ivanov", Email: "ivan@x.com"},
		{ID: 2, OrganizationID: 1, Name: "Ivan Ivanov", Email: "ivan@y.com"},
		{ID: 3, OrganizationID: 1, Name: "Alice Smith", Email: "alice@q.com"},
		{ID: 4, OrganizationID: 1, Name: "No Email"},
	}

	ctx := context.Background()
	report, err := ResolveOrganizationIdentities(ctx, m, 1, false)
	require.NoError(t, err)

	assert.Equal(t, 3, report.AuthorsConsidered, "authors without emails are filtered")
	assert.Equal(t, 1, report.Components)
	require.Len(t, report.LinkSets, 1)
	assert.Equal(t, int64(2), report.LinkSets[0].ParentID, "best-scored name becomes parent")
	assert.Equal(t, []int64{1}, report.LinkSets[0].MemberIDs)
	assert.Equal(t, int64(1), report.RowsUpdated)

	// Second run: the linked member is decided now, nothing left to write.
	report, err = ResolveOrganizationIdentities(ctx, m, 1, false)
	require.NoError(t, err)
	assert.Empty(t, report.LinkSets)
	assert.Zero(t, report.RowsUpdated)
	assert.Equal(t, 1, report.SkippedDecided)
}

// TestResolveDryRun computes the plan without writing.
func TestResolveDryRun(t *testing.T) {
	m := newMockStore()
	m.authors = []schema.Author{
		{ID: 1, OrganizationID: 1, Name: "ivan ivanov", Email: "ivan@x.com"},
		{ID: 2, OrganizationID: 1, Name: "Ivan Ivanov", Email: "ivan@y.com"},
	}

	report, err := ResolveOrganizationIdentities(context.Background(), m, 1, true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	require.Len(t, report.LinkSets, 1)
	assert.Zero(t, report.RowsUpdated)
	assert.Empty(t, m.linkCalls, "dry run must not touch the store")
	assert.Nil(t, m.authors[0].LinkedAuthorID)
}

// TestResolveSplitSticky never relinks an operator-split author.
func TestResolveSplitSticky(t *testing.T) {
	m := newMockStore()
	m.authors = []schema.Author{
		{ID: 1, OrganizationID: 1, Name: "Ivan Ivanov", Email: "ivan@x.com"},
		{ID: 2, OrganizationID: 1, Name: "Ivan Ivanov", Email: "ivan@y.com", Split: true},
	}

	report, err := ResolveOrganizationIdentities(context.Background(), m, 1, false)
	require.NoError(t, err)

	assert.Empty(t, report.LinkSets, "a split member collapses the component below two")
	assert.Equal(t, 1, report.SkippedDecided)
	assert.Empty(t, m.linkCalls)
}

// TestResolveTooFewAuthors returns an empty report without store calls.
func TestResolveTooFewAuthors(t *testing.T) {
	m := newMockStore()
	m.authors = []schema.Author{{ID: 1, OrganizationID: 1, Email: "solo@x.com"}}

	report, err := ResolveOrganizationIdentities(context.Background(), m, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.AuthorsConsidered)
	assert.Zero(t, report.Components)
}

// TestRecomputeAggregates persists roll-ups at every granularity.
func TestRecomputeAggregates(t *testing.T) {
	parent := int64(1)
	groupID := int64(7)
	m := newMockStore()
	m.authors = []schema.Author{
		{ID: 1, OrganizationID: 1, Name: "Ivan", GroupID: &groupID},
		{ID: 2, OrganizationID: 1, Name: "Ivan alt", LinkedAuthorID: &parent},
		{ID: 3, OrganizationID: 1, Name: "Alice"},
	}
	m.contribs = []schema.Contribution{
		{AuthorID: 1, RepositoryID: 1, TotalLines: 50, AILines: 20},
		{AuthorID: 2, RepositoryID: 2, TotalLines: 50, AILines: 20},
		{AuthorID: 3, RepositoryID: 2, TotalLines: 100, AILines: 100, AIPureLines: 100},
	}
	m.groups = []schema.AuthorGroup{{ID: 7, OrganizationID: 1, Name: "Platform"}}
	m.repoGroups = []schema.RepositoryGroup{{ID: 5, OrganizationID: 1, Name: "Services"}}
	m.repoMembers = map[int64][]int64{5: {2}}

	report, err := RecomputeAggregates(context.Background(), m, 1, nil)
	require.NoError(t, err)

	// Parents only: author 2 is linked and gets no roll-up of its own.
	require.Len(t, report.AuthorRollups, 2)
	assert.Equal(t, int64(1), report.AuthorRollups[0].Author.ID)
	assert.Equal(t, 100, report.AuthorRollups[0].Rollup.TotalLines, "linked contributions fold into the parent")
	assert.Equal(t, 40, report.AuthorRollups[0].Rollup.PercentageAIOverall)

	require.Len(t, report.GroupRollups, 1)
	assert.Equal(t, 100, report.GroupRollups[0].Rollup.TotalLines)

	require.Len(t, report.RepoGroupRollups, 1)
	assert.Equal(t, 150, report.RepoGroupRollups[0].Rollup.TotalLines)

	// Author 3 has no group, so it lands in the synthetic bucket.
	assert.Equal(t, 100, report.Ungrouped.TotalLines)
	assert.Equal(t, 100, report.Ungrouped.PercentageAIOverall)

	assert.Contains(t, m.saved, "author:1")
	assert.Contains(t, m.saved, "author:3")
	assert.NotContains(t, m.saved, "author:2")
	assert.Contains(t, m.saved, "author_group:7")
	assert.Contains(t, m.saved, "repository_group:5")
}

// TestRecomputeAggregatesOverride skips persisting the caller-owned target.
func TestRecomputeAggregatesOverride(t *testing.T) {
	m := newMockStore()
	m.authors = []schema.Author{
		{ID: 1, OrganizationID: 1, Name: "Ivan"},
		{ID: 2, OrganizationID: 1, Name: "Alice"},
	}
	m.contribs = []schema.Contribution{
		{AuthorID: 1, TotalLines: 10, AILines: 5},
	}

	override := schema.Author{ID: 1}
	report, err := RecomputeAggregates(context.Background(), m, 1, &override)
	require.NoError(t, err)

	require.Len(t, report.AuthorRollups, 2)
	assert.Equal(t, 50, report.AuthorRollups[0].Rollup.PercentageAIOverall,
		"the override's roll-up is still computed and reported")
	assert.NotContains(t, m.saved, "author:1")
	assert.Contains(t, m.saved, "author:2")
}

// TestDailyTimeseries pulls the window from the store lazily.
func TestDailyTimeseries(t *testing.T) {
	m := newMockStore()
	m.contribs = []schema.Contribution{
		{AuthorID: 1, CommitDate: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), TotalLines: 10, AILines: 5},
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	seq, err := DailyTimeseries(context.Background(), m, 1, start, end)
	require.NoError(t, err)

	var points []schema.DailyRollup
	for p := range seq {
		points = append(points, p)
	}
	require.Len(t, points, 3)
	assert.Equal(t, 50, points[1].Rollup.PercentageAIOverall)
	assert.Zero(t, points[0].Rollup.TotalLines)
}
