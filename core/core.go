// Package core has the batch entry points for identity resolution and
// roll-up aggregation. Each function loads what it needs from the store,
// runs the pure computation and persists the outcome. Callers serialize
// concurrent runs for the same organization.
package core

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/compasshq/compass/core/agg"
	"github.com/compasshq/compass/core/identity"
	"github.com/compasshq/compass/core/linking"
	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/schema"
)

// ResolveOrganizationIdentities runs one linking pass for the organization:
// it matches authors pairwise on normalized names and emails, elects a parent
// per connected component and bulk-links the remaining members to it.
// Authors with a durable decision (already linked, or split by an operator)
// are never touched again, which makes repeated runs idempotent. With dryRun
// set the plan is computed and reported but nothing is written.
func ResolveOrganizationIdentities(ctx context.Context, st store.Store, orgID int64, dryRun bool) (schema.LinkReport, error) {
	report := schema.LinkReport{OrganizationID: orgID, DryRun: dryRun}

	// 1. Load authors that carry a usable email, in id order.
	authors, err := st.ListMatchableAuthors(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load matchable authors: %w", err)
	}
	report.AuthorsConsidered = len(authors)
	if len(authors) < 2 {
		return report, nil
	}

	// 2. Normalize into committers and build matched components.
	committers := make([]*identity.Committer, 0, len(authors))
	for i := range authors {
		a := &authors[i]
		committers = append(committers, identity.NewCommitter(a.ID, a.Name, a.MatchableEmail()))
	}
	components := linking.BuildComponents(committers)

	// 3. Load current decision state and turn components into a write plan.
	parents, err := st.ListParentAuthorIDs(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load parent author ids: %w", err)
	}
	decided, err := st.ListDecidedAuthorIDs(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load decided author ids: %w", err)
	}

	planReport, plan := linking.BuildPlan(components, parents, decided)
	report.Components = planReport.Components
	report.SkippedDecided = planReport.SkippedDecided
	report.LinkSets = plan

	if dryRun {
		return report, nil
	}

	// 4. Apply each link set as one bulk update.
	for _, set := range plan {
		updated, err := st.BulkLinkAuthors(ctx, set)
		if err != nil {
			return report, fmt.Errorf("failed to apply link set for parent %d: %w", set.ParentID, err)
		}
		report.RowsUpdated += updated
	}
	return report, nil
}

// RecomputeAggregates rebuilds and persists the cached roll-ups for every
// parent author, author group and repository group in the organization, and
// computes the synthetic ungrouped bucket for display. When override
// identifies one of the targets, that target's roll-up is computed and
// reported but not saved here; the caller persists its own instance so
// in-flight edits are not clobbered.
func RecomputeAggregates(ctx context.Context, st store.Store, orgID int64, override schema.RollupTarget) (schema.AggregateReport, error) {
	report := schema.AggregateReport{OrganizationID: orgID}

	authors, err := st.ListAuthors(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load authors: %w", err)
	}
	contribs, err := st.ListContributions(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load contributions: %w", err)
	}
	byAuthor := agg.GroupByAuthor(contribs)

	// Parent authors: own contributions plus one level of linked authors.
	for i := range authors {
		a := authors[i]
		if !a.IsParent() {
			continue
		}
		a.Rollup = agg.Summarize(agg.ForAuthor(&a, byAuthor, authors))
		if err := saveUnlessOverridden(ctx, st, &a, a.Rollup, override); err != nil {
			return report, err
		}
		report.AuthorRollups = append(report.AuthorRollups, schema.AuthorRollup{Author: a, Rollup: a.Rollup})
	}

	// Author groups.
	groups, err := st.ListAuthorGroups(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load author groups: %w", err)
	}
	for i := range groups {
		g := groups[i]
		g.Rollup = agg.Summarize(agg.ForAuthorGroup(g.ID, byAuthor, authors))
		if err := saveUnlessOverridden(ctx, st, &g, g.Rollup, override); err != nil {
			return report, err
		}
		report.GroupRollups = append(report.GroupRollups, schema.GroupRollup{
			ID: g.ID, Name: g.Name, Kind: schema.AuthorGroupKind, Rollup: g.Rollup,
		})
	}

	// Repository groups.
	repoGroups, err := st.ListRepositoryGroups(ctx, orgID)
	if err != nil {
		return report, fmt.Errorf("failed to load repository groups: %w", err)
	}
	for i := range repoGroups {
		g := repoGroups[i]
		members, err := st.ListRepositoryGroupMembers(ctx, g.ID)
		if err != nil {
			return report, fmt.Errorf("failed to load members of repository group %d: %w", g.ID, err)
		}
		g.Rollup = agg.Summarize(agg.ForRepositories(members, contribs))
		if err := saveUnlessOverridden(ctx, st, &g, g.Rollup, override); err != nil {
			return report, err
		}
		report.RepoGroupRollups = append(report.RepoGroupRollups, schema.GroupRollup{
			ID: g.ID, Name: g.Name, Kind: schema.RepositoryGroupKind, Rollup: g.Rollup,
		})
	}

	// Ungrouped bucket is computed for display and never persisted.
	report.Ungrouped = agg.Summarize(agg.ForUngrouped(byAuthor, authors))
	return report, nil
}

// saveUnlessOverridden persists the roll-up except for the caller-owned
// override instance.
func saveUnlessOverridden(ctx context.Context, st store.Store, target schema.RollupTarget, r schema.Rollup, override schema.RollupTarget) error {
	if override != nil {
		overrideKind, overrideID := override.RollupRef()
		kind, id := target.RollupRef()
		if kind == overrideKind && id == overrideID {
			return nil
		}
	}
	if err := st.SaveRollup(ctx, target, r); err != nil {
		kind, id := target.RollupRef()
		return fmt.Errorf("failed to save %s roll-up for id %d: %w", kind, id, err)
	}
	return nil
}

// DailyTimeseries loads the organization's contributions inside the window
// and returns the gap-filled daily series.
func DailyTimeseries(ctx context.Context, st store.Store, orgID int64, start, end time.Time) (iter.Seq[schema.DailyRollup], error) {
	contribs, err := st.ListContributionsBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions for window: %w", err)
	}
	return agg.DailySeries(contribs, start, end), nil
}
