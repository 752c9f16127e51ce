// Package agg has roll-up logic for AI-vs-human contribution statistics.
package agg

import (
	"math"

	"github.com/compasshq/compass/schema"
)

// Summarize sums a collection of contributions and derives the percentage
// fields. The same derivation applies at every granularity, so author,
// group and daily roll-ups stay mutually consistent.
func Summarize(contribs []schema.Contribution) schema.Rollup {
	var r schema.Rollup
	for _, c := range contribs {
		r.TotalLines += c.TotalLines
		r.AILines += c.AILines
		r.AIBlendedLines += c.AIBlendedLines
		r.AIPureLines += c.AIPureLines
		r.NotEvaluatedFiles += c.NotEvaluatedFiles
		r.NotEvaluatedLines += c.NotEvaluatedLines
	}
	r.HumanLines = r.TotalLines - r.AILines
	derivePercentages(&r)
	return r
}

// derivePercentages fills the percentage fields from the summed counts.
// Overall and blended are rounded half-up independently; pure is derived by
// subtraction so that overall == pure + blended holds exactly, and human is
// the complement of overall.
func derivePercentages(r *schema.Rollup) {
	r.PercentageAIOverall = percentOf(r.AILines, r.TotalLines)
	r.PercentageAIBlended = percentOf(r.AIBlendedLines, r.TotalLines)
	r.PercentageAIPure = r.PercentageAIOverall - r.PercentageAIBlended
	r.PercentageHuman = 100 - r.PercentageAIOverall
}

// percentOf returns part/total as a whole percentage rounded half-up,
// and 0 when total is zero.
func percentOf(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(total)*100 + 0.5))
}

// ForAuthor collects the contributions counted toward one parent author:
// its own, plus those of every author linked to it. Linking always targets
// a true parent, so one level of indirection is enough.
func ForAuthor(author *schema.Author, byAuthor map[int64][]schema.Contribution, authors []schema.Author) []schema.Contribution {
	contribs := append([]schema.Contribution(nil), byAuthor[author.ID]...)
	for i := range authors {
		linked := authors[i].LinkedAuthorID
		if linked != nil && *linked == author.ID {
			contribs = append(contribs, byAuthor[authors[i].ID]...)
		}
	}
	return contribs
}

// ForAuthorGroup collects contributions from every parent author currently
// in the group, including their linked authors.
func ForAuthorGroup(groupID int64, byAuthor map[int64][]schema.Contribution, authors []schema.Author) []schema.Contribution {
	var contribs []schema.Contribution
	for i := range authors {
		a := &authors[i]
		if !a.IsParent() || a.GroupID == nil || *a.GroupID != groupID {
			continue
		}
		contribs = append(contribs, ForAuthor(a, byAuthor, authors)...)
	}
	return contribs
}

// ForUngrouped collects contributions from every parent author with no
// group assignment. The resulting pseudo-group is computed for display and
// never persisted.
func ForUngrouped(byAuthor map[int64][]schema.Contribution, authors []schema.Author) []schema.Contribution {
	var contribs []schema.Contribution
	for i := range authors {
		a := &authors[i]
		if !a.IsParent() || a.GroupID != nil {
			continue
		}
		contribs = append(contribs, ForAuthor(a, byAuthor, authors)...)
	}
	return contribs
}

// ForRepositories collects contributions belonging to any of the given
// repositories.
func ForRepositories(repoIDs []int64, contribs []schema.Contribution) []schema.Contribution {
	members := make(map[int64]bool, len(repoIDs))
	for _, id := range repoIDs {
		members[id] = true
	}
	var out []schema.Contribution
	for _, c := range contribs {
		if members[c.RepositoryID] {
			out = append(out, c)
		}
	}
	return out
}

// GroupByAuthor indexes contributions by author id.
func GroupByAuthor(contribs []schema.Contribution) map[int64][]schema.Contribution {
	byAuthor := make(map[int64][]schema.Contribution)
	for _, c := range contribs {
		byAuthor[c.AuthorID] = append(byAuthor[c.AuthorID], c)
	}
	return byAuthor
}
