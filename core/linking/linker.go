package linking

import (
	"github.com/compasshq/compass/core/identity"
	"github.com/compasshq/compass/schema"
)

// Component is one connected set of identities that the matcher considers
// the same human. ParentID is the member elected as the canonical identity.
type Component struct {
	MemberIDs []int64
	ParentID  int64
}

// BuildComponents runs the matcher pairwise over all identities and returns
// the connected components of the resulting graph, each with an elected
// parent. Identities that match nobody never form a component.
//
// The pairwise pass is O(N^2); per-organization author counts are small and
// this runs as a batch job, not on a request path.
func BuildComponents(committers []*identity.Committer) []Component {
	n := len(committers)
	uf := newUnionFind(n)
	matched := make([]bool, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if identity.Matches(committers[i], committers[j]) {
				uf.union(i, j)
				matched[i] = true
				matched[j] = true
			}
		}
	}

	// Collect members per root, preserving first-seen order. Traversal
	// order is the caller's load order, so ties in parent election resolve
	// the same way across runs as long as the load order is stable.
	memberIdx := make(map[int][]int)
	var roots []int
	for i := 0; i < n; i++ {
		if !matched[i] {
			continue
		}
		root := uf.find(i)
		if _, seen := memberIdx[root]; !seen {
			roots = append(roots, root)
		}
		memberIdx[root] = append(memberIdx[root], i)
	}

	components := make([]Component, 0, len(roots))
	for _, root := range roots {
		members := memberIdx[root]
		comp := Component{MemberIDs: make([]int64, 0, len(members))}
		for _, idx := range members {
			comp.MemberIDs = append(comp.MemberIDs, committers[idx].ID)
		}
		comp.ParentID = electParent(committers, members)
		components = append(components, comp)
	}
	return components
}

// electParent picks the member with the strictly-highest name score. Ties
// keep the first-seen candidate.
func electParent(committers []*identity.Committer, members []int) int64 {
	best := members[0]
	for _, idx := range members[1:] {
		if committers[idx].NameScore > committers[best].NameScore {
			best = idx
		}
	}
	return committers[best].ID
}

// BuildPlan turns components into the bulk updates to persist, honoring
// manual decisions. Members that are already manually decided (split, or
// previously linked) drop out of each component; components left with fewer
// than two members are skipped entirely. Re-running on fully linked data
// therefore produces an empty plan.
//
// parentIDs holds ids of authors currently without a linked parent;
// decidedIDs holds ids of authors that are split or already linked.
func BuildPlan(components []Component, parentIDs, decidedIDs map[int64]bool) (schema.LinkReport, []schema.LinkSet) {
	var report schema.LinkReport
	var plan []schema.LinkSet

	for _, comp := range components {
		remaining := make([]int64, 0, len(comp.MemberIDs))
		for _, id := range comp.MemberIDs {
			if decidedIDs[id] {
				report.SkippedDecided++
				continue
			}
			remaining = append(remaining, id)
		}
		if len(remaining) < 2 {
			continue
		}

		parent := choosePlanParent(comp.ParentID, remaining, parentIDs)
		members := make([]int64, 0, len(remaining)-1)
		for _, id := range remaining {
			if id != parent {
				members = append(members, id)
			}
		}
		plan = append(plan, schema.LinkSet{ParentID: parent, MemberIDs: members})
	}

	report.Components = len(components)
	report.LinkSets = plan
	return report, plan
}

// choosePlanParent prefers the elected parent when it is still in play,
// then any remaining member that is already a parent row (stable across
// re-runs), and finally falls back to the last remaining member.
func choosePlanParent(elected int64, remaining []int64, parentIDs map[int64]bool) int64 {
	for _, id := range remaining {
		if id == elected && parentIDs[id] {
			return id
		}
	}
	for _, id := range remaining {
		if parentIDs[id] {
			return id
		}
	}
	return remaining[len(remaining)-1]
}
