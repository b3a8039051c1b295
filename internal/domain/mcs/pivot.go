package mcs

import "sort"

// PivotRule selects the deterministic order in which the clique enumerator
// branches on candidate nodes.
type PivotRule int

const (
	// DegreeOrder visits high-degree nodes first, ties broken by node id.
	DegreeOrder PivotRule = iota
	// IndexOrder visits nodes by ascending id.
	IndexOrder
)

func (r PivotRule) String() string {
	switch r {
	case DegreeOrder:
		return "degree"
	case IndexOrder:
		return "index"
	default:
		return "unknown"
	}
}

// ParsePivotRule converts a configuration string into a PivotRule.
func ParsePivotRule(s string) (PivotRule, bool) {
	switch s {
	case "", "degree":
		return DegreeOrder, true
	case "index":
		return IndexOrder, true
	}
	return DegreeOrder, false
}

// order returns every node id of g in branching order.
func (r PivotRule) order(g *CompatibilityGraph) []int {
	ids := make([]int, g.Size())
	for i := range ids {
		ids[i] = i
	}
	if r == DegreeOrder {
		deg := make([]int, len(ids))
		for i := range ids {
			deg[i] = g.Degree(i)
		}
		sort.SliceStable(ids, func(a, b int) bool {
			if deg[ids[a]] != deg[ids[b]] {
				return deg[ids[a]] > deg[ids[b]]
			}
			return ids[a] < ids[b]
		})
	}
	return ids
}
