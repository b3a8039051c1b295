package mcs

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// CliqueOptions parameterises the clique enumerator.
type CliqueOptions struct {
	Pivot PivotRule
	// AllMaximal returns every maximal clique instead of only the heaviest
	// ones, and disables the bound.
	AllMaximal bool
	// Weight scores a maximal clique; only cliques of the highest weight are
	// kept.  Nil weighs a clique by its node count.
	Weight func(clique []int) int
	// Bound returns an upper bound on the weight of any clique made of r and
	// members of rest.  It must be consistent with Weight.  Nil uses
	// |r|+|rest|.
	Bound func(r []int, rest *bitset.BitSet) int
	// OnRecord is called with every clique as it is kept, in discovery
	// order, including cliques later superseded by a heavier one.
	OnRecord func(clique []int)
}

// CliqueResult is the outcome of one enumeration.
type CliqueResult struct {
	// Cliques holds sorted node-id sets in order of discovery.
	Cliques [][]int
	// Size is the highest clique weight observed.
	Size    int
	Timeout bool
}

// cliqueSearch is the state owned by one enumeration.  Nothing in it is shared
// with callers until FindCliques returns.
type cliqueSearch struct {
	g          *CompatibilityGraph
	budget     *SearchBudget
	order      []int
	allMaximal bool
	weight     func([]int) int
	bound      func([]int, *bitset.BitSet) int
	onRecord   func([]int)

	best  int
	found [][]int
	seen  map[string]struct{}
}

// FindCliques enumerates the cliques of g that are connected through
// continuation edges: every pair of members is adjacent by either relation and
// the continuation edges among them form a connected graph.  Each such clique
// is a connected common edge-subgraph of the two molecules.
//
// The search branches over (R, P, D, X): R the current clique, P the members
// of the common neighbourhood reachable from R by a continuation edge, D the
// members reachable only through disjoint edges, and X the nodes already
// explored by an earlier branch (split the same way into X and XD).  A D node
// is promoted to P as soon as an added node reaches it by a continuation edge.
// Branches whose bound over R, P and D cannot reach the best weight are cut;
// ties are still explored so every heaviest clique is reported.
//
// budget is ticked once per recursive call; when it runs out the cliques found
// so far are returned with Timeout set.
func FindCliques(g *CompatibilityGraph, budget *SearchBudget, opts CliqueOptions) CliqueResult {
	s := &cliqueSearch{
		g:          g,
		budget:     budget,
		order:      opts.Pivot.order(g),
		allMaximal: opts.AllMaximal,
		weight:     opts.Weight,
		bound:      opts.Bound,
		onRecord:   opts.OnRecord,
		seen:       make(map[string]struct{}),
	}

	n := uint(g.Size())
	explored := bitset.New(n)
	for _, u := range s.order {
		if budget.Exceeded() {
			break
		}
		c, d := g.cAdj[u], g.dAdj[u]
		s.expand([]int{u},
			c.Difference(explored),
			d.Difference(explored),
			c.Intersection(explored),
			d.Intersection(explored),
		)
		explored.Set(uint(u))
	}

	return CliqueResult{
		Cliques: s.found,
		Size:    s.best,
		Timeout: budget.Exceeded(),
	}
}

func (s *cliqueSearch) bounded(r []int, p, d *bitset.BitSet) bool {
	if s.allMaximal {
		return false
	}
	if s.bound == nil {
		return len(r)+int(p.Count())+int(d.Count()) < s.best
	}
	return s.bound(r, p.Union(d)) < s.best
}

func (s *cliqueSearch) expand(r []int, p, d, x, xd *bitset.BitSet) {
	if !s.budget.Tick() {
		return
	}
	if p.None() {
		if x.None() {
			s.record(r)
		}
		return
	}
	if s.bounded(r, p, d) {
		return
	}

	for _, u := range s.order {
		if !p.Test(uint(u)) {
			continue
		}
		if s.budget.Exceeded() {
			return
		}
		p.Clear(uint(u))

		nAll, nC, nD := s.g.adj[u], s.g.cAdj[u], s.g.dAdj[u]
		np := p.Intersection(nAll)
		np.InPlaceUnion(d.Intersection(nC))
		nd := d.Intersection(nD)
		nx := x.Intersection(nAll)
		nx.InPlaceUnion(xd.Intersection(nC))
		nxd := xd.Intersection(nD)

		s.expand(append(r[:len(r):len(r)], u), np, nd, nx, nxd)

		x.Set(uint(u))
		if s.bounded(r, p, d) {
			return
		}
	}
}

func (s *cliqueSearch) record(r []int) {
	k := len(r)
	if s.weight != nil {
		k = s.weight(r)
	}
	switch {
	case k > s.best:
		s.best = k
		if !s.allMaximal {
			s.found = nil
			s.seen = make(map[string]struct{})
		}
	case k < s.best && !s.allMaximal:
		return
	}

	c := append([]int(nil), r...)
	sort.Ints(c)
	key := cliqueKey(c)
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}
	s.found = append(s.found, c)
	if s.onRecord != nil {
		s.onRecord(c)
	}
}

func cliqueKey(c []int) string {
	var sb strings.Builder
	for i, id := range c {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}
