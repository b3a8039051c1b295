package mcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBond struct {
	a, b  int
	label BondLabel
}

// testGraph is a minimal in-memory Graph for engine tests.
type testGraph struct {
	atoms []AtomLabel
	bonds []testBond
	query bool
}

func newGraph(symbols ...string) *testGraph {
	g := &testGraph{}
	for _, s := range symbols {
		g.atoms = append(g.atoms, AtomLabel{Symbol: s})
	}
	return g
}

func (g *testGraph) bond(a, b, order int) *testGraph {
	g.bonds = append(g.bonds, testBond{a: a, b: b, label: BondLabel{Order: order}})
	return g
}

func (g *testGraph) AtomCount() int { return len(g.atoms) }
func (g *testGraph) BondCount() int { return len(g.bonds) }
func (g *testGraph) BondAtoms(e int) (int, int) { return g.bonds[e].a, g.bonds[e].b }
func (g *testGraph) Atom(i int) AtomLabel { return g.atoms[i] }
func (g *testGraph) Bond(e int) BondLabel { return g.bonds[e].label }
func (g *testGraph) IsQuery() bool { return g.query }

// chain builds an all-single-bond chain of n atoms of the given element.
func chain(symbol, atomType string, n int) *testGraph {
	g := &testGraph{}
	for i := 0; i < n; i++ {
		g.atoms = append(g.atoms, AtomLabel{Symbol: symbol, Type: atomType})
	}
	for i := 0; i+1 < n; i++ {
		g.bond(i, i+1, 1)
	}
	return g
}

func propane() *testGraph { return chain("C", "C.3", 3) }
func butane() *testGraph  { return chain("C", "C.3", 4) }

// benzene is a six-membered aromatic carbon ring in Kekulé form.
func benzene() *testGraph {
	g := &testGraph{}
	for i := 0; i < 6; i++ {
		g.atoms = append(g.atoms, AtomLabel{Symbol: "C", Type: "C.ar", Aromatic: true, InRing: true})
	}
	for i := 0; i < 6; i++ {
		g.bonds = append(g.bonds, testBond{
			a: i, b: (i + 1) % 6,
			label: BondLabel{Order: 1 + i%2, Aromatic: true, InRing: true},
		})
	}
	return g
}

func triangle() *testGraph {
	return newGraph("C", "C", "C").bond(0, 1, 1).bond(1, 2, 1).bond(2, 0, 1)
}

// star has centre atom 0 bonded to three leaves.
func star() *testGraph {
	return newGraph("C", "C", "C", "C").bond(0, 1, 1).bond(0, 2, 1).bond(0, 3, 1)
}

func identityOptions() Options {
	opts := DefaultOptions()
	opts.MatchAtomType = true
	opts.MatchBondOrder = true
	return opts
}

// requireValidResult checks every mapping for the invariants callers rely on.
func requireValidResult(t *testing.T, res *Result, q, tg Graph) {
	t.Helper()
	require.NotNil(t, res)
	limit := q.AtomCount()
	if tg.AtomCount() < limit {
		limit = tg.AtomCount()
	}
	size := res.Size()
	for i, mp := range res.Mappings {
		assert.True(t, mp.Injective(), "mapping %d is not injective: %s", i, mp)
		assert.LessOrEqual(t, mp.Len(), limit, "mapping %d exceeds size bound", i)
		assert.Equal(t, size, mp.Len(), "mapping %d differs in size", i)
		for _, p := range mp.Pairs() {
			assert.Less(t, p.Query, q.AtomCount())
			assert.Less(t, p.Target, tg.AtomCount())
		}
	}
	if res.Scores != nil {
		assert.Len(t, res.Scores, len(res.Mappings))
	}
}

func mappingStrings(ms []AtomMapping) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func mappingOf(nq, nt int, pairs ...[2]int) AtomMapping {
	m := NewAtomMapping(nq, nt)
	for _, p := range pairs {
		if !m.Put(p[0], p[1]) {
			panic("conflicting test mapping")
		}
	}
	return m
}
