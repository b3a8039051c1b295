package mcs

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomMolecule builds a connected graph of n atoms drawn from C, N and O:
// a random spanning tree plus, half of the time, one ring-closing bond.  Ring
// flags on atoms and bonds are set from the closed cycle, so the graph has at
// most one ring.
func randomMolecule(rng *rand.Rand, n int) *testGraph {
	elements := []string{"C", "C", "N", "O"}
	g := &testGraph{}
	for i := 0; i < n; i++ {
		g.atoms = append(g.atoms, AtomLabel{Symbol: elements[rng.Intn(len(elements))]})
	}
	parent := make([]int, n)
	parent[0] = -1
	for i := 1; i < n; i++ {
		parent[i] = rng.Intn(i)
		order := 1
		if rng.Intn(4) == 0 {
			order = 2
		}
		g.bond(parent[i], i, order) // bond i-1 joins i to its parent
	}
	if n < 3 || rng.Intn(2) == 0 {
		return g
	}

	var a, b int
	for {
		a, b = rng.Intn(n), rng.Intn(n)
		if a != b && parent[a] != b && parent[b] != a {
			break
		}
	}
	ancestors := map[int]bool{}
	for v := a; v >= 0; v = parent[v] {
		ancestors[v] = true
	}
	lca := b
	for !ancestors[lca] {
		lca = parent[lca]
	}
	for _, end := range []int{a, b} {
		for v := end; v != lca; v = parent[v] {
			g.atoms[v].InRing = true
			g.bonds[v-1].label.InRing = true
		}
	}
	g.atoms[lca].InRing = true
	g.bond(a, b, 1)
	g.bonds[len(g.bonds)-1].label.InRing = true
	return g
}

// exhaustiveMCS returns the largest number of atoms in an injective mapping
// whose atoms all match and are connected through conserved matching bonds.
// It tries every partial assignment, so it is only usable on tiny graphs.
func exhaustiveMCS(q, tg Graph, m Matchers) int {
	nq, nt := q.AtomCount(), tg.AtomCount()
	tt := newTopology(tg)
	q2t := make([]int, nq)
	for i := range q2t {
		q2t[i] = -1
	}
	used := make([]bool, nt)

	connected := func(k int) bool {
		if k <= 1 {
			return true
		}
		root := make([]int, nq)
		for i := range root {
			root[i] = i
		}
		var find func(int) int
		find = func(v int) int {
			for root[v] != v {
				v = root[v]
			}
			return v
		}
		for e := 0; e < q.BondCount(); e++ {
			x, y := q.BondAtoms(e)
			if q2t[x] < 0 || q2t[y] < 0 {
				continue
			}
			te := tt.bondBetween(q2t[x], q2t[y])
			if te < 0 || !m.Bond(q, e, tg, te) {
				continue
			}
			root[find(x)] = find(y)
		}
		comp := -1
		for i, ti := range q2t {
			if ti < 0 {
				continue
			}
			if comp == -1 {
				comp = find(i)
			} else if find(i) != comp {
				return false
			}
		}
		return true
	}

	best := 0
	var assign func(i, k int)
	assign = func(i, k int) {
		if k+nq-i <= best {
			return
		}
		if i == nq {
			if connected(k) {
				best = k
			}
			return
		}
		for ti := 0; ti < nt; ti++ {
			if used[ti] || !m.Atom(q, i, tg, ti) {
				continue
			}
			q2t[i], used[ti] = ti, true
			assign(i+1, k+1)
			q2t[i], used[ti] = -1, false
		}
		assign(i+1, k)
	}
	assign(0, 0)
	return best
}

func TestEngine_RandomGraphsAgreeWithExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(20240611))
	budgets := []int64{256, 64, 16, 4, 1}

	for c := 0; c < 60; c++ {
		q := randomMolecule(rng, 3+rng.Intn(4))
		tg := randomMolecule(rng, 3+rng.Intn(4))
		want := exhaustiveMCS(q, tg, NewMatchers(DefaultOptions().MatchOptions))

		t.Run(fmt.Sprintf("case%02d", c), func(t *testing.T) {
			for _, mode := range allModes {
				opts := optionsFor(mode)
				full, err := FindMCS(context.Background(), q, tg, opts)
				require.NoError(t, err)
				requireValidResult(t, full, q, tg)
				require.False(t, full.Timeout, mode.String())
				assert.Equal(t, want, full.Size(), "%s: size against exhaustive search", mode)

				prev := full.Size()
				for _, b := range budgets {
					opts.MaxIterations = b
					res, err := FindMCS(context.Background(), q, tg, opts)
					require.NoError(t, err)
					requireValidResult(t, res, q, tg)
					assert.LessOrEqual(t, res.Size(), prev, "%s: budget %d grew the mapping", mode, b)
					if !res.Timeout {
						assert.Equal(t, want, res.Size(), "%s: budget %d finished short", mode, b)
					}
					prev = res.Size()
				}
			}
		})
	}
}

func TestRandomMolecule_RingFlags(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		g := randomMolecule(rng, 3+rng.Intn(4))
		ringBonds := 0
		for _, b := range g.bonds {
			if b.label.InRing {
				ringBonds++
				assert.True(t, g.atoms[b.a].InRing)
				assert.True(t, g.atoms[b.b].InRing)
			}
		}
		ringAtoms := 0
		for _, a := range g.atoms {
			if a.InRing {
				ringAtoms++
			}
		}
		assert.Equal(t, ringAtoms, ringBonds, "a single ring has as many bonds as atoms")
		if len(g.bonds) == len(g.atoms) {
			assert.GreaterOrEqual(t, ringBonds, 3)
		} else {
			assert.Zero(t, ringBonds)
		}
	}
}
