package mcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtender(q, tg Graph, opts MatchOptions, limit int64) *extender {
	return newExtender(newTopology(q), newTopology(tg), NewMatchers(opts), NewSearchBudget(context.Background(), limit))
}

func TestExtender_GrowsFromSeed(t *testing.T) {
	x := newTestExtender(propane(), butane(), MatchOptions{}, 0)
	x.extend(mappingOf(3, 4, [2]int{0, 0}, [2]int{1, 1}))

	require.Equal(t, 1, x.results.len())
	assert.Equal(t, "{0:0 1:1 2:2}", x.results.items[0].String())
	assert.Equal(t, 3, x.best)
}

func TestExtender_DeadEndIsRecorded(t *testing.T) {
	x := newTestExtender(propane(), butane(), MatchOptions{}, 0)
	// Atom 1 of the query maps onto a chain end; the free query atom 2 has
	// nowhere to go.
	x.extend(mappingOf(3, 4, [2]int{0, 1}, [2]int{1, 0}))
	require.Equal(t, 1, x.results.len())
	assert.Equal(t, 2, x.best)
}

func TestExtender_SeedFromNodes(t *testing.T) {
	q, tg := propane(), butane()
	m := NewMatchers(MatchOptions{})
	qt, tt := newTopology(q), newTopology(tg)
	nodes, err := compatibleNodes(qt, tt, m, 0)
	require.NoError(t, err)

	x := newExtender(qt, tt, m, NewSearchBudget(context.Background(), 0))
	x.seedFromNodes(nodes)
	assert.False(t, x.budget.Exceeded())
	assert.ElementsMatch(t,
		[]string{"{0:0 1:1 2:2}", "{0:1 1:2 2:3}", "{0:2 1:1 2:0}", "{0:3 1:2 2:1}"},
		mappingStrings(x.results.items))
}

func TestExtender_BranchesOverCandidates(t *testing.T) {
	// Query C-C against a star: the free query atom may go to any leaf.
	x := newTestExtender(chain("C", "", 2), star(), MatchOptions{}, 0)
	x.extend(mappingOf(2, 4, [2]int{0, 0}))
	assert.ElementsMatch(t, []string{"{0:0 1:1}", "{0:0 1:2}", "{0:0 1:3}"}, mappingStrings(x.results.items))
}

func TestExtender_BudgetRecordsPartial(t *testing.T) {
	x := newTestExtender(benzene(), benzene(), MatchOptions{}, 2)
	x.extend(mappingOf(6, 6, [2]int{0, 0}, [2]int{1, 1}))
	assert.True(t, x.budget.Exceeded())
	require.NotZero(t, x.results.len())
	for _, mp := range x.results.items {
		assert.True(t, mp.Injective())
		assert.GreaterOrEqual(t, mp.Len(), 2)
	}
}

func TestExtender_SeenStateSkipsRepeats(t *testing.T) {
	x := newTestExtender(propane(), butane(), MatchOptions{}, 0)
	seed := mappingOf(3, 4, [2]int{0, 0}, [2]int{1, 1})
	x.extend(seed)
	used := x.budget.Used()
	x.extend(seed.Clone())
	assert.Equal(t, used+1, x.budget.Used(), "a repeated state costs one tick and no search")
	assert.Equal(t, 1, x.results.len())
}
