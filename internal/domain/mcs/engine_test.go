package mcs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

var allModes = []Mode{ModeCliqueExtend, ModeClique, ModeExtension}

func optionsFor(mode Mode) Options {
	opts := DefaultOptions()
	opts.Mode = mode
	return opts
}

func TestEngine_BenzeneIdentity(t *testing.T) {
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			opts := identityOptions()
			opts.Mode = mode
			q, tg := benzene(), benzene()

			res, err := FindMCS(context.Background(), q, tg, opts)
			require.NoError(t, err)
			requireValidResult(t, res, q, tg)
			assert.False(t, res.Timeout)
			assert.Equal(t, 6, res.Size())
			assert.Len(t, res.Mappings, 12, "six rotations times two reflections")
			for _, mp := range res.Mappings {
				assert.Equal(t, 6, ConservedBondCount(q, tg, mp))
			}
		})
	}
}

func TestEngine_PropaneInButane(t *testing.T) {
	want := []string{"{0:0 1:1 2:2}", "{0:1 1:2 2:3}", "{0:2 1:1 2:0}", "{0:3 1:2 2:1}"}
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			q, tg := propane(), butane()
			res, err := FindMCS(context.Background(), q, tg, optionsFor(mode))
			require.NoError(t, err)
			requireValidResult(t, res, q, tg)
			assert.False(t, res.Timeout)
			assert.Equal(t, 3, res.Size())
			assert.ElementsMatch(t, want, mappingStrings(res.Mappings))
		})
	}
}

func TestEngine_NoCommonElement(t *testing.T) {
	s := newGraph("S", "S").bond(0, 1, 1)
	o := newGraph("O", "O").bond(0, 1, 1)
	for _, mode := range allModes {
		res, err := FindMCS(context.Background(), s, o, optionsFor(mode))
		require.NoError(t, err)
		assert.Empty(t, res.Mappings, mode.String())
		assert.False(t, res.Timeout, mode.String())
		assert.Zero(t, res.Size())
	}
}

func TestEngine_SingleAtomFallback(t *testing.T) {
	q := newGraph("C")
	tg := chain("C", "", 2)
	res, err := FindMCS(context.Background(), q, tg, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"{0:0}", "{0:1}"}, mappingStrings(res.Mappings))
	assert.Zero(t, res.Stats.CompatibilityNodes)
}

func TestEngine_EmptyGraph(t *testing.T) {
	res, err := FindMCS(context.Background(), newGraph(), butane(), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Mappings)
	assert.False(t, res.Timeout)
	assert.Equal(t, 4, res.Stats.TargetAtoms)
}

func TestEngine_Symmetry(t *testing.T) {
	pairs := []struct {
		name string
		a, b *testGraph
	}{
		{"propane-butane", propane(), butane()},
		{"benzene-butane", benzene(), butane()},
		{"triangle-star", triangle(), star()},
		{"propene-butane", propene(), butane()},
	}
	for _, p := range pairs {
		for _, mode := range allModes {
			t.Run(fmt.Sprintf("%s/%s", p.name, mode), func(t *testing.T) {
				opts := optionsFor(mode)
				opts.MatchRings = false
				ab, err := FindMCS(context.Background(), p.a, p.b, opts)
				require.NoError(t, err)
				ba, err := FindMCS(context.Background(), p.b, p.a, opts)
				require.NoError(t, err)
				requireValidResult(t, ab, p.a, p.b)
				requireValidResult(t, ba, p.b, p.a)
				assert.Equal(t, ab.Size(), ba.Size())
			})
		}
	}
}

func TestEngine_TriangleAgainstStar(t *testing.T) {
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			q, tg := triangle(), star()
			opts := optionsFor(mode)
			opts.MatchBondOrder = false
			res, err := FindMCS(context.Background(), q, tg, opts)
			require.NoError(t, err)
			requireValidResult(t, res, q, tg)
			require.NotEmpty(t, res.Mappings)
			for _, mp := range res.Mappings {
				assert.LessOrEqual(t, ConservedBondCount(q, tg, mp), 2)
			}
		})
	}
}

func TestEngine_BudgetMonotonic(t *testing.T) {
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			q, tg := benzene(), benzene()
			full, err := FindMCS(context.Background(), q, tg, optionsFor(mode))
			require.NoError(t, err)
			require.False(t, full.Timeout)

			opts := optionsFor(mode)
			opts.MaxIterations = 1
			capped, err := FindMCS(context.Background(), q, tg, opts)
			require.NoError(t, err)
			requireValidResult(t, capped, q, tg)
			assert.True(t, capped.Timeout)
			assert.LessOrEqual(t, capped.Size(), full.Size())
		})
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := FindMCS(ctx, benzene(), benzene(), DefaultOptions())
	require.NoError(t, err, "cancellation is reported as a timeout")
	assert.True(t, res.Timeout)
}

func TestEngine_QueryAsTarget(t *testing.T) {
	pattern := newGraph(Wildcard, "O").bond(0, 1, 1)
	pattern.query = true

	_, err := FindMCS(context.Background(), butane(), pattern, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeQueryAsTarget))

	res, err := FindMCS(context.Background(), pattern, newGraph("N", "O").bond(0, 1, 1), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"{0:0 1:1}"}, mappingStrings(res.Mappings))
}

func TestEngine_NilGraphs(t *testing.T) {
	_, err := FindMCS(context.Background(), nil, butane(), DefaultOptions())
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSearchConfig))
	_, err = FindMCS(context.Background(), butane(), nil, DefaultOptions())
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSearchConfig))
}

func TestEngine_CompatibilityLimit(t *testing.T) {
	for _, mode := range allModes {
		opts := optionsFor(mode)
		opts.MaxCompatibilityNodes = 10
		_, err := FindMCS(context.Background(), benzene(), benzene(), opts)
		require.Error(t, err, mode.String())
		assert.True(t, errors.IsCode(err, errors.ErrCodeCompatibilityTooLarge), mode.String())
	}
}

func TestEngine_RankingAndCap(t *testing.T) {
	opts := DefaultOptions()
	opts.Rank.Filters = []Filter{FragmentFilter, EnergyFilter}
	opts.MaxMappings = 2

	q, tg := chain("C", "", 2), propene()
	opts.MatchBondOrder = false
	res, err := FindMCS(context.Background(), q, tg, opts)
	require.NoError(t, err)
	requireValidResult(t, res, q, tg)
	require.Len(t, res.Mappings, 2)
	require.Len(t, res.Scores, 2)
	for i, mp := range res.Mappings {
		_, onDouble := mp.Query(0)
		assert.True(t, onDouble, "lower energy keeps the C=C bond, mapping %d", i)
		assert.InDelta(t, 346.0, res.Scores[i].Energy, scoreEpsilon)
	}
}

func TestEngine_AllMaximalClique(t *testing.T) {
	q := newGraph("C", "C", "C", "C", "O").bond(0, 1, 1).bond(1, 2, 1).bond(3, 4, 1)
	tg := newGraph("C", "C", "C", "O").bond(0, 1, 1).bond(1, 2, 1).bond(2, 3, 1)

	opts := optionsFor(ModeClique)
	best, err := FindMCS(context.Background(), q, tg, opts)
	require.NoError(t, err)
	opts.AllMaximal = true
	all, err := FindMCS(context.Background(), q, tg, opts)
	require.NoError(t, err)

	assert.Greater(t, len(all.Mappings), len(best.Mappings))
	for _, mp := range all.Mappings {
		assert.True(t, mp.Injective())
	}
}

func TestEngine_CustomMatchers(t *testing.T) {
	opts := DefaultOptions()
	opts.Matchers = &Matchers{
		Atom: func(Graph, int, Graph, int) bool { return true },
		Bond: func(Graph, int, Graph, int) bool { return true },
	}
	s := newGraph("S", "S").bond(0, 1, 1)
	o := newGraph("O", "O").bond(0, 1, 1)
	res, err := FindMCS(context.Background(), s, o, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Size())

	opts.Matchers = &Matchers{Atom: opts.Matchers.Atom}
	_, err = NewEngine(opts)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSearchConfig))
}

func TestEngine_StatsRecorded(t *testing.T) {
	res, err := FindMCS(context.Background(), propane(), butane(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Stats{
		QueryAtoms:         3,
		TargetAtoms:        4,
		CompatibilityNodes: 6,
		CompatibilityEdges: 4,
		Cliques:            4,
		CliqueTicks:        res.Stats.CliqueTicks,
		ExtensionTicks:     res.Stats.ExtensionTicks,
	}, res.Stats)
	assert.Positive(t, res.Stats.CliqueTicks)
	assert.Positive(t, res.Stats.ExtensionTicks)
}

func TestNewEngine_FillsDefaultFactors(t *testing.T) {
	e, err := NewEngine(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCliqueBudgetFactor, e.Options().CliqueBudgetFactor)
	assert.Equal(t, DefaultExtensionBudgetFactor, e.Options().ExtensionBudgetFactor)
	assert.Equal(t, DefaultCliqueBudgetFactor*12, e.cliqueBudget(context.Background(), 3, 4).Limit())
	assert.Equal(t, DefaultExtensionBudgetFactor*7, e.extensionBudget(context.Background(), 3, 4).Limit())

	e, err = NewEngine(Options{MaxIterations: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.cliqueBudget(context.Background(), 3, 4).Limit())
	assert.Equal(t, int64(42), e.extensionBudget(context.Background(), 3, 4).Limit())
}

func TestOptions_Validate(t *testing.T) {
	cases := map[string]func(*Options){
		"mode":       func(o *Options) { o.Mode = Mode(9) },
		"pivot":      func(o *Options) { o.Pivot = PivotRule(9) },
		"nodes":      func(o *Options) { o.MaxCompatibilityNodes = -1 },
		"budget":     func(o *Options) { o.CliqueBudgetFactor = -1 },
		"iterations": func(o *Options) { o.MaxIterations = -5 },
		"mappings":   func(o *Options) { o.MaxMappings = -1 },
		"direction":  func(o *Options) { o.Rank.EnergyDirection = Direction(7) },
		"filter":     func(o *Options) { o.Rank.Filters = []Filter{Filter(0)} },
	}
	require.NoError(t, DefaultOptions().Validate())
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			err := opts.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err))
		})
	}
}

func TestOptions_ValidateNegativeLimits(t *testing.T) {
	cases := map[string]func(*Options){
		"max compatibility nodes must not be negative": func(o *Options) { o.MaxCompatibilityNodes = -1 },
		"search budgets must not be negative":          func(o *Options) { o.ExtensionBudgetFactor = -1 },
		"max mappings must not be negative":            func(o *Options) { o.MaxMappings = -3 },
	}
	for msg, mutate := range cases {
		opts := DefaultOptions()
		mutate(&opts)
		err := opts.Validate()
		require.Error(t, err, msg)
		assert.Contains(t, err.Error(), msg)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":              ModeCliqueExtend,
		"default":       ModeCliqueExtend,
		"clique_extend": ModeCliqueExtend,
		"CLIQUE":        ModeClique,
		"extension":     ModeExtension,
		"mcgregor":      ModeExtension,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("vf2")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidSearchConfig))
}

func TestEngine_ConcurrentSearches(t *testing.T) {
	e, err := NewEngine(identityOptions())
	require.NoError(t, err)

	done := make(chan *Result, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			res, err := e.Search(context.Background(), benzene(), benzene())
			if err != nil {
				done <- nil
				return
			}
			done <- res
		}()
	}
	for i := 0; i < cap(done); i++ {
		res := <-done
		require.NotNil(t, res)
		assert.Equal(t, 6, res.Size())
		assert.Len(t, res.Mappings, 12)
	}
}

// tailedK4 is a four-clique with one extra carbon hanging off atom 0.
func tailedK4() *testGraph {
	return newGraph("C", "C", "C", "C", "C").
		bond(0, 1, 1).bond(0, 2, 1).bond(0, 3, 1).bond(1, 2, 1).bond(1, 3, 1).bond(2, 3, 1).
		bond(0, 4, 1)
}

// k4AndChain holds a bare four-clique (atoms 0-3) and a separate five-carbon
// chain (atoms 4-8).
func k4AndChain() *testGraph {
	return newGraph("C", "C", "C", "C", "C", "C", "C", "C", "C").
		bond(0, 1, 1).bond(0, 2, 1).bond(0, 3, 1).bond(1, 2, 1).bond(1, 3, 1).bond(2, 3, 1).
		bond(4, 5, 1).bond(5, 6, 1).bond(6, 7, 1).bond(7, 8, 1)
}

func TestEngine_MoreAtomsBeatMoreBonds(t *testing.T) {
	// The shared four-clique conserves six bonds over four atoms; the shared
	// five-atom chain conserves only four bonds but maps more atoms.
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			q, tg := tailedK4(), k4AndChain()
			opts := optionsFor(mode)
			opts.MatchRings = false
			res, err := FindMCS(context.Background(), q, tg, opts)
			require.NoError(t, err)
			requireValidResult(t, res, q, tg)
			require.False(t, res.Timeout)
			assert.Equal(t, 5, res.Size())
			assert.Len(t, res.Mappings, 12, "six chains through the tail, each in two directions")
			for _, mp := range res.Mappings {
				assert.Equal(t, 4, ConservedBondCount(q, tg, mp))
				ti, ok := mp.Target(4)
				require.True(t, ok, "the tail is always mapped")
				assert.Contains(t, []int{4, 8}, ti, "the tail maps onto a chain end")
			}
		})
	}
}

func TestEngine_BudgetNeverGrowsSize(t *testing.T) {
	budgets := []int64{4096, 1024, 256, 64, 32, 16, 8, 4, 2, 1}
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			q, tg := tailedK4(), k4AndChain()
			opts := optionsFor(mode)
			opts.MatchRings = false
			full, err := FindMCS(context.Background(), q, tg, opts)
			require.NoError(t, err)
			require.False(t, full.Timeout)

			prev := full.Size()
			for _, b := range budgets {
				opts.MaxIterations = b
				res, err := FindMCS(context.Background(), q, tg, opts)
				require.NoError(t, err)
				requireValidResult(t, res, q, tg)
				assert.LessOrEqual(t, res.Size(), prev, "budget %d", b)
				if !res.Timeout {
					assert.Equal(t, full.Size(), res.Size(), "budget %d", b)
				}
				prev = res.Size()
			}
		})
	}
}
