package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/internal/domain/mcs"
	"github.com/asad/ReactionDecoder-sub002/internal/testutil"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

func TestResolveOptions_Defaults(t *testing.T) {
	r, eo, err := resolveOptions(defaultSearch(), nil)
	require.NoError(t, err)

	assert.Equal(t, "clique_extend", r.Mode)
	assert.Equal(t, "degree", r.Pivot)
	assert.True(t, r.MatchBondOrder)
	assert.True(t, r.MatchRings)
	assert.False(t, r.MatchAtomType)
	assert.Equal(t, []string{"energy", "fragments", "stereo"}, r.Filters)

	assert.Equal(t, mcs.ModeCliqueExtend, eo.Mode)
	assert.Equal(t, mcs.DegreeOrder, eo.Pivot)
	assert.Equal(t, []mcs.Filter{mcs.EnergyFilter, mcs.FragmentFilter, mcs.StereoFilter}, eo.Rank.Filters)
	assert.Equal(t, mcs.PreferLower, eo.Rank.EnergyDirection)
	assert.Nil(t, eo.Matchers)
}

func TestResolveOptions_Overrides(t *testing.T) {
	r, eo, err := resolveOptions(defaultSearch(), &mtypes.MatchOptionsDTO{
		Mode:               mtypes.ModeExtension,
		Pivot:              "index",
		MatchRings:         boolPtr(false),
		MatchAtomType:      boolPtr(true),
		Filters:            []mtypes.RankFilter{mtypes.FilterStereo},
		PreferHigherEnergy: true,
		MaxIterations:      500,
		MaxMappings:        3,
	})
	require.NoError(t, err)

	assert.Equal(t, "extension", r.Mode)
	assert.Equal(t, "index", r.Pivot)
	assert.False(t, eo.MatchRings)
	assert.True(t, eo.MatchBondOrder, "unset pointer keeps the default")
	assert.True(t, eo.MatchAtomType)
	assert.Equal(t, []mcs.Filter{mcs.StereoFilter}, eo.Rank.Filters)
	assert.Equal(t, mcs.PreferHigher, eo.Rank.EnergyDirection)
	assert.Equal(t, int64(500), eo.MaxIterations)
	assert.Equal(t, 3, eo.MaxMappings)
}

func TestResolveOptions_DoesNotAliasDefaults(t *testing.T) {
	defaults := defaultSearch()
	r, _, err := resolveOptions(defaults, nil)
	require.NoError(t, err)
	r.Filters[0] = "mutated"
	assert.Equal(t, "energy", defaults.Filters[0])
}

func TestCacheKey(t *testing.T) {
	base, _, err := resolveOptions(defaultSearch(), nil)
	require.NoError(t, err)
	other, _, err := resolveOptions(defaultSearch(), &mtypes.MatchOptionsDTO{Mode: mtypes.ModeClique})
	require.NoError(t, err)

	k1, err := cacheKey(testutil.Propane(), testutil.Butane(), base)
	require.NoError(t, err)
	k2, err := cacheKey(testutil.Propane(), testutil.Butane(), base)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Regexp(t, `^v1:[0-9a-f]{16}$`, k1)

	swapped, _ := cacheKey(testutil.Butane(), testutil.Propane(), base)
	assert.NotEqual(t, k1, swapped)
	withMode, _ := cacheKey(testutil.Propane(), testutil.Butane(), other)
	assert.NotEqual(t, k1, withMode)
}

//Personal.AI order the ending
