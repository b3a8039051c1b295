package mcs

import (
	"fmt"
	"math"
	"strings"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// Filter names one chemical tie-break criterion.
type Filter int

const (
	// EnergyFilter keeps the mappings with the best bond-breaking energy.
	EnergyFilter Filter = iota + 1
	// FragmentFilter keeps the mappings leaving the fewest fragments.
	FragmentFilter
	// StereoFilter keeps the mappings with the most stereo agreements.
	StereoFilter
)

func (f Filter) String() string {
	switch f {
	case EnergyFilter:
		return "energy"
	case FragmentFilter:
		return "fragments"
	case StereoFilter:
		return "stereo"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// ParseFilter converts a configuration string into a Filter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "energy":
		return EnergyFilter, nil
	case "fragments", "fragment":
		return FragmentFilter, nil
	case "stereo":
		return StereoFilter, nil
	}
	return 0, errors.InvalidConfig("unknown ranking filter").WithDetail(s)
}

// Direction states whether lower or higher energy is preferred.
type Direction int

const (
	PreferLower Direction = iota
	PreferHigher
)

// scoreEpsilon absorbs floating-point noise when comparing energies.
const scoreEpsilon = 1e-6

// Scores are the tie-break values of one mapping.
type Scores struct {
	Energy    float64 `json:"energy"`
	Fragments int     `json:"fragments"`
	Stereo    int     `json:"stereo"`
}

// ScoredMapping pairs a retained mapping with its scores.
type ScoredMapping struct {
	Mapping AtomMapping
	Scores  Scores
}

// RankOptions selects the filters and their parameters.
type RankOptions struct {
	// Filters are applied in order; each narrows the survivors of the last.
	Filters         []Filter
	EnergyDirection Direction
	// Energies defaults to DefaultEnergyTable.
	Energies EnergyTable
	// Stereo defaults to DefaultStereoMatcher.
	Stereo StereoMatcher
}

// Rank scores every mapping and narrows the list with each requested filter
// in turn, keeping the best-scoring subset in its original relative order.
// Mapping sizes are never changed and ranking an already ranked list returns
// it unchanged.  With no filters every mapping is returned with its scores.
func Rank(q, t Graph, mappings []AtomMapping, opts RankOptions) []ScoredMapping {
	return rank(newTopology(q), newTopology(t), mappings, opts)
}

func rank(qt, tt *topology, mappings []AtomMapping, opts RankOptions) []ScoredMapping {
	if opts.Energies == nil {
		opts.Energies = DefaultEnergyTable
	}
	if opts.Stereo == nil {
		opts.Stereo = DefaultStereoMatcher
	}

	out := make([]ScoredMapping, len(mappings))
	for i, mp := range mappings {
		out[i] = ScoredMapping{Mapping: mp, Scores: score(qt, tt, mp, opts)}
	}
	for _, f := range opts.Filters {
		out = keepBest(out, f, opts.EnergyDirection)
	}
	return out
}

func score(qt, tt *topology, mp AtomMapping, opts RankOptions) Scores {
	return Scores{
		Energy:    bondBreakingEnergy(qt, tt, opts.Energies, mp),
		Fragments: fragmentCount(qt, tt, mp),
		Stereo:    stereoMatches(qt, tt, opts.Stereo, mp),
	}
}

// stereoMatches counts mapped atoms and conserved bonds whose stereo
// descriptors agree.
func stereoMatches(qt, tt *topology, match StereoMatcher, mp AtomMapping) int {
	n := 0
	for _, p := range mp.Pairs() {
		if match(qt.g, p.Query, tt.g, p.Target) {
			n++
		}
	}
	for qe, ends := range qt.ends {
		ta, ok1 := mp.Target(ends[0])
		tb, ok2 := mp.Target(ends[1])
		if !ok1 || !ok2 {
			continue
		}
		if te := tt.bondBetween(ta, tb); te >= 0 && qt.g.Bond(qe).Stereo == tt.g.Bond(te).Stereo {
			n++
		}
	}
	return n
}

// keepBest returns the entries of in achieving the best value under f.
func keepBest(in []ScoredMapping, f Filter, dir Direction) []ScoredMapping {
	if len(in) < 2 {
		return in
	}
	value := func(s Scores) float64 {
		switch f {
		case EnergyFilter:
			if dir == PreferHigher {
				return -s.Energy
			}
			return s.Energy
		case FragmentFilter:
			return float64(s.Fragments)
		case StereoFilter:
			return -float64(s.Stereo)
		}
		return 0
	}

	best := math.Inf(1)
	for _, sm := range in {
		if v := value(sm.Scores); v < best {
			best = v
		}
	}
	out := make([]ScoredMapping, 0, len(in))
	for _, sm := range in {
		if value(sm.Scores) <= best+scoreEpsilon {
			out = append(out, sm)
		}
	}
	return out
}
