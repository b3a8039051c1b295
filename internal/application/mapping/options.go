package mapping

import (
	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/domain/mcs"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// resolvedOptions is the fully merged, canonical option set of one request.
// It holds plain values only so that it can be fingerprinted.
type resolvedOptions struct {
	Mode                  string   `json:"mode"`
	Pivot                 string   `json:"pivot"`
	MatchBondOrder        bool     `json:"match_bond_order"`
	MatchRings            bool     `json:"match_rings"`
	MatchAtomType         bool     `json:"match_atom_type"`
	AllMaximal            bool     `json:"all_maximal"`
	Filters               []string `json:"filters"`
	EnergyDirection       string   `json:"energy_direction"`
	MaxCompatibilityNodes int      `json:"max_compatibility_nodes"`
	CliqueBudgetFactor    int64    `json:"clique_budget_factor"`
	ExtensionBudgetFactor int64    `json:"extension_budget_factor"`
	MaxIterations         int64    `json:"max_iterations"`
	MaxMappings           int      `json:"max_mappings"`
}

// resolveOptions layers the request overrides in o on top of the configured
// defaults.  Nil or zero request fields keep the default; a non-nil empty
// filter list disables ranking.
func resolveOptions(defaults config.SearchConfig, o *mtypes.MatchOptionsDTO) (resolvedOptions, mcs.Options, error) {
	r := resolvedOptions{
		Mode:                  defaults.Mode,
		Pivot:                 defaults.Pivot,
		MatchBondOrder:        defaults.BondOrderMatching(),
		MatchRings:            defaults.RingMatching(),
		MatchAtomType:         defaults.MatchAtomType,
		AllMaximal:            defaults.AllMaximal,
		Filters:               append([]string(nil), defaults.Filters...),
		EnergyDirection:       defaults.EnergyDirection,
		MaxCompatibilityNodes: defaults.MaxCompatibilityNodes,
		CliqueBudgetFactor:    defaults.CliqueBudgetFactor,
		ExtensionBudgetFactor: defaults.ExtensionBudgetFactor,
		MaxIterations:         defaults.MaxIterations,
		MaxMappings:           defaults.MaxMappings,
	}

	if o != nil {
		if err := o.Validate(); err != nil {
			return resolvedOptions{}, mcs.Options{}, errors.InvalidConfig("invalid match options").WithCause(err).WithDetail(err.Error())
		}
		if o.Mode != "" {
			r.Mode = string(o.Mode)
		}
		if o.Pivot != "" {
			r.Pivot = o.Pivot
		}
		if o.MatchBondOrder != nil {
			r.MatchBondOrder = *o.MatchBondOrder
		}
		if o.MatchRings != nil {
			r.MatchRings = *o.MatchRings
		}
		if o.MatchAtomType != nil {
			r.MatchAtomType = *o.MatchAtomType
		}
		if o.AllMaximal {
			r.AllMaximal = true
		}
		if o.Filters != nil {
			r.Filters = make([]string, len(o.Filters))
			for i, f := range o.Filters {
				r.Filters[i] = string(f)
			}
		}
		if o.PreferHigherEnergy {
			r.EnergyDirection = "higher"
		}
		if o.MaxIterations > 0 {
			r.MaxIterations = o.MaxIterations
		}
		if o.MaxMappings > 0 {
			r.MaxMappings = o.MaxMappings
		}
	}

	eo, err := r.engineOptions()
	if err != nil {
		return resolvedOptions{}, mcs.Options{}, err
	}
	r.Mode = eo.Mode.String()
	r.Pivot = eo.Pivot.String()
	return r, eo, nil
}

func (r resolvedOptions) engineOptions() (mcs.Options, error) {
	mode, err := mcs.ParseMode(r.Mode)
	if err != nil {
		return mcs.Options{}, err
	}
	pivot, ok := mcs.ParsePivotRule(r.Pivot)
	if !ok {
		return mcs.Options{}, errors.InvalidConfig("unknown pivot rule").WithDetail(r.Pivot)
	}

	rank := mcs.RankOptions{EnergyDirection: mcs.PreferLower}
	switch r.EnergyDirection {
	case "", "lower":
	case "higher":
		rank.EnergyDirection = mcs.PreferHigher
	default:
		return mcs.Options{}, errors.InvalidConfig("unknown energy direction").WithDetail(r.EnergyDirection)
	}
	for _, name := range r.Filters {
		f, err := mcs.ParseFilter(name)
		if err != nil {
			return mcs.Options{}, err
		}
		rank.Filters = append(rank.Filters, f)
	}

	eo := mcs.Options{
		MatchOptions: mcs.MatchOptions{
			MatchBondOrder: r.MatchBondOrder,
			MatchRings:     r.MatchRings,
			MatchAtomType:  r.MatchAtomType,
		},
		Mode:                  mode,
		Pivot:                 pivot,
		AllMaximal:            r.AllMaximal,
		MaxCompatibilityNodes: r.MaxCompatibilityNodes,
		CliqueBudgetFactor:    r.CliqueBudgetFactor,
		ExtensionBudgetFactor: r.ExtensionBudgetFactor,
		MaxIterations:         r.MaxIterations,
		MaxMappings:           r.MaxMappings,
		Rank:                  rank,
	}
	if err := eo.Validate(); err != nil {
		return mcs.Options{}, err
	}
	return eo, nil
}

//Personal.AI order the ending
