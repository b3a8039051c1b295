// Package molecule defines the molecule-graph documents and the mapping
// request/response structures exchanged between the CLI, the application
// service and the result cache.  No domain logic lives here, only plain data
// types that are safe to import from any layer.
package molecule

import (
	"fmt"

	"github.com/asad/ReactionDecoder-sub002/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Graph documents
// ─────────────────────────────────────────────────────────────────────────────

// AtomDTO is one atom of a molecule graph document.  Ring and aromatic flags
// must already be perceived by whoever produced the document.
type AtomDTO struct {
	// Symbol is the element symbol, or "*" for a wildcard in query graphs.
	Symbol   string `json:"symbol"`
	Type     string `json:"type,omitempty"`
	Charge   int    `json:"charge,omitempty"`
	Aromatic bool   `json:"aromatic,omitempty"`
	InRing   bool   `json:"in_ring,omitempty"`
	Stereo   int    `json:"stereo,omitempty"`
}

// BondDTO is one bond, referring to atoms by their zero-based position in the
// Atoms slice.
type BondDTO struct {
	Begin    int  `json:"begin"`
	End      int  `json:"end"`
	Order    int  `json:"order"`
	Aromatic bool `json:"aromatic,omitempty"`
	InRing   bool `json:"in_ring,omitempty"`
	Stereo   int  `json:"stereo,omitempty"`
}

// MoleculeGraphDTO is the on-disk and over-the-wire form of a molecule graph.
type MoleculeGraphDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	// Query marks a pattern graph.  Pattern graphs may carry wildcard atoms
	// and are rejected in the target position.
	Query bool      `json:"query,omitempty"`
	Atoms []AtomDTO `json:"atoms"`
	Bonds []BondDTO `json:"bonds"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Enumerations
// ─────────────────────────────────────────────────────────────────────────────

// SearchMode names the sub-searches a request runs.
type SearchMode string

const (
	ModeCliqueExtend SearchMode = "clique_extend"
	ModeClique       SearchMode = "clique"
	ModeExtension    SearchMode = "extension"
)

// IsValid reports whether m is a known mode.  The empty string selects the
// configured default.
func (m SearchMode) IsValid() bool {
	switch m {
	case "", ModeCliqueExtend, ModeClique, ModeExtension:
		return true
	}
	return false
}

// RankFilter names a chemical tie-break filter.
type RankFilter string

const (
	FilterEnergy    RankFilter = "energy"
	FilterFragments RankFilter = "fragments"
	FilterStereo    RankFilter = "stereo"
)

// IsValid reports whether f is a known filter.
func (f RankFilter) IsValid() bool {
	switch f {
	case FilterEnergy, FilterFragments, FilterStereo:
		return true
	}
	return false
}

// OutputFormat selects how the CLI renders results.
type OutputFormat string

const (
	OutputJSON  OutputFormat = "json"
	OutputTable OutputFormat = "table"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	return f == OutputJSON || f == OutputTable
}

// ─────────────────────────────────────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────────────────────────────────────

// MatchOptionsDTO overrides the configured search defaults for one request.
// Nil pointer fields keep the default.
type MatchOptionsDTO struct {
	Mode           SearchMode   `json:"mode,omitempty"`
	Pivot          string       `json:"pivot,omitempty"`
	MatchBondOrder *bool        `json:"match_bond_order,omitempty"`
	MatchRings     *bool        `json:"match_rings,omitempty"`
	MatchAtomType  *bool        `json:"match_atom_type,omitempty"`
	AllMaximal     bool         `json:"all_maximal,omitempty"`
	Filters        []RankFilter `json:"filters,omitempty"`
	// PreferHigherEnergy inverts the energy filter.
	PreferHigherEnergy bool  `json:"prefer_higher_energy,omitempty"`
	MaxIterations      int64 `json:"max_iterations,omitempty"`
	MaxMappings        int   `json:"max_mappings,omitempty"`
}

// Validate checks enumerations and bounds.
func (o *MatchOptionsDTO) Validate() error {
	if o == nil {
		return nil
	}
	if !o.Mode.IsValid() {
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	for _, f := range o.Filters {
		if !f.IsValid() {
			return fmt.Errorf("unknown filter %q", f)
		}
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be >= 0")
	}
	if o.MaxMappings < 0 {
		return fmt.Errorf("max_mappings must be >= 0")
	}
	return nil
}

// MatchRequest asks for the MCS mappings of Query onto Target.
type MatchRequest struct {
	Query   MoleculeGraphDTO `json:"query"`
	Target  MoleculeGraphDTO `json:"target"`
	Options *MatchOptionsDTO `json:"options,omitempty"`
}

// MatrixRequest asks for every (query, target) combination.
type MatrixRequest struct {
	Queries []MoleculeGraphDTO `json:"queries"`
	Targets []MoleculeGraphDTO `json:"targets"`
	Options *MatchOptionsDTO   `json:"options,omitempty"`
}

// Validate rejects empty matrices.
func (r MatrixRequest) Validate() error {
	if len(r.Queries) == 0 || len(r.Targets) == 0 {
		return fmt.Errorf("matrix needs at least one query and one target")
	}
	return r.Options.Validate()
}

// ─────────────────────────────────────────────────────────────────────────────
// Responses
// ─────────────────────────────────────────────────────────────────────────────

// PairDTO is one query-atom to target-atom correspondence.
type PairDTO struct {
	Query  int `json:"query"`
	Target int `json:"target"`
}

// ScoresDTO carries the ranking values of one mapping.
type ScoresDTO struct {
	Energy    float64 `json:"energy"`
	Fragments int     `json:"fragments"`
	Stereo    int     `json:"stereo"`
}

// MappingDTO is one atom mapping, pairs ordered by query atom.
type MappingDTO struct {
	Pairs  []PairDTO  `json:"pairs"`
	Scores *ScoresDTO `json:"scores,omitempty"`
}

// SearchStatsDTO reports the work a search performed.
type SearchStatsDTO struct {
	QueryAtoms         int   `json:"query_atoms"`
	TargetAtoms        int   `json:"target_atoms"`
	CompatibilityNodes int   `json:"compatibility_nodes"`
	CompatibilityEdges int   `json:"compatibility_edges"`
	Cliques            int   `json:"cliques"`
	CliqueTicks        int64 `json:"clique_ticks"`
	ExtensionTicks     int64 `json:"extension_ticks"`
}

// MatchResponse is the outcome of one MatchRequest.
type MatchResponse struct {
	RunID    string     `json:"run_id"`
	QueryID  string     `json:"query_id,omitempty"`
	TargetID string     `json:"target_id,omitempty"`
	Mode     SearchMode `json:"mode"`
	// Size is the atom count shared by every mapping.
	Size int `json:"size"`
	// Timeout reports that the search budget ran out; the mappings are the
	// best found before it did.
	Timeout    bool           `json:"timeout"`
	Cached     bool           `json:"cached"`
	Mappings   []MappingDTO   `json:"mappings"`
	Stats      SearchStatsDTO `json:"stats"`
	DurationMS int64          `json:"duration_ms"`
}

// MatrixCell is the result, or the failure, of one matrix combination.
type MatrixCell struct {
	QueryIndex  int                 `json:"query_index"`
	TargetIndex int                 `json:"target_index"`
	Result      *MatchResponse      `json:"result,omitempty"`
	Error       *common.ErrorDetail `json:"error,omitempty"`
}

// MatrixResponse lists the cells in row-major order.
type MatrixResponse struct {
	RunID  string       `json:"run_id"`
	Cells  []MatrixCell `json:"cells"`
	Failed int          `json:"failed"`
}

// FragmentSetDTO lists the unmapped fragments of both graphs for one mapping.
type FragmentSetDTO struct {
	MappingIndex int     `json:"mapping_index"`
	Query        [][]int `json:"query"`
	Target       [][]int `json:"target"`
}

// UncommonResponse reports what each mapping leaves uncovered.
type UncommonResponse struct {
	RunID     string           `json:"run_id"`
	Size      int              `json:"size"`
	Timeout   bool             `json:"timeout"`
	Fragments []FragmentSetDTO `json:"fragments"`
}

//Personal.AI order the ending
