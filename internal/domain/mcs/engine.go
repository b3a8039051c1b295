package mcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// Mode selects which sub-searches an invocation runs.
type Mode int

const (
	// ModeCliqueExtend runs the clique search and extends the projection of
	// every clique as it is found.
	ModeCliqueExtend Mode = iota
	// ModeClique runs the clique search and projection only.
	ModeClique
	// ModeExtension grows mappings from every compatible bond pair without a
	// clique search.
	ModeExtension
)

func (m Mode) String() string {
	switch m {
	case ModeCliqueExtend:
		return "clique_extend"
	case ModeClique:
		return "clique"
	case ModeExtension:
		return "extension"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clique_extend", "default":
		return ModeCliqueExtend, nil
	case "clique":
		return ModeClique, nil
	case "extension", "mcgregor":
		return ModeExtension, nil
	}
	return 0, errors.InvalidConfig("unknown search mode").WithDetail(s)
}

// Budget factors applied when Options leaves them zero.
const (
	DefaultCliqueBudgetFactor    int64 = 5000
	DefaultExtensionBudgetFactor int64 = 10000
)

// Options configures one Engine.
type Options struct {
	MatchOptions

	Mode  Mode
	Pivot PivotRule

	// AllMaximal makes ModeClique return the projection of every maximal
	// clique rather than only the largest mappings.
	AllMaximal bool

	// MaxCompatibilityNodes rejects problems whose product graph would
	// exceed this many nodes.  Zero disables the limit.
	MaxCompatibilityNodes int

	// CliqueBudgetFactor scales the clique ceiling by |atoms(q)|·|atoms(t)|.
	CliqueBudgetFactor int64
	// ExtensionBudgetFactor scales the extension ceiling by
	// |atoms(q)|+|atoms(t)|.
	ExtensionBudgetFactor int64
	// MaxIterations, when positive, replaces both computed ceilings.
	MaxIterations int64

	// MaxMappings caps the returned list after ranking.  Zero keeps all.
	MaxMappings int

	Rank RankOptions

	// Matchers overrides the predicates derived from MatchOptions.
	Matchers *Matchers
}

// DefaultOptions returns element, bond-order and ring sensitive matching in
// clique-then-extend mode.
func DefaultOptions() Options {
	return Options{
		MatchOptions: MatchOptions{
			MatchBondOrder: true,
			MatchRings:     true,
		},
		Mode:                  ModeCliqueExtend,
		Pivot:                 DegreeOrder,
		CliqueBudgetFactor:    DefaultCliqueBudgetFactor,
		ExtensionBudgetFactor: DefaultExtensionBudgetFactor,
	}
}

// Validate rejects option sets that cannot drive a search.
func (o Options) Validate() error {
	switch {
	case o.Mode < ModeCliqueExtend || o.Mode > ModeExtension:
		return errors.InvalidConfig("unknown search mode").WithDetail(o.Mode.String())
	case o.Pivot != DegreeOrder && o.Pivot != IndexOrder:
		return errors.InvalidConfig("unknown pivot rule").WithDetail(o.Pivot.String())
	case o.MaxCompatibilityNodes < 0:
		return errors.InvalidConfig("max compatibility nodes must not be negative")
	case o.CliqueBudgetFactor < 0 || o.ExtensionBudgetFactor < 0 || o.MaxIterations < 0:
		return errors.InvalidConfig("search budgets must not be negative")
	case o.MaxMappings < 0:
		return errors.InvalidConfig("max mappings must not be negative")
	case o.Rank.EnergyDirection != PreferLower && o.Rank.EnergyDirection != PreferHigher:
		return errors.InvalidConfig("unknown energy direction")
	case o.Matchers != nil && (o.Matchers.Atom == nil || o.Matchers.Bond == nil):
		return errors.InvalidConfig("custom matchers need both an atom and a bond predicate")
	}
	for _, f := range o.Rank.Filters {
		if f < EnergyFilter || f > StereoFilter {
			return errors.InvalidConfig("unknown ranking filter").WithDetail(f.String())
		}
	}
	return nil
}

// Stats describes the work one search performed.
type Stats struct {
	QueryAtoms         int   `json:"query_atoms"`
	TargetAtoms        int   `json:"target_atoms"`
	CompatibilityNodes int   `json:"compatibility_nodes"`
	CompatibilityEdges int   `json:"compatibility_edges"`
	Cliques            int   `json:"cliques"`
	CliqueTicks        int64 `json:"clique_ticks"`
	ExtensionTicks     int64 `json:"extension_ticks"`
}

// Result is the published outcome of one search.  It is immutable once
// returned.
type Result struct {
	// Mappings are all of the same size, in order of discovery unless
	// ranking narrowed them.
	Mappings []AtomMapping
	// Scores parallels Mappings when ranking filters were requested.
	Scores []Scores
	// Timeout reports that a search budget ran out; Mappings then hold the
	// best found before it did.
	Timeout bool
	Stats   Stats
}

// Size returns the atom count of the mappings, or zero.
func (r *Result) Size() int {
	if r == nil || len(r.Mappings) == 0 {
		return 0
	}
	return r.Mappings[0].Len()
}

// Engine runs maximum common substructure searches.  An Engine holds only its
// options and may be shared by concurrent callers; every Search owns its own
// state.
//
// Known limitation: the searches reason over bond adjacency.  A triangle and
// a three-pointed star have identical bond adjacency (every bond touches every
// other), so under bond-only matching their compatibility graph contains a
// clique pairing all three bonds even though no atom mapping conserves more
// than two.  The projector drops the contradicting pair, so the reported
// mapping is a consistent three-atom path, never a claimed isomorphism.
type Engine struct {
	opts     Options
	matchers Matchers
}

// NewEngine validates opts and returns an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.CliqueBudgetFactor == 0 {
		opts.CliqueBudgetFactor = DefaultCliqueBudgetFactor
	}
	if opts.ExtensionBudgetFactor == 0 {
		opts.ExtensionBudgetFactor = DefaultExtensionBudgetFactor
	}
	e := &Engine{opts: opts, matchers: NewMatchers(opts.MatchOptions)}
	if opts.Matchers != nil {
		e.matchers = *opts.Matchers
	}
	return e, nil
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// FindMCS is a one-shot helper around NewEngine and Search.
func FindMCS(ctx context.Context, q, t Graph, opts Options) (*Result, error) {
	e, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}
	return e.Search(ctx, q, t)
}

func (e *Engine) cliqueBudget(ctx context.Context, nq, nt int) *SearchBudget {
	if e.opts.MaxIterations > 0 {
		return NewSearchBudget(ctx, e.opts.MaxIterations)
	}
	return NewSearchBudget(ctx, e.opts.CliqueBudgetFactor*int64(nq)*int64(nt))
}

func (e *Engine) extensionBudget(ctx context.Context, nq, nt int) *SearchBudget {
	if e.opts.MaxIterations > 0 {
		return NewSearchBudget(ctx, e.opts.MaxIterations)
	}
	return NewSearchBudget(ctx, e.opts.ExtensionBudgetFactor*int64(nq+nt))
}

// Search finds the maximum common substructure mappings of q onto t.
//
// A nil graph or a query-typed target is a configuration error returned
// before any work starts.  An empty graph, or graphs without any matching
// atom, yield an empty Result.  Budget exhaustion and context cancellation
// are reported through Result.Timeout, never as an error.
func (e *Engine) Search(ctx context.Context, q, t Graph) (*Result, error) {
	if q == nil || t == nil {
		return nil, errors.InvalidConfig("query and target graphs are required")
	}
	if t.IsQuery() {
		return nil, errors.New(errors.ErrCodeQueryAsTarget, "a query graph cannot be used as the search target")
	}

	nq, nt := q.AtomCount(), t.AtomCount()
	res := &Result{Stats: Stats{QueryAtoms: nq, TargetAtoms: nt}}
	if nq == 0 || nt == 0 {
		return res, nil
	}

	qt, tt := newTopology(q), newTopology(t)
	candidates, err := e.search(ctx, qt, tt, res)
	if err != nil {
		return nil, err
	}

	if !(e.opts.AllMaximal && e.opts.Mode == ModeClique) {
		candidates = largest(candidates)
	}
	for _, mp := range candidates {
		if !mp.Injective() {
			return nil, errors.Internal("search produced a non-injective mapping").WithDetail(mp.String())
		}
	}

	if len(e.opts.Rank.Filters) > 0 {
		scored := rank(qt, tt, candidates, e.opts.Rank)
		candidates = make([]AtomMapping, len(scored))
		res.Scores = make([]Scores, len(scored))
		for i, sm := range scored {
			candidates[i] = sm.Mapping
			res.Scores[i] = sm.Scores
		}
	}
	if e.opts.MaxMappings > 0 && len(candidates) > e.opts.MaxMappings {
		candidates = candidates[:e.opts.MaxMappings]
		if res.Scores != nil {
			res.Scores = res.Scores[:e.opts.MaxMappings]
		}
	}
	res.Mappings = candidates
	return res, nil
}

func (e *Engine) search(ctx context.Context, qt, tt *topology, res *Result) ([]AtomMapping, error) {
	nq, nt := qt.g.AtomCount(), tt.g.AtomCount()

	if e.opts.Mode == ModeExtension {
		nodes, err := compatibleNodes(qt, tt, e.matchers, e.opts.MaxCompatibilityNodes)
		if err != nil {
			return nil, err
		}
		res.Stats.CompatibilityNodes = len(nodes)
		if len(nodes) == 0 {
			return atomPairMappings(qt, tt, e.matchers), nil
		}
		budget := e.extensionBudget(ctx, nq, nt)
		ext := newExtender(qt, tt, e.matchers, budget)
		ext.seedFromNodes(nodes)
		res.Stats.ExtensionTicks = budget.Used()
		res.Timeout = budget.Exceeded()
		return ext.results.items, nil
	}

	cg, err := buildCompatibilityGraph(qt, tt, e.matchers, e.opts.MaxCompatibilityNodes)
	if err != nil {
		return nil, err
	}
	res.Stats.CompatibilityNodes = cg.Size()
	res.Stats.CompatibilityEdges = len(cg.Edges)
	if cg.Size() == 0 {
		return atomPairMappings(qt, tt, e.matchers), nil
	}

	proj := &projector{qt: qt, tt: tt, g: cg, m: e.matchers}
	copts := CliqueOptions{
		Pivot:      e.opts.Pivot,
		AllMaximal: e.opts.AllMaximal,
		Weight:     proj.weight,
		Bound:      atomBound(qt, tt, cg),
	}

	// Extension runs as each clique is kept, so a larger budget only ever
	// continues the run a smaller one cut short.
	var (
		eb  *SearchBudget
		ext *extender
	)
	if e.opts.Mode == ModeCliqueExtend {
		eb = e.extensionBudget(ctx, nq, nt)
		ext = newExtender(qt, tt, e.matchers, eb)
		copts.OnRecord = func(c []int) {
			for _, mp := range proj.project(c) {
				ext.extend(mp)
			}
		}
	}

	cb := e.cliqueBudget(ctx, nq, nt)
	cr := FindCliques(cg, cb, copts)
	res.Stats.Cliques = len(cr.Cliques)
	res.Stats.CliqueTicks = cb.Used()
	res.Timeout = cr.Timeout

	if ext != nil {
		res.Stats.ExtensionTicks = eb.Used()
		res.Timeout = res.Timeout || eb.Exceeded()
		return ext.results.items, nil
	}

	projected := newMappingSet()
	for _, c := range cr.Cliques {
		for _, mp := range proj.project(c) {
			projected.add(mp)
		}
	}
	return projected.items, nil
}

// atomBound caps the atoms any clique drawn from r and rest can map: the
// distinct query atoms its bonds touch, or the distinct target atoms,
// whichever is fewer.
func atomBound(qt, tt *topology, cg *CompatibilityGraph) func([]int, *bitset.BitSet) int {
	qs := bitset.New(uint(qt.g.AtomCount()))
	ts := bitset.New(uint(tt.g.AtomCount()))
	mark := func(id int) {
		n := cg.Nodes[id]
		qa, qb := qt.g.BondAtoms(n.QueryBond)
		ta, tb := tt.g.BondAtoms(n.TargetBond)
		qs.Set(uint(qa)).Set(uint(qb))
		ts.Set(uint(ta)).Set(uint(tb))
	}
	return func(r []int, rest *bitset.BitSet) int {
		qs.ClearAll()
		ts.ClearAll()
		for _, id := range r {
			mark(id)
		}
		for i, ok := rest.NextSet(0); ok; i, ok = rest.NextSet(i + 1) {
			mark(int(i))
		}
		return int(min(qs.Count(), ts.Count()))
	}
}

// largest keeps the mappings of maximum size, preserving order.
func largest(in []AtomMapping) []AtomMapping {
	best := 0
	for _, mp := range in {
		if mp.Len() > best {
			best = mp.Len()
		}
	}
	if best == 0 {
		return nil
	}
	out := make([]AtomMapping, 0, len(in))
	for _, mp := range in {
		if mp.Len() == best {
			out = append(out, mp)
		}
	}
	return out
}
