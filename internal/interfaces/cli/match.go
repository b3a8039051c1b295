package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// searchFlags are the per-run overrides of the configured search options.
// Only flags set on the command line reach the request.
type searchFlags struct {
	mode               string
	pivot              string
	bondOrder          bool
	rings              bool
	atomType           bool
	allMaximal         bool
	filters            []string
	noRanking          bool
	preferHigherEnergy bool
	maxIterations      int64
	maxMappings        int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.mode, "mode", "", "search mode: clique_extend, clique or extension")
	fs.StringVar(&f.pivot, "pivot", "", "clique pivot rule: degree or index")
	fs.BoolVar(&f.bondOrder, "bond-order", true, "require equal bond orders")
	fs.BoolVar(&f.rings, "rings", true, "require equal ring membership")
	fs.BoolVar(&f.atomType, "atom-type", false, "require equal atom types, not just element symbols")
	fs.BoolVar(&f.allMaximal, "all-maximal", false, "report every maximal clique, not only the largest (clique mode)")
	fs.StringSliceVar(&f.filters, "filters", nil, "ranking filters in order: energy, fragments, stereo")
	fs.BoolVar(&f.noRanking, "no-ranking", false, "disable ranking; mappings keep discovery order")
	fs.BoolVar(&f.preferHigherEnergy, "prefer-higher-energy", false, "rank higher bond-change energy first")
	fs.Int64Var(&f.maxIterations, "max-iterations", 0, "cap both sub-searches at this many steps")
	fs.IntVar(&f.maxMappings, "max-mappings", 0, "report at most this many mappings (0 = all)")
}

// options returns the request overrides, or nil when no flag was set.
func (f *searchFlags) options(cmd *cobra.Command) (*mtypes.MatchOptionsDTO, error) {
	fs := cmd.Flags()
	o := &mtypes.MatchOptionsDTO{}
	changed := false
	set := func(name string) bool {
		if fs.Changed(name) {
			changed = true
			return true
		}
		return false
	}

	if set("mode") {
		o.Mode = mtypes.SearchMode(f.mode)
	}
	if set("pivot") {
		o.Pivot = f.pivot
	}
	if set("bond-order") {
		o.MatchBondOrder = boolPtr(f.bondOrder)
	}
	if set("rings") {
		o.MatchRings = boolPtr(f.rings)
	}
	if set("atom-type") {
		o.MatchAtomType = boolPtr(f.atomType)
	}
	if set("all-maximal") {
		o.AllMaximal = f.allMaximal
	}
	if set("filters") {
		o.Filters = make([]mtypes.RankFilter, 0, len(f.filters))
		for _, name := range f.filters {
			o.Filters = append(o.Filters, mtypes.RankFilter(strings.TrimSpace(name)))
		}
	}
	if set("no-ranking") && f.noRanking {
		if len(o.Filters) > 0 {
			return nil, errors.InvalidParam("--no-ranking and --filters are mutually exclusive")
		}
		o.Filters = []mtypes.RankFilter{}
	}
	if set("prefer-higher-energy") {
		o.PreferHigherEnergy = f.preferHigherEnergy
	}
	if set("max-iterations") {
		o.MaxIterations = f.maxIterations
	}
	if set("max-mappings") {
		o.MaxMappings = f.maxMappings
	}

	if !changed {
		return nil, nil
	}
	return o, nil
}

func boolPtr(b bool) *bool { return &b }

// exactRefs validates the number of graph references.
func exactRefs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != len(names) {
			return errors.Newf(errors.CodeInvalidParam, "expected %d arguments (%s), got %d",
				len(names), strings.Join(names, ", "), len(args))
		}
		if len(names) > 1 && args[0] == args[1] && args[0] == "-" {
			return errors.InvalidParam("stdin can supply only one graph document")
		}
		return nil
	}
}

// loadPair reads the query and target graphs of a match request.
func loadPair(cmd *cobra.Command, app *App, queryRef, targetRef string, f *searchFlags) (*mtypes.MatchRequest, error) {
	opts, err := f.options(cmd)
	if err != nil {
		return nil, err
	}
	q, err := app.Graphs.FindByRef(cmd.Context(), queryRef)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "loading query graph").WithDetail(queryRef)
	}
	t, err := app.Graphs.FindByRef(cmd.Context(), targetRef)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "loading target graph").WithDetail(targetRef)
	}
	return &mtypes.MatchRequest{Query: q.ToDTO(), Target: t.ToDTO(), Options: opts}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// match
// ─────────────────────────────────────────────────────────────────────────────

func newMatchCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "match QUERY TARGET",
		Short: "Find the maximum common substructure mappings of QUERY onto TARGET",
		Long: "match reads one graph from each reference (a JSON file, - for stdin, or\n" +
			"s3://bucket/key) and reports every optimal atom mapping.",
		Args: exactRefs("QUERY", "TARGET"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			req, err := loadPair(cmd, app, args[0], args[1], f)
			if err != nil {
				return err
			}

			resp, err := app.Mapping.Match(cmd.Context(), req)
			if err != nil {
				return err
			}
			if resp.Timeout {
				app.Logger.Warn("search budget exhausted; reporting the best mappings found",
					logging.String(logging.FieldRunID, resp.RunID))
			}
			return PrintResult(cmd, app, resp, func(w io.Writer) { renderMatch(w, resp) })
		},
	}
	f.register(cmd)
	return cmd
}

func renderMatch(w io.Writer, resp *mtypes.MatchResponse) {
	fmt.Fprintf(w, "query=%s target=%s mode=%s size=%d mappings=%d timeout=%t cached=%t\n",
		resp.QueryID, resp.TargetID, resp.Mode, resp.Size, len(resp.Mappings), resp.Timeout, resp.Cached)

	rows := make([][]string, 0, len(resp.Mappings))
	for i, m := range resp.Mappings {
		energy, fragments, stereo := "-", "-", "-"
		if m.Scores != nil {
			energy = strconv.FormatFloat(m.Scores.Energy, 'f', 2, 64)
			fragments = strconv.Itoa(m.Scores.Fragments)
			stereo = strconv.Itoa(m.Scores.Stereo)
		}
		rows = append(rows, []string{strconv.Itoa(i), energy, fragments, stereo, formatPairs(m.Pairs)})
	}
	fmt.Fprint(w, FormatTable([]string{"#", "ENERGY", "FRAGMENTS", "STEREO", "PAIRS"}, rows))
}

func formatPairs(pairs []mtypes.PairDTO) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%d:%d", p.Query, p.Target)
	}
	return strings.Join(parts, " ")
}

// ─────────────────────────────────────────────────────────────────────────────
// uncommon
// ─────────────────────────────────────────────────────────────────────────────

func newUncommonCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "uncommon QUERY TARGET",
		Short: "List the fragments of each graph left unmapped by every MCS mapping",
		Args:  exactRefs("QUERY", "TARGET"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			req, err := loadPair(cmd, app, args[0], args[1], f)
			if err != nil {
				return err
			}

			resp, err := app.Mapping.Uncommon(cmd.Context(), req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, app, resp, func(w io.Writer) { renderUncommon(w, resp) })
		},
	}
	f.register(cmd)
	return cmd
}

func renderUncommon(w io.Writer, resp *mtypes.UncommonResponse) {
	fmt.Fprintf(w, "size=%d timeout=%t\n", resp.Size, resp.Timeout)
	rows := make([][]string, 0, len(resp.Fragments))
	for _, fs := range resp.Fragments {
		rows = append(rows, []string{strconv.Itoa(fs.MappingIndex), formatFragments(fs.Query), formatFragments(fs.Target)})
	}
	fmt.Fprint(w, FormatTable([]string{"#", "QUERY FRAGMENTS", "TARGET FRAGMENTS"}, rows))
}

func formatFragments(frags [][]int) string {
	if len(frags) == 0 {
		return "-"
	}
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = fmt.Sprint(f)
	}
	return strings.Join(parts, " ")
}

//Personal.AI order the ending
