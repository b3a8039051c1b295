// Package mapping provides the application service that turns match requests
// into maximum common substructure searches.  It validates the graphs, merges
// per-request options over the configured defaults, consults the optional
// result cache and records metrics for every search it runs.
package mapping

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/domain/mcs"
	"github.com/asad/ReactionDecoder-sub002/internal/domain/molecule"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	prom "github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/prometheus"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	"github.com/asad/ReactionDecoder-sub002/pkg/types/common"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// Service defines the mapping operations.
type Service interface {
	// Match searches the query graph against the target graph.
	Match(ctx context.Context, req *mtypes.MatchRequest) (*mtypes.MatchResponse, error)

	// MatchMatrix searches every (query, target) combination concurrently.
	// Per-combination failures are reported in their cell; only invalid
	// options or an empty matrix fail the whole call.
	MatchMatrix(ctx context.Context, req *mtypes.MatrixRequest) (*mtypes.MatrixResponse, error)

	// Uncommon runs Match and reports, for every mapping, the connected
	// fragments of each graph left unmapped.
	Uncommon(ctx context.Context, req *mtypes.MatchRequest) (*mtypes.UncommonResponse, error)
}

// ResultCache memoizes match responses.  *redis.MatchCache satisfies it.
type ResultCache interface {
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (*mtypes.MatchResponse, error)) (*mtypes.MatchResponse, bool, error)
}

// cacheLabel names the result cache in metrics.
const cacheLabel = "match"

// Option customises the service.
type Option func(*serviceImpl)

// WithResultCache enables result caching.
func WithResultCache(c ResultCache) Option {
	return func(s *serviceImpl) { s.cache = c }
}

// WithMetrics enables search metrics.
func WithMetrics(m *prom.MCSMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// WithRunIDs replaces the uuid run id generator.
func WithRunIDs(next func() string) Option {
	return func(s *serviceImpl) { s.newRunID = next }
}

type serviceImpl struct {
	defaults    config.SearchConfig
	concurrency int
	cache       ResultCache
	metrics     *prom.MCSMetrics
	logger      logging.Logger
	newRunID    func() string
}

// NewService validates the search defaults and builds the service.
func NewService(search config.SearchConfig, worker config.WorkerConfig, logger logging.Logger, opts ...Option) (Service, error) {
	s := &serviceImpl{
		defaults:    search,
		concurrency: worker.Concurrency,
		logger:      logger,
		newRunID:    func() string { return string(common.NewID()) },
	}
	if s.concurrency < 1 {
		s.concurrency = config.DefaultWorkerConcurrency
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, _, err := resolveOptions(search, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Match
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Match(ctx context.Context, req *mtypes.MatchRequest) (*mtypes.MatchResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("match request is required")
	}
	start := time.Now()
	ro, eo, err := resolveOptions(s.defaults, req.Options)
	if err != nil {
		return nil, err
	}
	q, err := buildGraph("query", req.Query)
	if err != nil {
		return nil, err
	}
	t, err := buildGraph("target", req.Target)
	if err != nil {
		return nil, err
	}

	resp, err := s.matchGraphs(ctx, q, t, ro, eo)
	if err != nil {
		s.logger.Warn("match failed",
			logging.String(logging.FieldQueryID, q.ID()),
			logging.String(logging.FieldTargetID, t.ID()),
			logging.Err(err))
		return nil, err
	}
	resp.RunID = s.newRunID()
	logging.LogOperationDuration(s.logger, "match", start,
		logging.String(logging.FieldRunID, resp.RunID),
		logging.String(logging.FieldQueryID, resp.QueryID),
		logging.String(logging.FieldTargetID, resp.TargetID),
		logging.String(logging.FieldMode, ro.Mode),
		logging.Int("size", resp.Size),
		logging.Int("mappings", len(resp.Mappings)),
		logging.Bool("timeout", resp.Timeout),
		logging.Bool("cached", resp.Cached))
	return resp, nil
}

// matchGraphs runs one search through the cache when one is configured.
func (s *serviceImpl) matchGraphs(ctx context.Context, q, t *molecule.Molecule, ro resolvedOptions, eo mcs.Options) (*mtypes.MatchResponse, error) {
	if t.IsQuery() {
		return nil, errors.New(errors.ErrCodeQueryAsTarget, "a query graph cannot be used as the search target").
			WithDetail(t.Label())
	}
	compute := func(ctx context.Context) (*mtypes.MatchResponse, error) {
		return s.search(ctx, q, t, ro, eo)
	}
	if s.cache == nil {
		return compute(ctx)
	}

	key, err := cacheKey(q.ToDTO(), t.ToDTO(), ro)
	if err != nil {
		s.logger.Warn("cache key failed, searching without cache", logging.Err(err))
		return compute(ctx)
	}
	resp, hit, err := s.cache.GetOrCompute(ctx, key, compute)
	if err != nil {
		return nil, err
	}
	prom.RecordCacheAccess(s.metrics, cacheLabel, hit)
	return resp, nil
}

func (s *serviceImpl) search(ctx context.Context, q, t *molecule.Molecule, ro resolvedOptions, eo mcs.Options) (*mtypes.MatchResponse, error) {
	done := prom.TrackActive(s.metrics, ro.Mode)
	defer done()

	if s.defaults.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.defaults.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := mcs.FindMCS(ctx, q, t, eo)
	elapsed := time.Since(start)

	obs := prom.SearchObservation{Mode: ro.Mode, Duration: elapsed, Err: err}
	if res != nil {
		obs.CompatibilityNodes = res.Stats.CompatibilityNodes
		obs.CliqueTicks = res.Stats.CliqueTicks
		obs.ExtensionTicks = res.Stats.ExtensionTicks
		obs.Size = res.Size()
		obs.Timeout = res.Timeout
	}
	prom.RecordSearch(s.metrics, obs)
	if err != nil {
		return nil, err
	}
	if res.Timeout {
		s.logger.Debug("search budget exhausted",
			logging.String(logging.FieldQueryID, q.ID()),
			logging.String(logging.FieldTargetID, t.ID()),
			logging.Int64("clique_ticks", res.Stats.CliqueTicks),
			logging.Int64("extension_ticks", res.Stats.ExtensionTicks))
	}
	return toMatchResponse(q, t, mtypes.SearchMode(ro.Mode), res, elapsed), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Matrix
// ─────────────────────────────────────────────────────────────────────────────

type builtGraph struct {
	mol *molecule.Molecule
	err error
}

func (s *serviceImpl) MatchMatrix(ctx context.Context, req *mtypes.MatrixRequest) (*mtypes.MatrixResponse, error) {
	if req == nil || len(req.Queries) == 0 || len(req.Targets) == 0 {
		return nil, errors.InvalidParam("matrix needs at least one query and one target")
	}
	start := time.Now()
	ro, eo, err := resolveOptions(s.defaults, req.Options)
	if err != nil {
		return nil, err
	}

	queries := buildAll("query", req.Queries)
	targets := buildAll("target", req.Targets)
	runID := s.newRunID()
	log := s.logger.Named("matrix").With(logging.String(logging.FieldRunID, runID))

	nt := len(targets)
	cells := make([]mtypes.MatrixCell, len(queries)*nt)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i := range queries {
		for j := range targets {
			g.Go(func() error {
				cell := mtypes.MatrixCell{QueryIndex: i, TargetIndex: j}
				resp, err := s.matrixCell(ctx, queries[i], targets[j], ro, eo)
				if err != nil {
					log.Warn("matrix cell failed",
						logging.Int("query_index", i),
						logging.Int("target_index", j),
						logging.Err(err))
					cell.Error = common.NewErrorDetail(err)
				} else {
					resp.RunID = runID
					cell.Result = resp
				}
				cells[i*nt+j] = cell
				return nil
			})
		}
	}
	_ = g.Wait()

	out := &mtypes.MatrixResponse{RunID: runID, Cells: cells}
	for _, c := range cells {
		if c.Error != nil {
			out.Failed++
		}
	}
	logging.LogOperationDuration(log, "matrix", start,
		logging.String(logging.FieldMode, ro.Mode),
		logging.Int("queries", len(queries)),
		logging.Int("targets", nt),
		logging.Int("failed", out.Failed),
		logging.Int("concurrency", s.concurrency))
	return out, nil
}

func (s *serviceImpl) matrixCell(ctx context.Context, q, t builtGraph, ro resolvedOptions, eo mcs.Options) (*mtypes.MatchResponse, error) {
	if q.err != nil {
		return nil, q.err
	}
	if t.err != nil {
		return nil, t.err
	}
	return s.matchGraphs(ctx, q.mol, t.mol, ro, eo)
}

// ─────────────────────────────────────────────────────────────────────────────
// Uncommon substructure
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Uncommon(ctx context.Context, req *mtypes.MatchRequest) (*mtypes.UncommonResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("match request is required")
	}
	ro, eo, err := resolveOptions(s.defaults, req.Options)
	if err != nil {
		return nil, err
	}
	q, err := buildGraph("query", req.Query)
	if err != nil {
		return nil, err
	}
	t, err := buildGraph("target", req.Target)
	if err != nil {
		return nil, err
	}

	resp, err := s.matchGraphs(ctx, q, t, ro, eo)
	if err != nil {
		return nil, err
	}

	out := &mtypes.UncommonResponse{
		RunID:     s.newRunID(),
		Size:      resp.Size,
		Timeout:   resp.Timeout,
		Fragments: make([]mtypes.FragmentSetDTO, 0, len(resp.Mappings)),
	}
	for i, m := range resp.Mappings {
		mp, err := fromMappingDTO(q.AtomCount(), t.AtomCount(), m)
		if err != nil {
			return nil, err
		}
		qf, tf := mcs.UncommonSubstructure(q, t, mp)
		out.Fragments = append(out.Fragments, mtypes.FragmentSetDTO{
			MappingIndex: i,
			Query:        nonNil(qf),
			Target:       nonNil(tf),
		})
	}
	s.logger.Info("uncommon substructure computed",
		logging.String(logging.FieldRunID, out.RunID),
		logging.String(logging.FieldQueryID, q.ID()),
		logging.String(logging.FieldTargetID, t.ID()),
		logging.Int("mappings", len(out.Fragments)))
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Conversion helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildGraph(role string, d mtypes.MoleculeGraphDTO) (*molecule.Molecule, error) {
	m, err := molecule.FromDTO(d)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, fmt.Sprintf("invalid %s graph", role)).
			WithDetail(fmt.Sprintf("%s=%s", role, d.ID))
	}
	return m, nil
}

func buildAll(role string, ds []mtypes.MoleculeGraphDTO) []builtGraph {
	out := make([]builtGraph, len(ds))
	for i, d := range ds {
		out[i].mol, out[i].err = buildGraph(fmt.Sprintf("%s[%d]", role, i), d)
	}
	return out
}

func toMatchResponse(q, t *molecule.Molecule, mode mtypes.SearchMode, res *mcs.Result, elapsed time.Duration) *mtypes.MatchResponse {
	resp := &mtypes.MatchResponse{
		QueryID:  q.ID(),
		TargetID: t.ID(),
		Mode:     mode,
		Size:     res.Size(),
		Timeout:  res.Timeout,
		Mappings: make([]mtypes.MappingDTO, len(res.Mappings)),
		Stats: mtypes.SearchStatsDTO{
			QueryAtoms:         res.Stats.QueryAtoms,
			TargetAtoms:        res.Stats.TargetAtoms,
			CompatibilityNodes: res.Stats.CompatibilityNodes,
			CompatibilityEdges: res.Stats.CompatibilityEdges,
			Cliques:            res.Stats.Cliques,
			CliqueTicks:        res.Stats.CliqueTicks,
			ExtensionTicks:     res.Stats.ExtensionTicks,
		},
		DurationMS: elapsed.Milliseconds(),
	}
	for i, mp := range res.Mappings {
		pairs := mp.Pairs()
		dto := mtypes.MappingDTO{Pairs: make([]mtypes.PairDTO, len(pairs))}
		for k, p := range pairs {
			dto.Pairs[k] = mtypes.PairDTO{Query: p.Query, Target: p.Target}
		}
		if res.Scores != nil {
			sc := res.Scores[i]
			dto.Scores = &mtypes.ScoresDTO{Energy: sc.Energy, Fragments: sc.Fragments, Stereo: sc.Stereo}
		}
		resp.Mappings[i] = dto
	}
	return resp
}

func fromMappingDTO(nq, nt int, m mtypes.MappingDTO) (mcs.AtomMapping, error) {
	mp := mcs.NewAtomMapping(nq, nt)
	for _, p := range m.Pairs {
		if !mp.Put(p.Query, p.Target) {
			return mcs.AtomMapping{}, errors.Internal("stored mapping does not fit its graphs").
				WithDetail(fmt.Sprintf("pair=%d:%d", p.Query, p.Target))
		}
	}
	return mp, nil
}

func nonNil(fs [][]int) [][]int {
	if fs == nil {
		return [][]int{}
	}
	return fs
}

//Personal.AI order the ending
