package redis

import (
	"context"
	"time"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// matchKeyPrefix namespaces match results inside the cache prefix.
const matchKeyPrefix = "match:"

// uncacheable carries a response the loader refused to store.  Concurrent
// callers sharing the load receive the same error and so the same response.
type uncacheable struct {
	resp *mtypes.MatchResponse
}

func (u *uncacheable) Error() string { return "result not cacheable" }

// computeFailure carries the search error out of a shared load.
type computeFailure struct {
	err error
}

func (f *computeFailure) Error() string { return f.err.Error() }
func (f *computeFailure) Unwrap() error { return f.err }

// MatchCache stores finished match responses keyed by a request fingerprint.
// Responses that ran out of budget are returned but never stored, since a
// rerun may do better.
type MatchCache struct {
	cache  Cache
	ttl    time.Duration
	logger logging.Logger
}

func NewMatchCache(cache Cache, ttl time.Duration, log logging.Logger) *MatchCache {
	return &MatchCache{cache: cache, ttl: ttl, logger: log}
}

// GetOrCompute returns the stored response for key, or runs compute and stores
// its result.  The bool reports whether the response came from the cache.
// Cache failures degrade to calling compute directly.
func (m *MatchCache) GetOrCompute(
	ctx context.Context,
	key string,
	compute func(ctx context.Context) (*mtypes.MatchResponse, error),
) (*mtypes.MatchResponse, bool, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		resp, err := compute(ctx)
		if err != nil {
			return nil, &computeFailure{err: err}
		}
		if resp.Timeout {
			return nil, &uncacheable{resp: resp}
		}
		return resp, nil
	}

	var out mtypes.MatchResponse
	loaded, err := m.cache.GetOrLoad(ctx, matchKeyPrefix+key, &out, m.ttl, loader)
	var (
		skipped *uncacheable
		failed  *computeFailure
	)
	switch {
	case err == nil:
		out.Cached = !loaded
		return &out, !loaded, nil
	case errors.As(err, &skipped):
		return skipped.resp, false, nil
	case errors.As(err, &failed):
		return nil, false, failed.err
	}

	m.logger.Warn("Result cache unavailable, searching without it",
		logging.String("key", key), logging.Err(err))
	resp, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	return resp, false, nil
}

// Purge removes every stored match result.
func (m *MatchCache) Purge(ctx context.Context) (int64, error) {
	return m.cache.DeleteByPrefix(ctx, matchKeyPrefix)
}

//Personal.AI order the ending
