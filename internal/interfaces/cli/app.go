package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/asad/ReactionDecoder-sub002/internal/application/mapping"
	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/database/redis"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	prom "github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/prometheus"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/storage/graphstore"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/storage/minio"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// App carries the initialised dependencies through the command tree.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Graphs  *graphstore.Repository
	Mapping mapping.Service
	Output  mtypes.OutputFormat

	// Optional infrastructure, nil unless enabled in configuration.
	Cache     *redis.MatchCache
	Collector prom.MetricsCollector
	Metrics   *prom.MCSMetrics
	redis     *redis.Client
	objects   *minio.Client
}

// loadConfig merges defaults, the config file, MCSMAP_* variables and the
// global flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts RootOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if opts.LogLevel != "" {
		overrides["log.level"] = opts.LogLevel
	}
	if opts.Verbose {
		overrides["log.level"] = "debug"
	}
	if cmd.Flags().Changed("timeout") {
		overrides["search.timeout"] = opts.Timeout
	}

	loadOpts := []config.LoadOption{config.WithOverrides(overrides)}
	if opts.ConfigPath != "" {
		loadOpts = append(loadOpts, config.WithConfigPath(opts.ConfigPath))
	} else {
		loadOpts = append(loadOpts, config.WithSearchPaths(defaultSearchPaths()...))
	}

	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidSearchConfig, "config initialization failed").WithDetail(err.Error())
	}
	return cfg, nil
}

// NewApp wires the graph store, the optional object store, result cache and
// metrics registry, and the mapping service from cfg.  Partially built
// resources are released on error.
func NewApp(cfg *config.Config, logger logging.Logger, stdin io.Reader) (_ *App, err error) {
	app := &App{Config: cfg, Logger: logger, Output: mtypes.OutputJSON}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	storeOpts := []graphstore.Option{
		graphstore.WithStdin(stdin),
		graphstore.WithMaxDocumentBytes(cfg.Storage.MaxDocumentBytes),
	}
	if cfg.Storage.MinIO.Enabled {
		app.objects, err = minio.NewClient(&cfg.Storage.MinIO, logger.Named("minio"))
		if err != nil {
			return nil, err
		}
		storeOpts = append(storeOpts, graphstore.WithObjectFetcher(app.objects))
	}
	app.Graphs = graphstore.NewRepository(logger.Named("graphstore"), storeOpts...)

	var svcOpts []mapping.Option
	if cfg.Metrics.Enabled {
		app.Collector, err = prom.NewMetricsCollector(prom.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger.Named("metrics"))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidSearchConfig, "metrics initialization failed")
		}
		app.Metrics = prom.NewMCSMetrics(app.Collector)
		svcOpts = append(svcOpts, mapping.WithMetrics(app.Metrics))
	}

	if cfg.Redis.Enabled {
		app.redis, err = redis.NewClient(&cfg.Redis, logger.Named("redis"))
		if err != nil {
			return nil, err
		}
		cache := redis.NewRedisCache(app.redis, logger.Named("cache"),
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
		)
		app.Cache = redis.NewMatchCache(cache, cfg.Redis.DefaultTTL, logger.Named("match_cache"))
		svcOpts = append(svcOpts, mapping.WithResultCache(app.Cache))
	}

	app.Mapping, err = mapping.NewService(cfg.Search, cfg.Worker, logger.Named("mapping"), svcOpts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("application initialised",
		logging.Bool("object_store", app.objects != nil),
		logging.Bool("result_cache", app.Cache != nil),
		logging.Bool("metrics", app.Collector != nil),
	)
	return app, nil
}

// Close releases network clients.  It is safe to call more than once.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("closing redis client", logging.Err(err))
		}
		a.redis = nil
	}
	if a.objects != nil {
		if err := a.objects.Close(); err != nil {
			a.Logger.Warn("closing object store client", logging.Err(err))
		}
		a.objects = nil
	}
}

//Personal.AI order the ending
