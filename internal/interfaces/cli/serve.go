package cli

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	httpapi "github.com/asad/ReactionDecoder-sub002/internal/interfaces/http"
	"github.com/asad/ReactionDecoder-sub002/internal/interfaces/http/handlers"
	"github.com/asad/ReactionDecoder-sub002/internal/interfaces/http/middleware"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mapping API over HTTP",
		Long: "serve exposes POST /api/v1/match, /api/v1/matrix and /api/v1/uncommon plus\n" +
			"health probes.  When metrics are enabled they are scraped from metrics.path,\n" +
			"on the API listener or on metrics.addr if that differs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			srvCfg := app.Config.Server
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}
			return runServers(cmd.Context(), app, srvCfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address; overrides server.addr")
	return cmd
}

// runServers runs the API listener, and a separate metrics listener when
// configured, until ctx ends.
func runServers(ctx context.Context, app *App, srvCfg config.ServerConfig) error {
	metricsCfg := app.Config.Metrics
	separateMetrics := app.Collector != nil && metricsCfg.Addr != srvCfg.Addr

	api := httpapi.NewServer(srvCfg, newAPIHandler(app, srvCfg, !separateMetrics), app.Logger.Named("api"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return api.Run(gctx) })
	if separateMetrics {
		r := chi.NewRouter()
		r.Handle(metricsCfg.Path, app.Collector.Handler())
		metrics := httpapi.NewServer(config.ServerConfig{
			Addr:            metricsCfg.Addr,
			ReadTimeout:     srvCfg.ReadTimeout,
			WriteTimeout:    srvCfg.WriteTimeout,
			ShutdownTimeout: srvCfg.ShutdownTimeout,
		}, r, app.Logger.Named("metrics"))
		g.Go(func() error { return metrics.Run(gctx) })
	}

	app.Logger.Info("serving mapping API",
		logging.String("addr", srvCfg.Addr),
		logging.Bool("metrics", app.Collector != nil),
		logging.Bool("result_cache", app.Cache != nil),
	)
	return g.Wait()
}

// newAPIHandler assembles the router for app.  withMetrics mounts the scrape
// endpoint on the API router itself.
func newAPIHandler(app *App, srvCfg config.ServerConfig, withMetrics bool) http.Handler {
	rc := httpapi.RouterConfig{
		MappingHandler:     handlers.NewMappingHandler(app.Mapping, app.Logger, srvCfg.MaxBodyBytes),
		HealthHandler:      handlers.NewHealthHandler(Version, app.healthChecks()...),
		Logging:            middleware.DefaultLoggingConfig(),
		CORSAllowedOrigins: srvCfg.CORSAllowedOrigins,
		Logger:             app.Logger,
		Metrics:            app.Metrics,
	}
	if withMetrics && app.Collector != nil {
		rc.MetricsCollector = app.Collector
		rc.MetricsPath = app.Config.Metrics.Path
	}
	return httpapi.NewRouter(rc)
}

// healthChecks probes the optional network dependencies.
func (a *App) healthChecks() []handlers.HealthChecker {
	var checks []handlers.HealthChecker
	if a.redis != nil {
		checks = append(checks, handlers.NewCheck("redis", a.redis.Ping))
	}
	if a.objects != nil {
		checks = append(checks, handlers.NewCheck("object_store", a.objects.Ping))
	}
	return checks
}

//Personal.AI order the ending
