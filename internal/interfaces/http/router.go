package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/prometheus"
	"github.com/asad/ReactionDecoder-sub002/internal/interfaces/http/handlers"
	"github.com/asad/ReactionDecoder-sub002/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the HTTP route tree.  Nil members are skipped.
type RouterConfig struct {
	// Handlers
	MappingHandler *handlers.MappingHandler
	HealthHandler  *handlers.HealthHandler

	// Middleware
	Logging            middleware.LoggingConfig
	CORSAllowedOrigins []string

	// Infrastructure
	Logger logging.Logger
	// MetricsCollector, when set, is scraped at MetricsPath on this router.
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
	Metrics          *prometheus.MCSMetrics
}

// NewRouter constructs the route tree: global middleware, the probes, the
// optional scrape endpoint and the /api/v1 mapping endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(middleware.NewCORSConfig(cfg.CORSAllowedOrigins)))
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/healthz/detail", cfg.HealthHandler.Detailed)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerMappingRoutes(api, cfg.MappingHandler)
	})

	return r
}

// registerMappingRoutes mounts the search endpoints.
func registerMappingRoutes(r chi.Router, h *handlers.MappingHandler) {
	if h == nil {
		return
	}
	r.Post("/match", h.Match)
	r.Post("/matrix", h.Matrix)
	r.Post("/uncommon", h.Uncommon)
}

//Personal.AI order the ending
