package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stderr"

	DefaultSearchMode            = "clique_extend"
	DefaultSearchPivot           = "degree"
	DefaultEnergyDirection       = "lower"
	DefaultMaxCompatibilityNodes = 20000
	DefaultCliqueBudgetFactor    = 5000
	DefaultExtensionBudgetFactor = 10000
	DefaultSearchTimeout         = 30 * time.Second

	DefaultWorkerConcurrency = 4

	DefaultMaxDocumentBytes = 8 << 20
	DefaultMinIORegion      = "us-east-1"
	DefaultMinIOTimeout     = 30 * time.Second

	DefaultServerAddr            = ":8080"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 120 * time.Second
	DefaultServerShutdownTimeout = 30 * time.Second
	DefaultServerMaxBodyBytes    = 32 << 20

	DefaultRedisMode         = "standalone"
	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPoolSize     = 10
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisTTL          = 24 * time.Hour
	DefaultRedisKeyPrefix    = "mcsmap:"

	DefaultMetricsAddr      = ":9090"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "mcsmap"
)

// DefaultFilters is the ranking pipeline used when none is configured.
var DefaultFilters = []string{"energy", "fragments", "stereo"}

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// already set by the caller are left unchanged.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{DefaultLogOutput}
	}
	if len(cfg.Log.ErrorOutputPaths) == 0 {
		cfg.Log.ErrorOutputPaths = []string{DefaultLogOutput}
	}

	// ── Search ────────────────────────────────────────────────────────────────
	if cfg.Search.Mode == "" {
		cfg.Search.Mode = DefaultSearchMode
	}
	if cfg.Search.Pivot == "" {
		cfg.Search.Pivot = DefaultSearchPivot
	}
	if cfg.Search.Filters == nil {
		cfg.Search.Filters = append([]string(nil), DefaultFilters...)
	}
	if cfg.Search.EnergyDirection == "" {
		cfg.Search.EnergyDirection = DefaultEnergyDirection
	}
	if cfg.Search.MaxCompatibilityNodes == 0 {
		cfg.Search.MaxCompatibilityNodes = DefaultMaxCompatibilityNodes
	}
	if cfg.Search.CliqueBudgetFactor == 0 {
		cfg.Search.CliqueBudgetFactor = DefaultCliqueBudgetFactor
	}
	if cfg.Search.ExtensionBudgetFactor == 0 {
		cfg.Search.ExtensionBudgetFactor = DefaultExtensionBudgetFactor
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = DefaultSearchTimeout
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}

	// ── Storage ───────────────────────────────────────────────────────────────
	if cfg.Storage.MaxDocumentBytes == 0 {
		cfg.Storage.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	if cfg.Storage.MinIO.Region == "" {
		cfg.Storage.MinIO.Region = DefaultMinIORegion
	}
	if cfg.Storage.MinIO.Timeout == 0 {
		cfg.Storage.MinIO.Timeout = DefaultMinIOTimeout
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultServerMaxBodyBytes
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Mode == "" {
		cfg.Redis.Mode = DefaultRedisMode
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisDialTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisReadTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisWriteTimeout
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

//Personal.AI order the ending
