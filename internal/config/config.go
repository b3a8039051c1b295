// Package config defines the configuration structures for the mcsmap tool.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig controls the structured logger.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // debug | info | warn | error
	Format           string   `mapstructure:"format"` // json | console
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// SearchConfig holds the default search options applied to every request.
// Per-request options override individual fields.
type SearchConfig struct {
	Mode  string `mapstructure:"mode"`  // clique_extend | clique | extension
	Pivot string `mapstructure:"pivot"` // degree | index

	// Nil means the default (true).
	MatchBondOrder *bool `mapstructure:"match_bond_order"`
	MatchRings     *bool `mapstructure:"match_rings"`
	MatchAtomType  bool  `mapstructure:"match_atom_type"`
	AllMaximal     bool  `mapstructure:"all_maximal"`

	Filters         []string `mapstructure:"filters"`
	EnergyDirection string   `mapstructure:"energy_direction"` // lower | higher

	MaxCompatibilityNodes int   `mapstructure:"max_compatibility_nodes"`
	CliqueBudgetFactor    int64 `mapstructure:"clique_budget_factor"`
	ExtensionBudgetFactor int64 `mapstructure:"extension_budget_factor"`
	// MaxIterations, when positive, caps both sub-searches and overrides the
	// budget factors.
	MaxIterations int64 `mapstructure:"max_iterations"`
	// MaxMappings truncates the published mapping list; 0 keeps all.
	MaxMappings int           `mapstructure:"max_mappings"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// BondOrderMatching resolves MatchBondOrder against its default.
func (s SearchConfig) BondOrderMatching() bool {
	return s.MatchBondOrder == nil || *s.MatchBondOrder
}

// RingMatching resolves MatchRings against its default.
func (s SearchConfig) RingMatching() bool {
	return s.MatchRings == nil || *s.MatchRings
}

// WorkerConfig sizes the pool used for matrix requests.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// RedisConfig configures the optional result cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Mode         string        `mapstructure:"mode"` // standalone | sentinel | cluster
	Addr         string        `mapstructure:"addr"`
	Addrs        []string      `mapstructure:"addrs"`
	MasterName   string        `mapstructure:"master_name"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MinIOConfig points graph references of the form s3://bucket/key at an
// S3-compatible object store.
type MinIOConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects where molecule graph documents are read from.
type StorageConfig struct {
	// MaxDocumentBytes rejects larger graph documents.
	MaxDocumentBytes int64       `mapstructure:"max_document_bytes"`
	MinIO            MinIOConfig `mapstructure:"minio"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`

	// CORSAllowedOrigins enables cross-origin requests from the listed
	// origins.  "*" allows any origin; empty disables CORS handling.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// MetricsConfig configures the Prometheus registry and its listener.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Search  SearchConfig  `mapstructure:"search"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Search
	switch c.Search.Mode {
	case "clique_extend", "clique", "extension":
	default:
		return fmt.Errorf("config: search.mode %q is invalid; expected clique_extend|clique|extension", c.Search.Mode)
	}
	switch c.Search.Pivot {
	case "degree", "index":
	default:
		return fmt.Errorf("config: search.pivot %q is invalid; expected degree|index", c.Search.Pivot)
	}
	for _, f := range c.Search.Filters {
		switch f {
		case "energy", "fragments", "stereo":
		default:
			return fmt.Errorf("config: search.filters contains unknown filter %q", f)
		}
	}
	switch c.Search.EnergyDirection {
	case "lower", "higher":
	default:
		return fmt.Errorf("config: search.energy_direction %q is invalid; expected lower|higher", c.Search.EnergyDirection)
	}
	if c.Search.MaxCompatibilityNodes < 1 {
		return fmt.Errorf("config: search.max_compatibility_nodes must be >= 1, got %d", c.Search.MaxCompatibilityNodes)
	}
	if c.Search.CliqueBudgetFactor < 1 || c.Search.ExtensionBudgetFactor < 1 {
		return fmt.Errorf("config: search budget factors must be >= 1")
	}
	if c.Search.MaxIterations < 0 {
		return fmt.Errorf("config: search.max_iterations must be >= 0, got %d", c.Search.MaxIterations)
	}
	if c.Search.MaxMappings < 0 {
		return fmt.Errorf("config: search.max_mappings must be >= 0, got %d", c.Search.MaxMappings)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("config: search.timeout must not be negative")
	}

	// Worker
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config: worker.concurrency must be >= 1, got %d", c.Worker.Concurrency)
	}

	// Storage
	if c.Storage.MaxDocumentBytes < 1 {
		return fmt.Errorf("config: storage.max_document_bytes must be >= 1, got %d", c.Storage.MaxDocumentBytes)
	}
	if c.Storage.MinIO.Enabled && c.Storage.MinIO.Endpoint == "" {
		return fmt.Errorf("config: storage.minio.endpoint is required when minio is enabled")
	}

	// Redis
	if c.Redis.Enabled {
		switch c.Redis.Mode {
		case "standalone":
			if c.Redis.Addr == "" {
				return fmt.Errorf("config: redis.addr is required in standalone mode")
			}
		case "sentinel":
			if c.Redis.MasterName == "" || len(c.Redis.Addrs) == 0 {
				return fmt.Errorf("config: redis.master_name and redis.addrs are required in sentinel mode")
			}
		case "cluster":
			if len(c.Redis.Addrs) == 0 {
				return fmt.Errorf("config: redis.addrs is required in cluster mode")
			}
		default:
			return fmt.Errorf("config: redis.mode %q is invalid; expected standalone|sentinel|cluster", c.Redis.Mode)
		}
		if c.Redis.DefaultTTL <= 0 {
			return fmt.Errorf("config: redis.default_ttl must be positive")
		}
	}

	// Server
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("config: server.max_body_bytes must be >= 1, got %d", c.Server.MaxBodyBytes)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("config: metrics.addr is required when metrics are enabled")
	}

	return nil
}

//Personal.AI order the ending
