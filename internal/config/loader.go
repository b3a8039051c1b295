package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "MCSMAP"

// configName is the base name searched for in WithSearchPaths directories.
const configName = "mcsmap"

var (
	// ErrConfigFileNotFound is returned when an explicit config path does not
	// exist or no file is found in the search paths.
	ErrConfigFileNotFound = errors.New("config: file not found")
	// ErrConfigParseError wraps YAML syntax and decode failures.
	ErrConfigParseError = errors.New("config: parse error")
	// ErrConfigValidation wraps Validate failures.
	ErrConfigValidation = errors.New("config: validation failed")
)

var global atomic.Pointer[Config]

// Get returns the configuration most recently produced by Load, or nil.
func Get() *Config { return global.Load() }

// ─────────────────────────────────────────────────────────────────────────────
// Options
// ─────────────────────────────────────────────────────────────────────────────

type loadOptions struct {
	path        string
	searchPaths []string
	overrides   map[string]interface{}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath reads the YAML file at path.  A missing file is an error.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

// WithSearchPaths looks for mcsmap.yaml in each directory, first match wins.
// Finding nothing is not an error.
func WithSearchPaths(dirs ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, dirs...) }
}

// WithOverrides sets keys (dotted, e.g. "search.mode") that win over the file
// and the environment.
func WithOverrides(kv map[string]interface{}) LoadOption {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]interface{}, len(kv))
		}
		for k, v := range kv {
			o.overrides[k] = v
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Loading
// ─────────────────────────────────────────────────────────────────────────────

// newViper builds a Viper instance with YAML file type, the MCSMAP_ env
// prefix and a "." → "_" key replacer, so search.mode resolves to
// MCSMAP_SEARCH_MODE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

// setDefaults registers every key so that env-only settings are visible to
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{DefaultLogOutput})
	v.SetDefault("log.error_output_paths", []string{DefaultLogOutput})

	v.SetDefault("search.mode", DefaultSearchMode)
	v.SetDefault("search.pivot", DefaultSearchPivot)
	v.SetDefault("search.match_bond_order", true)
	v.SetDefault("search.match_rings", true)
	v.SetDefault("search.match_atom_type", false)
	v.SetDefault("search.all_maximal", false)
	v.SetDefault("search.filters", DefaultFilters)
	v.SetDefault("search.energy_direction", DefaultEnergyDirection)
	v.SetDefault("search.max_compatibility_nodes", DefaultMaxCompatibilityNodes)
	v.SetDefault("search.clique_budget_factor", DefaultCliqueBudgetFactor)
	v.SetDefault("search.extension_budget_factor", DefaultExtensionBudgetFactor)
	v.SetDefault("search.max_iterations", 0)
	v.SetDefault("search.max_mappings", 0)
	v.SetDefault("search.timeout", DefaultSearchTimeout)

	v.SetDefault("worker.concurrency", DefaultWorkerConcurrency)

	v.SetDefault("storage.max_document_bytes", DefaultMaxDocumentBytes)
	v.SetDefault("storage.minio.enabled", false)
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key_id", "")
	v.SetDefault("storage.minio.secret_access_key", "")
	v.SetDefault("storage.minio.use_ssl", false)
	v.SetDefault("storage.minio.region", DefaultMinIORegion)
	v.SetDefault("storage.minio.timeout", DefaultMinIOTimeout)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)
	v.SetDefault("server.max_body_bytes", DefaultServerMaxBodyBytes)
	v.SetDefault("server.cors_allowed_origins", []string{})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.mode", DefaultRedisMode)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.addrs", []string{})
	v.SetDefault("redis.master_name", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", DefaultRedisPoolSize)
	v.SetDefault("redis.min_idle_conns", 0)
	v.SetDefault("redis.dial_timeout", DefaultRedisDialTimeout)
	v.SetDefault("redis.read_timeout", DefaultRedisReadTimeout)
	v.SetDefault("redis.write_timeout", DefaultRedisWriteTimeout)
	v.SetDefault("redis.default_ttl", DefaultRedisTTL)
	v.SetDefault("redis.key_prefix", DefaultRedisKeyPrefix)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", DefaultMetricsAddr)
	v.SetDefault("metrics.path", DefaultMetricsPath)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
}

// Load merges, in increasing precedence, built-in defaults, the config file
// (if any), MCSMAP_* environment variables and explicit overrides.  The
// validated result is also published for Get.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	v := newViper()
	if err := readConfigFile(v, o); err != nil {
		return nil, err
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	global.Store(cfg)
	return cfg, nil
}

// LoadFromFile is shorthand for Load(WithConfigPath(path)).
func LoadFromFile(path string) (*Config, error) {
	return Load(WithConfigPath(path))
}

// LoadFromEnv builds a Config from defaults and MCSMAP_* variables only.
//
//	MCSMAP_<SECTION>_<FIELD>   e.g.  MCSMAP_SEARCH_MODE, MCSMAP_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	return Load()
}

func readConfigFile(v *viper.Viper, o *loadOptions) error {
	switch {
	case o.path != "":
		if _, err := os.Stat(o.path); err != nil {
			return fmt.Errorf("%w: %s", ErrConfigFileNotFound, o.path)
		}
		v.SetConfigFile(o.path)
	case len(o.searchPaths) > 0:
		v.SetConfigName(configName)
		for _, dir := range o.searchPaths {
			v.AddConfigPath(dir)
		}
	default:
		return nil
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}
	return nil
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	return cfg, nil
}

// Watch re-reads path whenever it changes on disk and invokes onChange with
// the new Config.  Invalid edits are skipped and reported to onError, which
// may be nil.  Watch does not block.
func Watch(path string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	if err := readConfigFile(v, &loadOptions{path: path}); err != nil {
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		global.Store(cfg)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is Load that panics on error, for use in main().
func MustLoad(opts ...LoadOption) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
