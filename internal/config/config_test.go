package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/internal/config"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Rejects(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(c *config.Config)
		key    string
	}{
		{"log level", func(c *config.Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
		{"mode", func(c *config.Config) { c.Search.Mode = "vf2" }, "search.mode"},
		{"pivot", func(c *config.Config) { c.Search.Pivot = "random" }, "search.pivot"},
		{"filter", func(c *config.Config) { c.Search.Filters = []string{"energy", "mass"} }, "search.filters"},
		{"energy direction", func(c *config.Config) { c.Search.EnergyDirection = "up" }, "search.energy_direction"},
		{"max nodes", func(c *config.Config) { c.Search.MaxCompatibilityNodes = -1 }, "search.max_compatibility_nodes"},
		{"budget factor", func(c *config.Config) { c.Search.CliqueBudgetFactor = -5 }, "budget factors"},
		{"max iterations", func(c *config.Config) { c.Search.MaxIterations = -1 }, "search.max_iterations"},
		{"max mappings", func(c *config.Config) { c.Search.MaxMappings = -1 }, "search.max_mappings"},
		{"timeout", func(c *config.Config) { c.Search.Timeout = -1 }, "search.timeout"},
		{"concurrency", func(c *config.Config) { c.Worker.Concurrency = -2 }, "worker.concurrency"},
		{"redis mode", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Mode = "ring" }, "redis.mode"},
		{"redis addr", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis.addr"},
		{"sentinel", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Mode = "sentinel" }, "redis.master_name"},
		{"cluster", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Mode = "cluster" }, "redis.addrs"},
		{"document size", func(c *config.Config) { c.Storage.MaxDocumentBytes = -1 }, "storage.max_document_bytes"},
		{"minio endpoint", func(c *config.Config) { c.Storage.MinIO.Enabled = true }, "storage.minio.endpoint"},
		{"server addr", func(c *config.Config) { c.Server.Addr = "" }, "server.addr"},
		{"body size", func(c *config.Config) { c.Server.MaxBodyBytes = -1 }, "server.max_body_bytes"},
		{"metrics addr", func(c *config.Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }, "metrics.addr"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestConfig_Validate_RedisDisabledSkipsChecks(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Redis.Mode = "ring"
	cfg.Redis.Addr = ""
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_ClusterWithAddrs(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Mode = "cluster"
	cfg.Redis.Addrs = []string{"a:7000", "b:7000"}
	assert.NoError(t, cfg.Validate())
}

//Personal.AI order the ending
