package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcalvin/solarsizer/internal/sizing"
	"github.com/kcalvin/solarsizer/internal/webhook"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 0.14, cfg.Sizing.DefaultRate)
	assert.Equal(t, 400.0, cfg.Sizing.DefaultPanelWatts)
	assert.Equal(t, 0.85, cfg.Sizing.PerformanceRatio)
	assert.Equal(t, 10*time.Second, cfg.Webhooks.Timeout)
	assert.Equal(t, webhook.DefaultTimeout, cfg.Webhooks.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Address)
	require.NoError(t, cfg.Validate())
}

func TestNew_ReadsGlobalFile(t *testing.T) {
	dir := isolate(t)
	content := `
sizing:
  default_rate: 0.2
webhooks:
  estimate_url: https://hooks.example.com/estimate
  timeout: 5s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg := New()

	assert.Equal(t, 0.2, cfg.Sizing.DefaultRate)
	assert.Equal(t, 400.0, cfg.Sizing.DefaultPanelWatts, "unset keys keep defaults")
	assert.Equal(t, "https://hooks.example.com/estimate", cfg.Webhooks.EstimateURL)
	assert.Equal(t, 5*time.Second, cfg.Webhooks.Timeout)
}

func TestNew_CorruptFileFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("sizing: [unclosed"), 0600))

	cfg := New()
	assert.Equal(t, sizing.DefaultRatePerKwh, cfg.Sizing.DefaultRate)
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SOLARSIZER_DEFAULT_RATE", "0.31")
	t.Setenv("SOLARSIZER_LEAD_WEBHOOK_URL", "https://hooks.example.com/lead")
	t.Setenv("SOLARSIZER_WEBHOOK_TIMEOUT", "3s")
	t.Setenv("SOLARSIZER_CACHE_ENABLED", "false")
	t.Setenv("SOLARSIZER_LOG_LEVEL", "debug")

	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 0.31, cfg.Sizing.DefaultRate)
	assert.Equal(t, "https://hooks.example.com/lead", cfg.Webhooks.LeadURL)
	assert.Equal(t, 3*time.Second, cfg.Webhooks.Timeout)
	assert.False(t, cfg.Provider.CacheEnabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 400.0, cfg.Sizing.DefaultPanelWatts, "unset variables leave values alone")
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("SOLARSIZER_DEFAULT_RATE", "cheap")

	cfg := Defaults()
	assert.Error(t, cfg.ApplyEnv())
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Defaults()
	cfg.Webhooks.LeadURL = "https://hooks.example.com/lead"
	cfg.Webhooks.Timeout = 7 * time.Second
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero rate", func(c *Config) { c.Sizing.DefaultRate = 0 }, "default_rate"},
		{"negative watts", func(c *Config) { c.Sizing.DefaultPanelWatts = -1 }, "default_panel_watts"},
		{"ratio above one", func(c *Config) { c.Sizing.PerformanceRatio = 1.5 }, "performance_ratio"},
		{"zero webhook timeout", func(c *Config) { c.Webhooks.Timeout = 0 }, "webhooks.timeout"},
		{"zero provider timeout", func(c *Config) { c.Provider.Timeout = 0 }, "provider.timeout"},
		{"negative ttl", func(c *Config) { c.Provider.CacheTTLSeconds = -1 }, "cache_ttl_seconds"},
		{"unknown format", func(c *Config) { c.Output.DefaultFormat = "xml" }, "default_format"},
		{"negative precision", func(c *Config) { c.Output.Precision = -1 }, "precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RateWrapsSentinel(t *testing.T) {
	cfg := Defaults()
	cfg.Sizing.DefaultRate = -0.1
	assert.ErrorIs(t, cfg.Validate(), sizing.ErrInvalidRate)
}

func TestCacheDirOrDefault(t *testing.T) {
	dir := isolate(t)

	cfg := Defaults()
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.CacheDirOrDefault())

	cfg.Provider.CacheDir = "/var/cache/solarsizer"
	assert.Equal(t, "/var/cache/solarsizer", cfg.CacheDirOrDefault())
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "warn", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", got.Output)
	assert.Equal(t, "warn", got.Level)

	lc.File = "/tmp/solarsizer.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, "/tmp/solarsizer.log", got.File)
}
