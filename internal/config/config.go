// Package config loads solarsizer configuration from YAML files and
// environment variables.
//
// Precedence, lowest to highest: built-in defaults, the global config file
// (~/.solarsizer/config.yaml), a project overlay (.solarsizer/config.yaml
// found by walking up from the working directory), then SOLARSIZER_*
// environment variables. CLI flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kcalvin/solarsizer/internal/logging"
	"github.com/kcalvin/solarsizer/internal/sizing"
	"github.com/kcalvin/solarsizer/internal/webhook"
)

// Defaults not owned by the sizing package.
const (
	DefaultWebhookTimeout  = webhook.DefaultTimeout
	DefaultProviderBaseURL = "https://solar.googleapis.com"
	DefaultProviderTimeout = 15 * time.Second
	DefaultCacheTTLSeconds = 3600
	DefaultServerAddress   = ":8080"
	DefaultOutputFormat    = "table"
	DefaultPrecision       = 1
	configFileName         = "config.yaml"
	configDirName          = ".solarsizer"
	outputTypeFile         = "file"
)

// Supported output formats.
var supportedOutputFormats = []string{"table", "json"} //nolint:gochecknoglobals // Lookup table.

// Config is the complete solarsizer configuration.
type Config struct {
	Sizing   SizingConfig   `yaml:"sizing"`
	Webhooks WebhookConfig  `yaml:"webhooks"`
	Provider ProviderConfig `yaml:"provider"`
	Server   ServerConfig   `yaml:"server"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SizingConfig holds the defaults applied when parsing caller and provider data.
type SizingConfig struct {
	DefaultRate       float64 `yaml:"default_rate"`
	DefaultPanelWatts float64 `yaml:"default_panel_watts"`
	PerformanceRatio  float64 `yaml:"performance_ratio"`
}

// WebhookConfig holds the outbound lead webhook endpoints.
type WebhookConfig struct {
	EstimateURL string        `yaml:"estimate_url"`
	LeadURL     string        `yaml:"lead_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ProviderConfig configures the building insights client and its cache.
type ProviderConfig struct {
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"api_key,omitempty"`
	Timeout         time.Duration `yaml:"timeout"`
	CacheEnabled    bool          `yaml:"cache_enabled"`
	CacheDir        string        `yaml:"cache_dir,omitempty"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
}

// ServerConfig configures `solarsizer serve`.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	return &Config{
		Sizing: SizingConfig{
			DefaultRate:       sizing.DefaultRatePerKwh,
			DefaultPanelWatts: sizing.DefaultPanelWatts,
			PerformanceRatio:  sizing.PerformanceRatio,
		},
		Webhooks: WebhookConfig{
			Timeout: DefaultWebhookTimeout,
		},
		Provider: ProviderConfig{
			BaseURL:         DefaultProviderBaseURL,
			Timeout:         DefaultProviderTimeout,
			CacheEnabled:    true,
			CacheTTLSeconds: DefaultCacheTTLSeconds,
		},
		Server: ServerConfig{Address: DefaultServerAddress},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// New returns the effective configuration: defaults, the global config file
// when present, then environment overrides. Unreadable files are reported on
// the global logger and ignored.
func New() *Config {
	cfg := Defaults()

	if path, err := ConfigFilePath(); err == nil {
		if loadErr := cfg.LoadFile(path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			logger := GetLogger()
			logger.Warn().Err(loadErr).Str("path", path).Msg("ignoring unreadable config file")
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		logger := GetLogger()
		logger.Warn().Err(err).Msg("ignoring invalid environment overrides")
	}

	return cfg
}

// Load returns defaults overlaid with the file at path and the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile unmarshals the YAML file at path on top of c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes c as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !(c.Sizing.DefaultRate > 0) {
		return fmt.Errorf("sizing.default_rate: %w", sizing.ErrInvalidRate)
	}
	if !(c.Sizing.DefaultPanelWatts > 0) {
		return fmt.Errorf("sizing.default_panel_watts must be greater than 0, got %v", c.Sizing.DefaultPanelWatts)
	}
	if err := sizing.ValidatePerformanceRatio(c.Sizing.PerformanceRatio); err != nil {
		return fmt.Errorf("sizing.performance_ratio: %w", err)
	}
	if c.Webhooks.Timeout <= 0 {
		return fmt.Errorf("webhooks.timeout must be positive, got %s", c.Webhooks.Timeout)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.Provider.CacheTTLSeconds < 0 {
		return fmt.Errorf("provider.cache_ttl_seconds must be >= 0, got %d", c.Provider.CacheTTLSeconds)
	}
	if !slices.Contains(supportedOutputFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("output.default_format %q is not one of %v", c.Output.DefaultFormat, supportedOutputFormats)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must be >= 0, got %d", c.Output.Precision)
	}
	return nil
}

// CacheDirOrDefault returns the provider cache directory, defaulting to a
// cache folder under the config directory.
func (c *Config) CacheDirOrDefault() string {
	if c.Provider.CacheDir != "" {
		return c.Provider.CacheDir
	}
	dir, err := GetConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "solarsizer-cache")
	}
	return filepath.Join(dir, "cache")
}
