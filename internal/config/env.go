package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for every environment override.
const EnvPrefix = "SOLARSIZER"

// envOverrides mirrors the settings that may be overridden from the
// environment. Nil fields were not set.
type envOverrides struct {
	DefaultRate       *float64       `envconfig:"DEFAULT_RATE"`
	DefaultPanelWatts *float64       `envconfig:"DEFAULT_PANEL_WATTS"`
	PerformanceRatio  *float64       `envconfig:"PERFORMANCE_RATIO"`
	EstimateURL       *string        `envconfig:"ESTIMATE_WEBHOOK_URL"`
	LeadURL           *string        `envconfig:"LEAD_WEBHOOK_URL"`
	WebhookTimeout    *time.Duration `envconfig:"WEBHOOK_TIMEOUT"`
	ProviderBaseURL   *string        `envconfig:"PROVIDER_BASE_URL"`
	ProviderAPIKey    *string        `envconfig:"SOLAR_API_KEY"`
	CacheEnabled      *bool          `envconfig:"CACHE_ENABLED"`
	CacheDir          *string        `envconfig:"CACHE_DIR"`
	ServerAddress     *string        `envconfig:"SERVER_ADDRESS"`
	OutputFormat      *string        `envconfig:"OUTPUT_FORMAT"`
	LogLevel          *string        `envconfig:"LOG_LEVEL"`
	LogFormat         *string        `envconfig:"LOG_FORMAT"`
	LogFile           *string        `envconfig:"LOG_FILE"`
}

// ApplyEnv overlays SOLARSIZER_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return err
	}

	setFloat(&c.Sizing.DefaultRate, o.DefaultRate)
	setFloat(&c.Sizing.DefaultPanelWatts, o.DefaultPanelWatts)
	setFloat(&c.Sizing.PerformanceRatio, o.PerformanceRatio)
	setString(&c.Webhooks.EstimateURL, o.EstimateURL)
	setString(&c.Webhooks.LeadURL, o.LeadURL)
	if o.WebhookTimeout != nil {
		c.Webhooks.Timeout = *o.WebhookTimeout
	}
	setString(&c.Provider.BaseURL, o.ProviderBaseURL)
	setString(&c.Provider.APIKey, o.ProviderAPIKey)
	if o.CacheEnabled != nil {
		c.Provider.CacheEnabled = *o.CacheEnabled
	}
	setString(&c.Provider.CacheDir, o.CacheDir)
	setString(&c.Server.Address, o.ServerAddress)
	setString(&c.Output.DefaultFormat, o.OutputFormat)
	setString(&c.Logging.Level, o.LogLevel)
	setString(&c.Logging.Format, o.LogFormat)
	setString(&c.Logging.File, o.LogFile)
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
