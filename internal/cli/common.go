package cli

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/calculator"
	"github.com/kcalvin/solarsizer/internal/config"
	"github.com/kcalvin/solarsizer/internal/provider"
	"github.com/kcalvin/solarsizer/internal/provider/cache"
	"github.com/kcalvin/solarsizer/internal/webhook"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// resolveOutputFormat returns the --output flag or the configured default.
func resolveOutputFormat(cmd *cobra.Command, flagValue string) (string, error) {
	format := flagValue
	if !cmd.Flags().Changed("output") || format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if !slices.Contains([]string{outputTable, outputJSON}, format) {
		return "", fmt.Errorf("unsupported output format %q (use table or json)", format)
	}
	return format, nil
}

// calculatorOptions builds calculator options from the config, applying the
// --performance-ratio and --panel-watts flags when set.
func calculatorOptions(cmd *cobra.Command, cfg *config.Config) (calculator.Options, error) {
	opts := calculator.Options{
		DefaultRate:       cfg.Sizing.DefaultRate,
		DefaultPanelWatts: cfg.Sizing.DefaultPanelWatts,
		PerformanceRatio:  cfg.Sizing.PerformanceRatio,
	}
	if f := cmd.Flags().Lookup("performance-ratio"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetFloat64("performance-ratio")
		opts.PerformanceRatio = v
	}
	if f := cmd.Flags().Lookup("panel-watts"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetFloat64("panel-watts")
		opts.DefaultPanelWatts = v
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// newProviderClient returns a Solar API client using the configured cache.
func newProviderClient(cfg *config.Config) (*provider.Client, error) {
	var opts []provider.ClientOption
	if cfg.Provider.CacheEnabled {
		ttl := time.Duration(cfg.Provider.CacheTTLSeconds) * time.Second
		store, err := cache.NewFileStore(cfg.CacheDirOrDefault(), true, ttl)
		if err != nil {
			return nil, fmt.Errorf("opening provider cache: %w", err)
		}
		opts = append(opts, provider.WithCache(store))
	}
	return provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout, opts...), nil
}

// newWebhookClient returns a webhook client for the configured endpoints.
func newWebhookClient(cfg *config.Config) *webhook.Client {
	return webhook.NewClient(cfg.Webhooks.EstimateURL, cfg.Webhooks.LeadURL, cfg.Webhooks.Timeout)
}

// fetchInsights loads roof data from a file, the Solar API or the built-in
// sample, in that order of preference.
func fetchInsights(ctx context.Context, cmd *cobra.Command, cfg *config.Config, file string, lat, lng float64) (*provider.BuildingInsights, string, error) {
	if file != "" {
		bi, err := provider.LoadFile(file)
		return bi, file, err
	}
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		client, err := newProviderClient(cfg)
		if err != nil {
			return nil, "", err
		}
		bi, err := client.BuildingInsights(ctx, lat, lng)
		return bi, "solar api", err
	}
	return provider.SampleInsights(), "built-in sample", nil
}
