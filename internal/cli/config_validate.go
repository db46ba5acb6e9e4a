package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration: sizing defaults, webhook and
provider timeouts, cache TTL and output settings.`,
		Example: `  # Validate current configuration
  solarsizer config validate

  # Validate and show detailed information
  solarsizer config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")
	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Default rate: $%.2f/kWh\n", cfg.Sizing.DefaultRate)
	cmd.Printf("  Default panel watts: %.0f\n", cfg.Sizing.DefaultPanelWatts)
	cmd.Printf("  Performance ratio: %.2f\n", cfg.Sizing.PerformanceRatio)
	cmd.Printf("  Estimate webhook: %s\n", orUnset(cfg.Webhooks.EstimateURL))
	cmd.Printf("  Lead webhook: %s\n", orUnset(cfg.Webhooks.LeadURL))
	cmd.Printf("  Webhook timeout: %s\n", cfg.Webhooks.Timeout)
	cmd.Printf("  Solar API: %s (key %s)\n", cfg.Provider.BaseURL, setOrUnset(cfg.Provider.APIKey))
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", orUnset(cfg.Logging.File))
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func setOrUnset(s string) string {
	if s == "" {
		return "not set"
	}
	return "set"
}
