package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kcalvin/solarsizer/internal/config"
	"github.com/kcalvin/solarsizer/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the solarsizer CLI. It loads
// configuration, wires up logging and tracing, and registers subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:           "solarsizer",
		Short:         "Residential solar sizing calculator and lead tooling",
		Long:          "solarsizer: size a residential solar system from a monthly electric bill and roof potential data",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to a config file (default ~/.solarsizer/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory containing .solarsizer/config.yaml")

	cmd.AddCommand(
		NewEstimateCmd(),
		NewBatchCmd(),
		NewServeCmd(),
		newWebhookCmd(),
		newAgentCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Size a system for a $160 bill using the built-in sample roof
  solarsizer estimate --bill 160

  # Size against a saved buildingInsights response
  solarsizer estimate --bill 160 --rate 0.16 --insights insights.json

  # Fetch roof data from the Solar API and print JSON
  solarsizer estimate --bill 160 --lat 25.4687 --lng -80.4776 --output json

  # Evaluate a workflow items file
  solarsizer batch items.json --concurrency 4

  # Run the HTTP API
  solarsizer serve --addr :8080

  # Initialize configuration
  solarsizer config init`

// loadConfig resolves the effective configuration and installs it as the
// global config. --config replaces the global file; otherwise a project
// overlay is merged when found.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		config.SetGlobalConfig(cfg)
		return nil
	}

	flagDir, _ := cmd.Flags().GetString("project-dir")
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	projectDir := config.ResolveProjectDir(flagDir, wd)
	config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), projectDir))
	return nil
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// newWebhookCmd creates the webhook command group.
func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "webhook", Short: "Send estimate requests and leads to the workflow webhooks"}
	cmd.AddCommand(NewWebhookEstimateCmd(), NewWebhookLeadCmd())
	return cmd
}

// newAgentCmd creates the agent command group.
func newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "agent", Short: "Inspect and exercise the voice agent tools"}
	cmd.AddCommand(NewAgentToolsCmd(), NewAgentPromptCmd(), NewAgentInvokeCmd())
	return cmd
}
