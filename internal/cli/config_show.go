package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kcalvin/solarsizer/internal/config"
)

const redacted = "********"

// NewConfigShowCmd prints the effective configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after merging defaults, the global config file,
any project overlay and SOLARSIZER_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.Provider.APIKey != "" && !showSecrets {
				cfg.Provider.APIKey = redacted
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the provider API key unmasked")

	return cmd
}
