package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/config"
)

const projectGitignore = `# solarsizer: keep API keys and cached provider data out of version control
cache/
*.log
`

// NewConfigInitCmd creates the config init command. With --project-dir it
// writes a project overlay and a .gitignore; otherwise it writes the global
// ~/.solarsizer/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create global configuration
  solarsizer config init

  # Create a project overlay in ./.solarsizer
  solarsizer config init --project-dir .

  # Overwrite existing configuration
  solarsizer config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flagDir, _ := cmd.Flags().GetString("project-dir")
			if flagDir != "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				return initProjectConfig(cmd, config.ResolveProjectDir(flagDir, wd), force)
			}

			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			if err = writeDefaultConfig(path, force); err != nil {
				return err
			}
			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// initProjectConfig writes projectDir/config.yaml and a .gitignore that is
// never overwritten.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	path := filepath.Join(projectDir, "config.yaml")
	if err := writeDefaultConfig(path, force); err != nil {
		return err
	}

	ignorePath := filepath.Join(projectDir, ".gitignore")
	created := false
	if _, err := os.Stat(ignorePath); errors.Is(err, os.ErrNotExist) {
		if err = os.WriteFile(ignorePath, []byte(projectGitignore), 0o600); err != nil {
			return fmt.Errorf("failed to create .gitignore: %w", err)
		}
		created = true
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	if created {
		cmd.Printf("Created .gitignore to protect user-specific data\n")
	}
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}
	if err := config.Defaults().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
