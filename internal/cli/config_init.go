package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// When a project directory is resolved (without --global), it writes the
// project-local .garmentlca/config.yaml. Otherwise it writes the global
// ~/.garmentlca/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project (a directory tree containing .garmentlca/, or one named by
--project-dir or GARMENTLCA_PROJECT_DIR) the file is written to
$PROJECT/.garmentlca/config.yaml. Use --global to write the global file instead.`,
		Example: `  # Create project-local configuration
  garmentlca config init --project-dir .

  # Create global configuration
  garmentlca config init --global

  # Create configuration, overwriting existing
  garmentlca config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTargetPath(global)
			if err != nil {
				return err
			}
			return initConfigFile(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "use the global configuration even inside a project")

	return cmd
}

// configTargetPath returns the file config init and config set write to.
func configTargetPath(global bool) (string, error) {
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" && !global {
		return filepath.Join(projectDir, "config.yaml"), nil
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func initConfigFile(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Defaults()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
