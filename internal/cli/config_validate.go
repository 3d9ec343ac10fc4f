package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the global ~/.garmentlca/config.yaml,
the project overlay and GARMENTLCA_* environment overrides.

This includes:
- YAML syntax of the global file
- Output format and precision ranges
- Logging level and format
- Model horizon and wash count bounds
- Existence of model.catalog_path, if set`,
		Example: `  # Validate current configuration
  garmentlca config validate

  # Validate and show detailed information
  garmentlca config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.LoadError(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Precision: water %d, carbon %d\n", cfg.Output.WaterPrecision, cfg.Output.CarbonPrecision)
	cmd.Printf("  Logging: %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Horizon: %d washes\n", cfg.Model.Horizon)
	cmd.Printf("  Usage count: default %d, max %d\n", cfg.Model.DefaultUsageCount, cfg.Model.MaxUsageCount)
	if cfg.Model.CatalogPath != "" {
		cmd.Printf("  Catalog: %s\n", cfg.Model.CatalogPath)
	} else {
		cmd.Println("  Catalog: built-in")
	}
}
