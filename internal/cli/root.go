// Package cli implements the garmentlca command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the garmentlca CLI.
// It wires up configuration, logging and tracing, then the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "garmentlca",
		Short:   "Garment lifecycle water and carbon footprint estimator",
		Long:    "garmentlca: estimate the water and carbon footprint of a garment across its lifecycle",
		Version: ver,
		Example: rootCmdExample,
		// Runtime errors should not dump usage.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initConfig(cmd)
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("catalog", "", "path to a catalog YAML file (default: built-in t-shirt catalog)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .garmentlca/config.yaml")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, ndjson (default from config)")
	cmd.PersistentFlags().Bool("plain", false, "disable colours and styling in table output")

	cmd.AddCommand(
		NewEstimateCmd(),
		NewProjectCmd(),
		NewCompareCmd(),
		NewInteractiveCmd(),
		newCatalogCmd(),
		newConfigCmd(),
	)

	return cmd
}

// initConfig resolves the project directory and loads the merged
// configuration into the global singleton.
func initConfig(cmd *cobra.Command) {
	ctx := cmd.Context()
	flagValue, _ := cmd.Flags().GetString("project-dir")
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	projectDir := config.ResolveProjectDir(ctx, flagValue, cwd)
	config.SetResolvedProjectDir(projectDir)
	config.InitGlobalConfigWithProject(ctx, projectDir)

	if loadErr := config.GetGlobalConfig().LoadError(); loadErr != nil {
		cmd.PrintErrf("Warning: ignoring config file: %v\n", loadErr)
	}
}

const rootCmdExample = `  # Footprint of the default t-shirt scenario
  garmentlca estimate

  # Organic cotton, EU manufacturing, line-dried, 120 washes
  garmentlca estimate --material organic --manufacturing eu --use-phase cold-line --washes 120

  # Cumulative footprint every 25 washes
  garmentlca project --step 25

  # Five lowest-carbon scenarios that keep hemp as the material
  garmentlca compare --by carbon --material hemp

  # Edit a scenario interactively
  garmentlca interactive

  # List the catalog options
  garmentlca catalog list

  # Initialize configuration
  garmentlca config init`

// newCatalogCmd creates the catalog command group.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Impact catalog commands"}
	cmd.AddCommand(
		NewCatalogListCmd(), NewCatalogValidateCmd(),
		NewCatalogSDGsCmd(), NewCatalogExportCmd(),
	)
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
