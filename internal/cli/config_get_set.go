package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/config"
)

// NewConfigGetCmd creates the config get command, which prints one
// effective setting.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a configuration value",
		Long: "Print the effective value of a dotted configuration key after the global file, " +
			"project overlay and environment overrides are applied.\n\nKeys: " +
			strings.Join(config.Keys(), ", "),
		Example: `  garmentlca config get model.default_usage_count`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. The value is validated
// with the rest of the file before it is written.
func NewConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: "Set a dotted configuration key in the project config file, or the global file " +
			"with --global or outside a project.\n\nKeys: " + strings.Join(config.Keys(), ", "),
		Example: `  # Default to 80 washes
  garmentlca config set model.default_usage_count 80

  # JSON output everywhere
  garmentlca config set output.default_format json --global`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configTargetPath(global)
			if err != nil {
				return err
			}
			return setConfigValue(cmd, path, args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "write the global configuration even inside a project")

	return cmd
}

func setConfigValue(cmd *cobra.Command, path, key, value string) error {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Defaults()
		cfg.SetConfigPath(path)
	} else if err != nil {
		return err
	}

	if err = cfg.Set(key, value); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Set %s = %s in %s\n", key, value, path)
	return nil
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every effective configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			cfg := config.GetGlobalConfig()
			if format == config.FormatJSON || format == config.FormatNDJSON {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range config.Keys() {
				v, _ := cfg.Get(key)
				fmt.Fprintf(tw, "%s\t%s\n", key, v)
			}
			return tw.Flush()
		},
	}
}
