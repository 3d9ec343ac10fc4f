package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/tui"
)

// loadCatalog returns the catalog named by --catalog, then model.catalog_path,
// falling back to the built-in catalog.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	ctx := cmd.Context()
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = config.GetCatalogPath()
	}

	if path == "" {
		return catalog.Default()
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "cli").
		Str("catalog_path", path).
		Str("catalog", cat.Name()).
		Msg("loaded custom catalog")
	return cat, nil
}

// outputFormat returns the --output flag or the configured default.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if !slices.Contains(config.ValidOutputFormats(), format) {
		return "", fmt.Errorf("unsupported output format: %s (valid: %v)", format, config.ValidOutputFormats())
	}
	return format, nil
}

// styled reports whether table output should use lipgloss styling.
func styled(cmd *cobra.Command) bool {
	plain, _ := cmd.Flags().GetBool("plain")
	return tui.DetectOutputMode(plain, false) == tui.OutputModeStyled
}

// displayPrecision returns the configured water and carbon precision.
func displayPrecision() tui.Precision {
	out := config.GetGlobalConfig().Output
	return tui.Precision{Water: out.WaterPrecision, Carbon: out.CarbonPrecision}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// writeNDJSON writes each record on its own line.
func writeNDJSON[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding NDJSON record %d: %w", i, err)
		}
	}
	return nil
}
