package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/greenops"
)

// catalogOptionRecord is one option in catalog list JSON output.
type catalogOptionRecord struct {
	Stage   catalog.Stage `json:"stage"`
	Default bool          `json:"default"`
	catalog.StageOption
}

// NewCatalogListCmd creates the "catalog list" command.
func NewCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stage option and its impact factors",
		Example: `  # Built-in catalog
  garmentlca catalog list

  # A custom catalog as JSON
  garmentlca catalog list --catalog ./jeans.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			records := catalogRecords(cat)
			out := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return writeJSON(out, records)
			case config.FormatNDJSON:
				return writeNDJSON(out, records)
			default:
				return renderCatalogTable(out, cat, records)
			}
		},
	}
}

func catalogRecords(cat *catalog.Catalog) []catalogOptionRecord {
	var records []catalogOptionRecord
	for _, st := range catalog.Stages() {
		def := cat.DefaultOption(st)
		for _, opt := range cat.Options(st) {
			records = append(records, catalogOptionRecord{Stage: st, Default: opt.ID == def, StageOption: opt})
		}
	}
	return records
}

func renderCatalogTable(w io.Writer, cat *catalog.Catalog, records []catalogOptionRecord) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Catalog: %s (schema %s, %d scenarios)\n\n", productName(cat), cat.SchemaVersion(), cat.ScenarioCount())

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tOPTION\tLABEL\tWATER (L)\tCARBON (kg CO2e)\tSDGS")
	for _, r := range records {
		id := r.ID
		if r.Default {
			id += "*"
		}
		perUnit := ""
		if r.Stage.Repeated() {
			perUnit = "/wash"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\t%s%s\t%s\n",
			r.Stage, id, r.DisplayName(),
			greenops.FormatFloat(r.Impact.Water, 1), perUnit,
			greenops.FormatFloat(r.Impact.Carbon, 3), perUnit,
			joinInts(r.SDGs))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	sb.WriteString("\n* stage default\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// NewCatalogValidateCmd creates the "catalog validate" command.
func NewCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a catalog file against the schema and model rules",
		Example: `  garmentlca catalog validate ./jeans.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("catalog validation failed: %w", err)
			}
			cmd.Printf("Catalog %s is valid: schema %s, %d options, %d scenarios\n",
				args[0], cat.SchemaVersion(), len(catalogRecords(cat)), cat.ScenarioCount())
			return nil
		},
	}
}

// sdgRecord is one goal in catalog sdgs output.
type sdgRecord struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// NewCatalogSDGsCmd creates the "catalog sdgs" command.
func NewCatalogSDGsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sdgs",
		Short: "List the Sustainable Development Goals catalogs may reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			ids := catalog.KnownSDGs()
			records := make([]sdgRecord, len(ids))
			for i, id := range ids {
				records[i] = sdgRecord{ID: id, Name: greenops.SDGName(id), IconURL: greenops.SDGIconURL(id)}
			}

			out := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return writeJSON(out, records)
			case config.FormatNDJSON:
				return writeNDJSON(out, records)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SDG\tNAME\tICON")
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Name, r.IconURL)
			}
			return tw.Flush()
		},
	}
}

// NewCatalogExportCmd creates the "catalog export" command, which writes the
// built-in catalog as a starting point for a custom one.
func NewCatalogExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in catalog YAML",
		Example: `  # Print to stdout
  garmentlca catalog export

  # Start a custom catalog
  garmentlca catalog export --file ./my-catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := catalog.DefaultYAML()
			if outFile == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o600); err != nil {
				return fmt.Errorf("writing catalog: %w", err)
			}
			cmd.Printf("Catalog written to %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "write to this path instead of stdout")

	return cmd
}
