package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/greenops"
	"github.com/rshade/garmentlca/internal/tui"
)

// NewCompareCmd creates the "compare" command, which ranks every option
// combination by water or carbon.
func NewCompareCmd() *cobra.Command {
	var (
		flags *scenarioFlags
		by    string
		top   int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank lifecycle scenarios from best to worst",
		Long: `Evaluate every combination of catalog options and list the lowest and
highest impact scenarios. Stage flags pin a stage to one option; stages
without a flag vary over all of their options.`,
		Example: `  # Ten best and worst scenarios by water at 50 washes
  garmentlca compare --top 10

  # Rank by carbon with organic cotton fixed
  garmentlca compare --by carbon --material organic

  # Full ranking as JSON
  garmentlca compare --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCompare(cmd, flags, by, top)
		},
	}
	flags = addScenarioFlags(cmd)
	cmd.Flags().StringVar(&by, "by", string(engine.MetricWater), "ranking metric: water or carbon")
	cmd.Flags().IntVar(&top, "top", engine.DefaultCompareTop, "number of best and worst scenarios to show")

	return cmd
}

func executeCompare(cmd *cobra.Command, flags *scenarioFlags, by string, top int) error {
	metric, err := engine.ParseMetric(by)
	if err != nil {
		return fmt.Errorf("--by: %w", err)
	}
	if top < 1 {
		return fmt.Errorf("--top must be >= 1, got %d", top)
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	// build validates the pinned option ids and resolves the wash count.
	sc, err := flags.build(cmd, cat)
	if err != nil {
		return err
	}

	eng := engine.New(cat).WithHorizon(config.GetGlobalConfig().Model.Horizon)
	cmp, err := eng.Compare(cmd.Context(), engine.CompareRequest{
		UsageCount: sc.UsageCount,
		By:         metric,
		Fixed:      flags.selected(cmd),
		Top:        top,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return writeJSON(out, cmp)
	case config.FormatNDJSON:
		return writeNDJSON(out, compareRecords(cmp))
	default:
		return renderComparison(out, cmp, displayPrecision())
	}
}

// compareRecord is one NDJSON line of a comparison.
type compareRecord struct {
	List string `json:"list"`
	engine.RankedScenario
}

func compareRecords(cmp *engine.Comparison) []compareRecord {
	records := make([]compareRecord, 0, len(cmp.Best)+len(cmp.Worst))
	for _, r := range cmp.Best {
		records = append(records, compareRecord{List: "best", RankedScenario: r})
	}
	for _, r := range cmp.Worst {
		records = append(records, compareRecord{List: "worst", RankedScenario: r})
	}
	return records
}

func renderComparison(w io.Writer, cmp *engine.Comparison, p tui.Precision) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compared %d scenarios by %s at %d washes\n", cmp.Evaluated, cmp.By, cmp.UsageCount)

	section := func(title string, rows []engine.RankedScenario) error {
		fmt.Fprintf(&sb, "\n%s:\n", title)
		tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tWATER (L)\tCARBON (kg CO2e)\tOPTIONS")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Rank,
				greenops.FormatFloat(r.Total.Water, p.Water),
				greenops.FormatFloat(r.Total.Carbon, p.Carbon),
				optionPath(r))
		}
		return tw.Flush()
	}

	if err := section("Best", cmp.Best); err != nil {
		return err
	}
	if err := section("Worst", cmp.Worst); err != nil {
		return err
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// optionPath joins a scenario's option ids in stage order.
func optionPath(r engine.RankedScenario) string {
	ids := make([]string, 0, len(catalog.Stages()))
	for _, st := range catalog.Stages() {
		ids = append(ids, r.Scenario.Selection(st))
	}
	return strings.Join(ids, " / ")
}
