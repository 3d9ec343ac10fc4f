package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/greenops"
	"github.com/rshade/garmentlca/internal/session"
	"github.com/rshade/garmentlca/internal/tui"
)

// Projection output defaults.
const (
	defaultProjectStep = 10
	projectSparkWidth  = 50
)

// NewProjectCmd creates the "project" command, which prints the cumulative
// footprint for every wash count up to the horizon.
func NewProjectCmd() *cobra.Command {
	var (
		flags *scenarioFlags
		step  int
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the cumulative footprint over the garment's life",
		Long: `Compute the cumulative water and carbon footprint after 1, 2, ... washes up
to the configured horizon. Table output samples every --step washes and always
includes the first wash, the scenario's wash count and the horizon.`,
		Example: `  # Every 10 washes for the default scenario
  garmentlca project

  # Every 25 washes with cold line drying
  garmentlca project --use-phase cold-line --step 25

  # Every point as NDJSON
  garmentlca project --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if step < 1 {
				return fmt.Errorf("--step must be >= 1, got %d", step)
			}
			return executeProject(cmd, flags, step)
		},
	}
	flags = addScenarioFlags(cmd)
	cmd.Flags().IntVar(&step, "step", defaultProjectStep, "wash interval between table rows")

	return cmd
}

func executeProject(cmd *cobra.Command, flags *scenarioFlags, step int) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	sc, err := flags.build(cmd, cat)
	if err != nil {
		return err
	}

	res, err := session.Compute(cmd.Context(), cat, sc, config.GetGlobalConfig().Model.Horizon)
	if err != nil {
		return fmt.Errorf("projecting footprint: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return writeJSON(out, res.Projection)
	case config.FormatNDJSON:
		return writeNDJSON(out, res.Projection.Points)
	default:
		if styled(cmd) {
			_, err = fmt.Fprintln(out, tui.RenderProjection(res.Projection, displayPrecision(), projectSparkWidth))
			if err != nil {
				return err
			}
		}
		return renderProjectionTable(out, res.Projection, step, displayPrecision())
	}
}

// sampleUsage returns the usage counts shown for a series: 1, every step,
// the highlight and the horizon, ascending and without duplicates.
func sampleUsage(series engine.ProjectionSeries, step int) []int {
	last := len(series.Points)
	if last == 0 {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	add := func(n int) {
		if n >= 1 && n <= last && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for n := 1; n <= last; n++ {
		if n == 1 || n%step == 0 || n == series.Highlight || n == last {
			add(n)
		}
	}
	return out
}

// renderProjectionTable writes the sampled series with a marker on the
// scenario's wash count.
func renderProjectionTable(w io.Writer, series engine.ProjectionSeries, step int, p tui.Precision) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Fixed stages: %s L, %s kg CO2e; per wash: %s L, %s kg CO2e\n\n",
		greenops.FormatFloat(series.Fixed.Water, p.Water),
		greenops.FormatFloat(series.Fixed.Carbon, p.Carbon),
		greenops.FormatFloat(series.PerUnit.Water, p.Water+1),
		greenops.FormatFloat(series.PerUnit.Carbon, p.Carbon+2))

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WASHES\tWATER (L)\tCARBON (kg CO2e)")
	for _, n := range sampleUsage(series, step) {
		pt, _ := series.At(n)
		fmt.Fprintf(tw, "%d\t%s\t%s", n,
			greenops.FormatFloat(pt.Water, p.Water),
			greenops.FormatFloat(pt.Carbon, p.Carbon))
		if n == series.Highlight {
			fmt.Fprint(tw, "\t<- scenario")
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	water := make([]float64, len(series.Points))
	for i, pt := range series.Points {
		water[i] = pt.Water
	}
	fmt.Fprintf(&sb, "\nwater %s\n", tui.Sparkline(water, projectSparkWidth))

	_, err := io.WriteString(w, sb.String())
	return err
}
