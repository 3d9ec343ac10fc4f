package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/greenops"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/session"
	"github.com/rshade/garmentlca/internal/tui"
)

const percent = 100

// NewEstimateCmd creates the "estimate" command, which computes the full
// footprint of one scenario.
func NewEstimateCmd() *cobra.Command {
	var flags *scenarioFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the footprint of one scenario",
		Long: `Compute the water and carbon footprint of a garment for one choice of option
per lifecycle stage and a number of washes. Unset stages use the catalog defaults.`,
		Example: `  # Default scenario
  garmentlca estimate

  # Recycled polyester shipped by rail, donated after 80 washes
  garmentlca estimate --material recycled-polyester --distribution rail \
    --end-of-life donation --washes 80

  # Machine-readable output
  garmentlca estimate --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, flags)
		},
	}
	flags = addScenarioFlags(cmd)

	return cmd
}

func executeEstimate(cmd *cobra.Command, flags *scenarioFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

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

	res, err := session.Compute(ctx, cat, sc, config.GetGlobalConfig().Model.Horizon)
	if err != nil {
		return fmt.Errorf("estimating footprint: %w", err)
	}

	log.Info().Ctx(ctx).
		Str("operation", "estimate").
		Str("scenario", sc.String()).
		Float64("water", res.Totals.Total.Water).
		Float64("carbon", res.Totals.Total.Carbon).
		Dur("duration_ms", time.Since(start)).
		Msg("estimate complete")

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return writeJSON(out, res)
	case config.FormatNDJSON:
		return writeNDJSON(out, estimateRecords(res))
	default:
		if styled(cmd) {
			_, err = fmt.Fprintln(out, tui.RenderResult(res, cat.Name(), displayPrecision(), 0))
			return err
		}
		return renderEstimateTable(out, cat, res, displayPrecision())
	}
}

// estimateRecord is one NDJSON line of estimate output.
type estimateRecord struct {
	Record     string                `json:"record"`
	Stage      catalog.Stage         `json:"stage,omitempty"`
	OptionID   string                `json:"option_id,omitempty"`
	Water      float64               `json:"water"`
	Carbon     float64               `json:"carbon"`
	UsageCount int                   `json:"usage_count,omitempty"`
	Narrative  *greenops.Narrative   `json:"narrative,omitempty"`
	Share      *catalog.ImpactFactor `json:"share,omitempty"`
}

// estimateRecords flattens a result into one record per stage followed
// by a total record carrying the narrative.
func estimateRecords(res session.Result) []estimateRecord {
	t := res.Totals
	records := make([]estimateRecord, 0, len(t.Stages)+1)
	for _, st := range t.Stages {
		share := t.Share(st.Stage)
		records = append(records, estimateRecord{
			Record:   "stage",
			Stage:    st.Stage,
			OptionID: st.OptionID,
			Water:    st.Impact.Water,
			Carbon:   st.Impact.Carbon,
			Share:    &share,
		})
	}
	narrative := res.Narrative
	records = append(records, estimateRecord{
		Record:     "total",
		Water:      t.Total.Water,
		Carbon:     t.Total.Carbon,
		UsageCount: t.UsageCount,
		Narrative:  &narrative,
	})
	return records
}

// renderEstimateTable writes the plain-text report.
func renderEstimateTable(w io.Writer, cat *catalog.Catalog, res session.Result, p tui.Precision) error {
	t := res.Totals
	var sb strings.Builder

	fmt.Fprintf(&sb, "Garment footprint: %s (%d washes)\n\n", productName(cat), t.UsageCount)

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tOPTION\tWATER (L)\tCARBON (kg CO2e)\tWATER %\tCARBON %")
	for _, st := range t.Stages {
		share := t.Share(st.Stage)
		label := st.Label
		if st.Repeated {
			label = fmt.Sprintf("%s x%d", label, t.UsageCount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f%%\t%.1f%%\n",
			st.Stage.Label(), label,
			greenops.FormatFloat(st.Impact.Water, p.Water),
			greenops.FormatFloat(st.Impact.Carbon, p.Carbon),
			share.Water*percent, share.Carbon*percent)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t%s\n",
		greenops.FormatFloat(t.Total.Water, p.Water),
		greenops.FormatFloat(t.Total.Carbon, p.Carbon))
	if err := tw.Flush(); err != nil {
		return err
	}

	n := res.Narrative
	fmt.Fprintf(&sb, "\n%s\n", n.Equivalencies.DisplayText)
	fmt.Fprintf(&sb, "\n%s\n", n.UrbanImpact)

	sb.WriteString("\nSustainable Development Goals:\n")
	for _, s := range n.SDGSentences {
		fmt.Fprintf(&sb, "  - %s\n", s)
	}
	for _, icon := range n.SDGs {
		fmt.Fprintf(&sb, "  SDG %-2d %s\n", icon.ID, icon.Name)
	}

	sb.WriteString("\nStakeholders:\n")
	for _, s := range n.Stakeholders {
		fmt.Fprintf(&sb, "  %-20s %+.1f (%s)\n", s.Name, s.Score, s.Level)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func productName(cat *catalog.Catalog) string {
	if cat.Name() == "" {
		return "garment"
	}
	return cat.Name()
}
