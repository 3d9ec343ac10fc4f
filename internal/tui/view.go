package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/greenops"
	"github.com/rshade/garmentlca/internal/session"
)

// Layout constants.
const (
	shareBarWidth     = 20
	defaultSparkWidth = 50
	stageColWidth     = 18
	optionColWidth    = 22
	numberColWidth    = 10
	shareColWidth     = 8
	percent           = 100
)

// Precision is the number of decimals shown for water and carbon.
type Precision struct {
	Water  int
	Carbon int
}

// DefaultPrecision returns the standard display precision.
func DefaultPrecision() Precision {
	return Precision{Water: greenops.WaterDisplayPrecision, Carbon: greenops.CarbonDisplayPrecision}
}

func (p Precision) water(v float64) string  { return greenops.FormatFloat(v, p.Water) + " L" }
func (p Precision) carbon(v float64) string { return greenops.FormatFloat(v, p.Carbon) + " kg CO2e" }

// RenderHeader renders the title box.
func RenderHeader(product string) string {
	title := "Garment Footprint"
	if product != "" {
		title += ": " + product
	}
	return TitleStyle.Render(title)
}

// RenderTotals renders the water and carbon totals with their
// equivalencies.
func RenderTotals(res session.Result, p Precision) string {
	var sb strings.Builder
	t := res.Totals

	sb.WriteString(LabelStyle.Render("Washes: "))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%d", t.UsageCount)))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Water:  "))
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorWater).Bold(true).Render(p.water(t.Total.Water)))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Carbon: "))
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorCarbon).Bold(true).Render(p.carbon(t.Total.Carbon)))
	if text := res.Narrative.Equivalencies.DisplayText; text != "" {
		sb.WriteString("\n")
		sb.WriteString(MutedStyle.Italic(true).Render(text))
	}
	return sb.String()
}

// RenderBreakdown renders one line per stage with its water share bar.
// focused marks a stage index with the selection icon; pass -1 for none.
func RenderBreakdown(t engine.Totals, p Precision, focused int) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Lifecycle breakdown"))
	sb.WriteString("\n")

	for i, st := range t.Stages {
		marker := "  "
		nameStyle := LabelStyle
		if i == focused {
			marker = IconSelected + " "
			nameStyle = FocusedStyle
		}
		share := t.Share(st.Stage)
		label := st.Label
		if st.Repeated {
			label += fmt.Sprintf(" ×%d", t.UsageCount)
		}
		fmt.Fprintf(&sb, "%s%s %s %s %s %s\n",
			marker,
			nameStyle.Render(pad(st.Stage.Label(), stageColWidth)),
			ValueStyle.Render(pad(label, optionColWidth)),
			pad(p.water(st.Impact.Water), numberColWidth+2),
			lipgloss.NewStyle().Foreground(ColorWater).Render(Bar(share.Water, shareBarWidth)),
			MutedStyle.Render(fmt.Sprintf("%5.1f%%", share.Water*percent)),
		)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NewBreakdownTable builds a bubbles table of the per-stage breakdown.
func NewBreakdownTable(t engine.Totals, p Precision, height int) table.Model {
	columns := []table.Column{
		{Title: "Stage", Width: stageColWidth},
		{Title: "Option", Width: optionColWidth},
		{Title: "Water", Width: numberColWidth + 2},
		{Title: "Carbon", Width: numberColWidth + 6},
		{Title: "Water %", Width: shareColWidth},
	}

	rows := make([]table.Row, len(t.Stages))
	for i, st := range t.Stages {
		rows[i] = table.Row{
			st.Stage.Label(),
			st.Label,
			p.water(st.Impact.Water),
			p.carbon(st.Impact.Carbon),
			fmt.Sprintf("%.1f%%", t.Share(st.Stage).Water*percent),
		}
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	tbl.SetStyles(s)

	return tbl
}

// RenderProjection renders water and carbon sparklines over the horizon.
func RenderProjection(series engine.ProjectionSeries, p Precision, width int) string {
	if len(series.Points) == 0 {
		return MutedStyle.Render("No projection available.")
	}
	if width <= 0 {
		width = defaultSparkWidth
	}

	water := make([]float64, len(series.Points))
	carbon := make([]float64, len(series.Points))
	for i, pt := range series.Points {
		water[i] = pt.Water
		carbon[i] = pt.Carbon
	}
	first := series.Points[0]
	last := series.Points[len(series.Points)-1]

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(fmt.Sprintf("Cumulative footprint, 1 to %d washes", series.Horizon)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s %s %s\n",
		LabelStyle.Render("water "),
		MutedStyle.Render(p.water(first.Water)),
		lipgloss.NewStyle().Foreground(ColorWater).Render(Sparkline(water, width)),
		MutedStyle.Render(p.water(last.Water)),
	)
	fmt.Fprintf(&sb, "%s %s %s %s",
		LabelStyle.Render("carbon"),
		MutedStyle.Render(p.carbon(first.Carbon)),
		lipgloss.NewStyle().Foreground(ColorCarbon).Render(Sparkline(carbon, width)),
		MutedStyle.Render(p.carbon(last.Carbon)),
	)
	if active, ok := series.At(series.Highlight); ok {
		fmt.Fprintf(&sb, "\n%s %s, %s",
			LabelStyle.Render(fmt.Sprintf("at %d washes:", active.UsageCount)),
			ValueStyle.Render(p.water(active.Water)),
			ValueStyle.Render(p.carbon(active.Carbon)),
		)
	}
	return sb.String()
}

// RenderStakeholders renders one line per stakeholder score.
func RenderStakeholders(n greenops.Narrative) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Stakeholders"))
	for _, s := range n.Stakeholders {
		fmt.Fprintf(&sb, "\n  %s %s",
			LabelStyle.Render(pad(s.Name, optionColWidth)),
			levelStyle(s.Score).Render(fmt.Sprintf("%+.1f %s", s.Score, s.Level)),
		)
	}
	return sb.String()
}

// RenderNarrative renders the urban impact text, SDG sentences and icons.
func RenderNarrative(n greenops.Narrative, width int) string {
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Urban impact"))
	sb.WriteString("\n")
	sb.WriteString(wrap.Render(strings.TrimPrefix(n.UrbanImpact, "Urban impact: ")))
	sb.WriteString("\n\n")
	sb.WriteString(HeaderStyle.Render("Sustainable Development Goals"))
	for _, sentence := range n.SDGSentences {
		sb.WriteString("\n")
		sb.WriteString(wrap.Render("• " + sentence))
	}
	if len(n.SDGs) > 0 {
		ids := make([]string, len(n.SDGs))
		for i, icon := range n.SDGs {
			ids[i] = fmt.Sprintf("%d", icon.ID)
		}
		sb.WriteString("\n")
		sb.WriteString(MutedStyle.Render("Goals touched: " + strings.Join(ids, ", ")))
	}
	return sb.String()
}

// RenderResult renders the full styled report for a result.
func RenderResult(res session.Result, product string, p Precision, width int) string {
	sections := []string{
		RenderHeader(product),
		RenderTotals(res, p),
		RenderBreakdown(res.Totals, p, -1),
		RenderProjection(res.Projection, p, defaultSparkWidth),
		RenderStakeholders(res.Narrative),
		RenderNarrative(res.Narrative, width),
	}
	return strings.Join(sections, "\n\n")
}

// pad right-pads s to width runes, truncating with an ellipsis.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
