package greenops

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/engine"
)

// urbanStages are the stages whose notes feed the urban impact text, in
// narrative order.
//
//nolint:gochecknoglobals // Fixed narrative order.
var urbanStages = []catalog.Stage{
	catalog.StageManufacturing,
	catalog.StageDistribution,
	catalog.StageLastMile,
	catalog.StageEndOfLife,
}

const (
	urbanPrefix   = "Urban impact: "
	urbanFallback = "The selected options have no documented urban impact."
	sdgFallback   = "The selected options show no notable SDG trade-offs at this level of use."
)

// Narrate derives the equivalencies, urban impact text, SDG summary and
// stakeholder lines from t.
func Narrate(t engine.Totals) (Narrative, error) {
	eq, err := Calculate(t.Total.Water, t.Total.Carbon)
	if err != nil {
		return Narrative{}, fmt.Errorf("calculating equivalencies: %w", err)
	}

	sentences := SDGSentences(t)
	return Narrative{
		Equivalencies: eq,
		UrbanImpact:   UrbanImpactText(t),
		SDGSentences:  sentences,
		SDGSummary:    strings.Join(sentences, " "),
		SDGs:          SDGIcons(t.SDGs),
		Stakeholders:  StakeholderImpacts(t),
	}, nil
}

// UrbanImpactText joins the urban notes of the manufacturing,
// distribution, last-mile and end-of-life selections, skipping stages
// without one.
func UrbanImpactText(t engine.Totals) string {
	notes := make([]string, 0, len(urbanStages))
	for _, st := range urbanStages {
		entry, ok := t.Stage(st)
		if !ok {
			continue
		}
		if note := strings.TrimSpace(entry.UrbanNote); note != "" {
			notes = append(notes, note)
		}
	}
	if len(notes) == 0 {
		return urbanFallback
	}
	return urbanPrefix + strings.Join(notes, " ")
}

// SDGSentences evaluates the SDG rules in fixed order and returns the
// text of every rule that fires. When none fire it returns the fallback
// sentence alone.
func SDGSentences(t engine.Totals) []string {
	var out []string

	if t.HasSDG(SDGConsumption) {
		if t.UsageCount > HighUsageThreshold {
			out = append(out, fmt.Sprintf(
				"Responsible consumption (SDG 12): at %d washes this garment is maximizing utility from its production footprint.",
				t.UsageCount))
		} else {
			out = append(out, fmt.Sprintf(
				"Responsible consumption (SDG 12): extending life beyond %d washes spreads the production footprint over more wear.",
				t.UsageCount))
		}
	}

	if t.HasSDG(SDGCleanWater) && t.Total.Water > WaterStressThresholdLitres {
		out = append(out, fmt.Sprintf(
			"Clean water (SDG 6): %s L exceeds %s L, adding to water stress where fibres are grown and dyed.",
			FormatWater(t.Total.Water), FormatWater(WaterStressThresholdLitres)))
	}

	if t.HasSDG(SDGClimateAction) && t.Total.Carbon > ClimateThresholdKg {
		out = append(out, fmt.Sprintf(
			"Climate action (SDG 13): %s kg CO2e is above %s kg; cleaner energy and transport choices would cut it.",
			FormatCarbon(t.Total.Carbon), FormatCarbon(ClimateThresholdKg)))
	}

	if (t.HasSDG(SDGGoodHealth) || t.HasSDG(SDGSustainableCities)) && lastMileIsSevere(t) {
		out = append(out,
			"Healthy cities (SDG 3, SDG 11): last-mile delivery is a significant source of street-level air pollution.")
	}

	if len(out) == 0 {
		return []string{sdgFallback}
	}
	return out
}

func lastMileIsSevere(t engine.Totals) bool {
	entry, ok := t.Stage(catalog.StageLastMile)
	return ok && strings.Contains(entry.UrbanNote, UrbanSeverityMarker)
}

// StakeholderImpacts lists every stakeholder score in catalog order,
// classified by sign.
func StakeholderImpacts(t engine.Totals) []StakeholderImpact {
	order := t.StakeholderOrder
	if len(order) == 0 {
		order = slices.Sorted(maps.Keys(t.Stakeholders))
	}

	out := make([]StakeholderImpact, 0, len(order))
	for _, name := range order {
		score := t.Stakeholders[name]
		out = append(out, StakeholderImpact{Name: name, Score: score, Level: ClassifyScore(score)})
	}
	return out
}

// ClassifyScore maps a stakeholder score to its impact level.
func ClassifyScore(score float64) ImpactLevel {
	switch {
	case score < 0:
		return ImpactNegative
	case score > 0:
		return ImpactPositive
	default:
		return ImpactNeutral
	}
}
