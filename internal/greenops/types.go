// Package greenops turns footprint totals into human-relatable text.
//
// It converts litres and kg CO2e into everyday equivalencies (years of
// drinking water, miles driven), assembles the urban impact narrative from
// the selected options' notes, and applies the threshold rules that write
// the SDG summary and stakeholder lines.
package greenops

import (
	"fmt"
	"slices"
)

// EquivalencyType represents a category of footprint equivalency.
type EquivalencyType int

const (
	// EquivalencyDrinkingWaterYears converts litres to years of one
	// person's drinking water.
	EquivalencyDrinkingWaterYears EquivalencyType = iota

	// EquivalencyCarMiles converts kg CO2e to miles driven by car.
	EquivalencyCarMiles
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyDrinkingWaterYears:
		return "DrinkingWaterYears"
	case EquivalencyCarMiles:
		return "CarMiles"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	// Type identifies the equivalency category.
	Type EquivalencyType `json:"type"`

	// Value is the raw calculated equivalency value.
	Value float64 `json:"value"`

	// FormattedValue is the display-ready string with separators/scaling.
	FormattedValue string `json:"formatted_value"`

	// Label is the descriptive phrase (e.g., "miles driven").
	Label string `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	WaterLitres float64 `json:"water_litres"`
	CarbonKg    float64 `json:"carbon_kg"`

	// Results contains calculated equivalencies in display order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the full prose format for CLI/TUI output.
	// Example: "Equivalent to ~3.6 years of one person's drinking water and driving ~33 miles"
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated format for constrained outputs.
	// Example: "(≈ 3.6 yr water, 33 mi)"
	CompactText string `json:"compact_text"`
}

// ImpactLevel classifies a stakeholder score.
type ImpactLevel string

// Stakeholder impact levels.
const (
	ImpactNegative ImpactLevel = "negative"
	ImpactNeutral  ImpactLevel = "neutral"
	ImpactPositive ImpactLevel = "positive"
)

// StakeholderImpact is one stakeholder's aggregated score.
type StakeholderImpact struct {
	Name  string      `json:"name"`
	Score float64     `json:"score"`
	Level ImpactLevel `json:"level"`
}

// SDGIcon is the display metadata for one goal. The icon is referenced by
// URL and never fetched.
type SDGIcon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// Narrative is the full textual summary of a Totals value.
type Narrative struct {
	Equivalencies EquivalencyOutput `json:"equivalencies"`

	// UrbanImpact joins the selected options' urban notes.
	UrbanImpact string `json:"urban_impact"`

	// SDGSentences holds every sentence whose rule fired, in rule order.
	SDGSentences []string `json:"sdg_sentences"`

	// SDGSummary is SDGSentences joined with spaces.
	SDGSummary string `json:"sdg_summary"`

	SDGs         []SDGIcon           `json:"sdgs"`
	Stakeholders []StakeholderImpact `json:"stakeholders"`
}

// Clone returns a deep copy of n.
func (n Narrative) Clone() Narrative {
	c := n
	c.Equivalencies.Results = slices.Clone(n.Equivalencies.Results)
	c.SDGSentences = slices.Clone(n.SDGSentences)
	c.SDGs = slices.Clone(n.SDGs)
	c.Stakeholders = slices.Clone(n.Stakeholders)
	return c
}
