package greenops

import (
	"fmt"
	"math"
)

// Calculate computes footprint equivalencies for a water total in litres
// and a carbon total in kg CO2e.
//
//	drinkingWaterYears = water / (2.5 × 365)
//	carMiles           = carbon / 0.4
//
// Carbon may be negative, in which case the miles figure is a credit and
// the display text says so. It returns ErrNegativeValue for negative water
// and ErrCalculationOverflow for non-finite input.
//
// Example:
//
//	output, err := Calculate(3260, 13.1)
//	// output.DisplayText: "Equivalent to ~3.6 years of one person's drinking water and driving ~33 miles"
func Calculate(water, carbon float64) (EquivalencyOutput, error) {
	if !finite(water) || !finite(carbon) {
		return EquivalencyOutput{}, ErrCalculationOverflow
	}
	if water < 0 {
		return EquivalencyOutput{}, fmt.Errorf("%w: %v", ErrNegativeValue, water)
	}

	years := water / DrinkingWaterLitresPerYear
	miles := carbon / CarKgCO2ePerMile

	yearsFormatted := FormatFloat(years, DrinkingYearsPrecision)
	milesFormatted := formatEquivalencyValue(math.Abs(miles))

	results := []EquivalencyResult{
		{
			Type:           EquivalencyDrinkingWaterYears,
			Value:          years,
			FormattedValue: yearsFormatted,
			Label:          "years of drinking water",
		},
		{
			Type:           EquivalencyCarMiles,
			Value:          miles,
			FormattedValue: milesFormatted,
			Label:          "miles driven",
		},
	}

	var displayText, compactText string
	if miles < 0 {
		displayText = fmt.Sprintf(
			"Equivalent to ~%s years of one person's drinking water and a carbon credit worth ~%s miles of driving",
			yearsFormatted, milesFormatted)
		compactText = fmt.Sprintf("(≈ %s yr water, -%s mi)", yearsFormatted, milesFormatted)
	} else {
		displayText = fmt.Sprintf(
			"Equivalent to ~%s years of one person's drinking water and driving ~%s miles",
			yearsFormatted, milesFormatted)
		compactText = fmt.Sprintf("(≈ %s yr water, %s mi)", yearsFormatted, milesFormatted)
	}

	return EquivalencyOutput{
		WaterLitres: water,
		CarbonKg:    carbon,
		Results:     results,
		DisplayText: displayText,
		CompactText: compactText,
	}, nil
}

// formatEquivalencyValue rounds v to an integer with separators, switching
// to million/billion notation for very large values.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
