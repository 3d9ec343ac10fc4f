package greenops

// Equivalency Constants
//
// An equivalency restates a raw total in everyday terms by dividing it by
// a per-unit factor:
//
//	equivalency = total / factor
const (
	// DrinkingWaterLitresPerDay is the daily drinking water need of one
	// person.
	DrinkingWaterLitresPerDay = 2.5

	// DaysPerYear converts daily drinking water into a yearly figure.
	DaysPerYear = 365.0

	// DrinkingWaterLitresPerYear is the divisor for the drinking water
	// equivalency.
	DrinkingWaterLitresPerYear = DrinkingWaterLitresPerDay * DaysPerYear

	// CarKgCO2ePerMile is kg CO2e per mile for an average passenger car.
	CarKgCO2ePerMile = 0.4
)

// Narrative Threshold Constants control which SDG sentences fire.
const (
	// WaterStressThresholdLitres is the total water above which the clean
	// water goal sentence is added.
	WaterStressThresholdLitres = 2500.0

	// ClimateThresholdKg is the total carbon above which the climate
	// action sentence is added.
	ClimateThresholdKg = 10.0

	// HighUsageThreshold splits the responsible consumption sentence:
	// above it the garment is "maximizing utility", otherwise the reader
	// is encouraged toward "extending life".
	HighUsageThreshold = 125

	// UrbanSeverityMarker in the last-mile urban note triggers the urban
	// health sentence.
	UrbanSeverityMarker = "significant"
)

// Display precision. Rounding happens only when formatting.
const (
	WaterDisplayPrecision  = 0
	CarbonDisplayPrecision = 1

	// DrinkingYearsPrecision is the decimals shown for drinking water years.
	DrinkingYearsPrecision = 1
)

// Large number display thresholds.
const (
	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)

// SDGIconURLFormat builds the UN icon URL for a goal; the id is zero
// padded to two digits.
const SDGIconURLFormat = "https://sdgs.un.org/sites/default/files/goals/E_SDG_Icons-%02d.jpg"

// UN Sustainable Development Goal identifiers used by the narrative rules.
const (
	SDGGoodHealth        = 3
	SDGCleanWater        = 6
	SDGCleanEnergy       = 7
	SDGDecentWork        = 8
	SDGIndustry          = 9
	SDGSustainableCities = 11
	SDGConsumption       = 12
	SDGClimateAction     = 13
	SDGLifeBelowWater    = 14
	SDGLifeOnLand        = 15
)
