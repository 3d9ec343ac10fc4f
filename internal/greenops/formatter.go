package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
// Values that round to zero are printed without a sign.
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	precision = max(precision, 0)

	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	sign := ""
	switch {
	case rounded < 0:
		sign = "-"
		rounded = -rounded
	case rounded == 0:
		rounded = 0 // drops negative zero
	}

	if precision == 0 {
		return sign + FormatNumber(int64(rounded))
	}

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, frac, _ := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, base, 64)
	if err != nil {
		return sign + formatted
	}
	return sign + FormatNumber(n) + "." + frac
}

// FormatWater formats litres at WaterDisplayPrecision.
func FormatWater(litres float64) string {
	return FormatFloat(litres, WaterDisplayPrecision)
}

// FormatCarbon formats kg CO2e at CarbonDisplayPrecision.
func FormatCarbon(kg float64) string {
	return FormatFloat(kg, CarbonDisplayPrecision)
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold (1 million) use comma-separated format.
// Values at or above LargeNumberThreshold use "~X.X million" format.
// Values at or above BillionThreshold use "~X.X billion" format.
//
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}

	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}

	return FormatNumber(int64(math.Round(n)))
}
