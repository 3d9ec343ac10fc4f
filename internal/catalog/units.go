package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Canonical units that factors are normalized to on load.
const (
	UnitLitres = "L"
	UnitKgCO2e = "kg"
)

// Water unit conversion factors to litres.
const (
	MillilitresToLitres = 0.001
	CubicMetresToLitres = 1000.0
	USGallonsToLitres   = 3.78541
)

// Carbon unit conversion factors to kilograms CO2e.
const (
	GramsToKg  = 0.001
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// waterUnitFactor returns the conversion to litres for a unit string.
// Matching is case-insensitive; an empty unit means litres.
func waterUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "", "l", "litre", "litres", "liter", "liters":
		return 1, true
	case "ml":
		return MillilitresToLitres, true
	case "m3":
		return CubicMetresToLitres, true
	case "gal":
		return USGallonsToLitres, true
	default:
		return 0, false
	}
}

// carbonUnitFactor returns the conversion to kg CO2e for a unit string.
// Matching is case-insensitive; an empty unit means kilograms.
func carbonUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "", "kg", "kgco2e":
		return 1, true
	case "t", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// Units names the units a catalog file expresses its factors in.
type Units struct {
	Water  string `yaml:"water,omitempty"  json:"water,omitempty"`
	Carbon string `yaml:"carbon,omitempty" json:"carbon,omitempty"`
}

// normalizer converts factors expressed in Units to litres and kg CO2e.
type normalizer struct {
	water  float64
	carbon float64
}

func newNormalizer(u Units) (normalizer, error) {
	w, ok := waterUnitFactor(u.Water)
	if !ok {
		return normalizer{}, fmt.Errorf("%w: water unit %q", ErrInvalidUnit, u.Water)
	}
	c, ok := carbonUnitFactor(u.Carbon)
	if !ok {
		return normalizer{}, fmt.Errorf("%w: carbon unit %q", ErrInvalidUnit, u.Carbon)
	}
	return normalizer{water: w, carbon: c}, nil
}

// apply converts f into canonical units and rejects non-finite results.
func (n normalizer) apply(f ImpactFactor) (ImpactFactor, error) {
	out := ImpactFactor{Water: f.Water * n.water, Carbon: f.Carbon * n.carbon}
	if !isFinite(out.Water) || !isFinite(out.Carbon) {
		return ImpactFactor{}, fmt.Errorf("non-finite impact factor %+v", f)
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// IsRecognizedWaterUnit reports whether unit is a supported water unit.
func IsRecognizedWaterUnit(unit string) bool {
	_, ok := waterUnitFactor(unit)
	return ok
}

// IsRecognizedCarbonUnit reports whether unit is a supported carbon unit.
func IsRecognizedCarbonUnit(unit string) bool {
	_, ok := carbonUnitFactor(unit)
	return ok
}
