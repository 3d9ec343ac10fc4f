// Package catalog provides the static impact reference data for a garment
// lifecycle.
//
// A Catalog maps each lifecycle Stage to a fixed, ordered set of
// StageOptions, each carrying a water/carbon ImpactFactor plus optional
// SDG tags, stakeholder scores and an urban impact note. Catalogs are
// parsed and validated once and are read-only afterwards.
package catalog

import (
	"fmt"
	"maps"
	"slices"
)

// Stage identifies one phase of the garment lifecycle.
type Stage string

// Lifecycle stages in their fixed display and summation order.
const (
	StageMaterial      Stage = "material"
	StageManufacturing Stage = "manufacturing"
	StageDistribution  Stage = "distribution"
	StageLastMile      Stage = "last_mile"
	StageUsePhase      Stage = "use_phase"
	StageEndOfLife     Stage = "end_of_life"
)

// DefaultReferenceUsageCount is the wash count that use-phase stakeholder
// scores are expressed against when neither the catalog nor the option
// overrides it.
const DefaultReferenceUsageCount = 50

// Stakeholder score bounds.
const (
	MinStakeholderScore = -2
	MaxStakeholderScore = 2
)

// Stages returns every lifecycle stage in fixed order.
func Stages() []Stage {
	return []Stage{
		StageMaterial,
		StageManufacturing,
		StageDistribution,
		StageLastMile,
		StageUsePhase,
		StageEndOfLife,
	}
}

// ParseStage converts a stage identifier into a Stage.
func ParseStage(s string) (Stage, error) {
	st := Stage(s)
	if slices.Contains(Stages(), st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// Repeated reports whether the stage contributes once per usage unit
// rather than once per garment.
func (s Stage) Repeated() bool {
	return s == StageUsePhase
}

// Label returns a human-readable stage name.
func (s Stage) Label() string {
	switch s {
	case StageMaterial:
		return "Material"
	case StageManufacturing:
		return "Manufacturing"
	case StageDistribution:
		return "Distribution"
	case StageLastMile:
		return "Last-mile delivery"
	case StageUsePhase:
		return "Use phase"
	case StageEndOfLife:
		return "End of life"
	default:
		return string(s)
	}
}

// ImpactFactor is the water (litres) and carbon (kg CO2e) cost of one
// occurrence of a stage option. Carbon may be negative for credits such
// as recycling.
type ImpactFactor struct {
	Water  float64 `yaml:"water"  json:"water"`
	Carbon float64 `yaml:"carbon" json:"carbon"`
}

// Add returns the pointwise sum of f and o.
func (f ImpactFactor) Add(o ImpactFactor) ImpactFactor {
	return ImpactFactor{Water: f.Water + o.Water, Carbon: f.Carbon + o.Carbon}
}

// Scale multiplies both components by n.
func (f ImpactFactor) Scale(n float64) ImpactFactor {
	return ImpactFactor{Water: f.Water * n, Carbon: f.Carbon * n}
}

// StageOption is one selectable choice within a stage.
type StageOption struct {
	// ID is the stable identifier used in scenarios and flags.
	ID string `yaml:"id" json:"id"`

	// Label is the display name.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// Impact is the per-occurrence factor (per wash for the use phase).
	Impact ImpactFactor `yaml:"impact" json:"impact"`

	// SDGs lists UN Sustainable Development Goal identifiers.
	SDGs []int `yaml:"sdgs,omitempty" json:"sdgs,omitempty"`

	// Stakeholders maps stakeholder name to a score in -2..2.
	Stakeholders map[string]int `yaml:"stakeholders,omitempty" json:"stakeholders,omitempty"`

	// UrbanNote is a free-form description of the option's urban impact.
	UrbanNote string `yaml:"urban_note,omitempty" json:"urban_note,omitempty"`

	// ReferenceUsage overrides the catalog reference wash count for
	// stakeholder scaling. Only valid on use-phase options; 0 inherits.
	ReferenceUsage int `yaml:"reference_usage,omitempty" json:"reference_usage,omitempty"`
}

// DisplayName returns the label, falling back to the ID.
func (o StageOption) DisplayName() string {
	if o.Label != "" {
		return o.Label
	}
	return o.ID
}

// HasSDG reports whether the option is tagged with the given goal.
func (o StageOption) HasSDG(id int) bool {
	return slices.Contains(o.SDGs, id)
}

func (o StageOption) clone() StageOption {
	o.SDGs = slices.Clone(o.SDGs)
	o.Stakeholders = maps.Clone(o.Stakeholders)
	return o
}

// KnownSDGs returns the goal identifiers a catalog option may carry.
func KnownSDGs() []int {
	return []int{3, 6, 7, 8, 9, 11, 12, 13, 14, 15}
}

// IsKnownSDG reports whether id is an accepted goal identifier.
func IsKnownSDG(id int) bool {
	return slices.Contains(KnownSDGs(), id)
}
