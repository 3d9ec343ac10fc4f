package engine

import (
	"maps"
	"slices"

	"github.com/rshade/garmentlca/internal/catalog"
)

// StageTotal is one stage's contribution to a scenario.
type StageTotal struct {
	Stage    catalog.Stage `json:"stage"`
	OptionID string        `json:"option_id"`
	Label    string        `json:"label"`

	// PerUnit is the option's catalog factor. For repeated stages it is
	// the per-wash factor; otherwise it equals Impact.
	PerUnit catalog.ImpactFactor `json:"per_unit"`

	// Impact is the stage's contribution to the total.
	Impact   catalog.ImpactFactor `json:"impact"`
	Repeated bool                 `json:"repeated"`

	Stakeholders map[string]float64 `json:"stakeholders,omitempty"`
	SDGs         []int              `json:"sdgs,omitempty"`
	UrbanNote    string             `json:"urban_note,omitempty"`
}

// Totals is the full result of aggregating one scenario.
type Totals struct {
	// Stages is the per-stage breakdown in catalog.Stages() order.
	Stages []StageTotal `json:"stages"`

	// Total is the sum of every stage's Impact.
	Total catalog.ImpactFactor `json:"total"`

	// Stakeholders holds the summed score for every catalog stakeholder.
	Stakeholders map[string]float64 `json:"stakeholders"`

	// StakeholderOrder lists the stakeholder keys in catalog order.
	StakeholderOrder []string `json:"-"`

	// SDGs is the sorted union of the selected options' goals.
	SDGs []int `json:"sdgs"`

	UsageCount int `json:"usage_count"`
}

// Clone returns a deep copy of t.
func (t Totals) Clone() Totals {
	c := t
	c.Stages = slices.Clone(t.Stages)
	for i := range c.Stages {
		c.Stages[i].Stakeholders = maps.Clone(t.Stages[i].Stakeholders)
		c.Stages[i].SDGs = slices.Clone(t.Stages[i].SDGs)
	}
	c.Stakeholders = maps.Clone(t.Stakeholders)
	c.StakeholderOrder = slices.Clone(t.StakeholderOrder)
	c.SDGs = slices.Clone(t.SDGs)
	return c
}

// Stage returns the breakdown entry for s.
func (t Totals) Stage(s catalog.Stage) (StageTotal, bool) {
	for _, st := range t.Stages {
		if st.Stage == s {
			return st, true
		}
	}
	return StageTotal{}, false
}

// HasSDG reports whether goal id is in the SDG union.
func (t Totals) HasSDG(id int) bool {
	return slices.Contains(t.SDGs, id)
}

// Share returns stage s's fraction of the total water and carbon. A zero
// total yields a zero share. Carbon shares may fall outside 0..1 when some
// stages carry credits.
func (t Totals) Share(s catalog.Stage) catalog.ImpactFactor {
	st, ok := t.Stage(s)
	if !ok {
		return catalog.ImpactFactor{}
	}
	return ratio(st.Impact, t.Total)
}

// UsageShare returns the fraction of the total attributable to the
// repeated-impact stage.
func (t Totals) UsageShare() catalog.ImpactFactor {
	return t.Share(catalog.StageUsePhase)
}

func ratio(part, whole catalog.ImpactFactor) catalog.ImpactFactor {
	var r catalog.ImpactFactor
	if whole.Water != 0 {
		r.Water = part.Water / whole.Water
	}
	if whole.Carbon != 0 {
		r.Carbon = part.Carbon / whole.Carbon
	}
	return r
}

// ProjectionPoint is the cumulative footprint after UsageCount washes.
type ProjectionPoint struct {
	UsageCount int     `json:"usage_count"`
	Water      float64 `json:"water"`
	Carbon     float64 `json:"carbon"`
}

// ProjectionSeries is the cumulative footprint for every usage count in
// 1..Horizon.
type ProjectionSeries struct {
	Points  []ProjectionPoint `json:"points"`
	Horizon int               `json:"horizon"`

	// Highlight is the scenario's current usage count.
	Highlight int `json:"highlight"`

	// Fixed is the combined impact of every non-repeated stage.
	Fixed catalog.ImpactFactor `json:"fixed"`

	// PerUnit is the repeated stage's per-wash factor.
	PerUnit catalog.ImpactFactor `json:"per_unit"`
}

// At returns the point for usage count n (1-indexed).
func (p ProjectionSeries) At(n int) (ProjectionPoint, bool) {
	if n < 1 || n > len(p.Points) {
		return ProjectionPoint{}, false
	}
	return p.Points[n-1], true
}

// Active returns the highlighted point.
func (p ProjectionSeries) Active() ProjectionPoint {
	pt, _ := p.At(p.Highlight)
	return pt
}

// Clone returns a copy of p with its own Points.
func (p ProjectionSeries) Clone() ProjectionSeries {
	c := p
	c.Points = slices.Clone(p.Points)
	return c
}
