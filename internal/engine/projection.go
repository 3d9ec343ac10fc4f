package engine

import (
	"context"
	"fmt"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/scenario"
)

// Project returns the cumulative footprint of sc for every usage count in
// 1..Horizon. Point i is the fixed-stage impact plus the per-wash factor
// times i, computed the same way Aggregate computes its total, so
// series.At(n) equals Aggregate at usage count n.
func (e *Engine) Project(ctx context.Context, sc scenario.Scenario) (ProjectionSeries, error) {
	if e.horizon < 1 {
		return ProjectionSeries{}, fmt.Errorf("%w: %d", ErrInvalidHorizon, e.horizon)
	}

	opts, err := e.resolve(sc)
	if err != nil {
		return ProjectionSeries{}, fmt.Errorf("projecting scenario: %w", err)
	}

	fixed := fixedImpact(opts)
	var perUnit catalog.ImpactFactor
	for i, st := range catalog.Stages() {
		if st.Repeated() {
			perUnit = perUnit.Add(opts[i].Impact)
		}
	}

	series := ProjectionSeries{
		Points:    make([]ProjectionPoint, e.horizon),
		Horizon:   e.horizon,
		Highlight: sc.UsageCount,
		Fixed:     fixed,
		PerUnit:   perUnit,
	}
	for i := 1; i <= e.horizon; i++ {
		total := fixed.Add(perUnit.Scale(float64(i)))
		series.Points[i-1] = ProjectionPoint{UsageCount: i, Water: total.Water, Carbon: total.Carbon}
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "project").
		Int("horizon", e.horizon).
		Int("highlight", sc.UsageCount).
		Msg("projection computed")

	return series, nil
}
