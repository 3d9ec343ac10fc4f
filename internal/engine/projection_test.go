package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/scenario"
)

func TestProject_DefaultScenario(t *testing.T) {
	eng, cat := newEngine(t)
	sc := scenario.Default(cat)

	series, err := eng.Project(context.Background(), sc)
	require.NoError(t, err)

	require.Len(t, series.Points, engine.DefaultHorizon)
	assert.Equal(t, engine.DefaultHorizon, series.Horizon)
	assert.Equal(t, 50, series.Highlight)
	assert.InDelta(t, 2860.0, series.Fixed.Water, 1e-9)
	assert.InDelta(t, 10.3, series.Fixed.Carbon, 1e-9)
	assert.Equal(t, catalog.ImpactFactor{Water: 8, Carbon: 0.05}, series.PerUnit)

	first, ok := series.At(1)
	require.True(t, ok)
	assert.Equal(t, 1, first.UsageCount)
	assert.InDelta(t, 2868.0, first.Water, 1e-9)

	last, ok := series.At(engine.DefaultHorizon)
	require.True(t, ok)
	assert.InDelta(t, 4460.0, last.Water, 1e-9)

	_, ok = series.At(0)
	assert.False(t, ok)
	_, ok = series.At(engine.DefaultHorizon + 1)
	assert.False(t, ok)

	totals, err := eng.Aggregate(context.Background(), sc)
	require.NoError(t, err)
	active := series.Active()
	assert.Equal(t, 50, active.UsageCount)
	assert.Equal(t, totals.Total.Water, active.Water)
	assert.Equal(t, totals.Total.Carbon, active.Carbon)
}

func TestProject_WaterMonotonic(t *testing.T) {
	eng, cat := newEngine(t)

	series, err := eng.Project(context.Background(), scenario.Default(cat))
	require.NoError(t, err)
	for i := 1; i < len(series.Points); i++ {
		assert.GreaterOrEqual(t, series.Points[i].Water, series.Points[i-1].Water)
	}
}

func TestProject_CarbonMayDecrease(t *testing.T) {
	cat, err := catalog.Parse([]byte(creditWashCatalog))
	require.NoError(t, err)
	eng := engine.New(cat).WithHorizon(10)

	series, err := eng.Project(context.Background(), scenario.Scenario{
		Selections: defaultsOf(cat),
		UsageCount: 5,
	})
	require.NoError(t, err)
	require.Len(t, series.Points, 10)
	assert.Less(t, series.Points[9].Carbon, series.Points[0].Carbon)
	assert.Greater(t, series.Points[9].Water, series.Points[0].Water)
}

const creditWashCatalog = `schema_version: "1.0.0"
stakeholders: []
stages:
  material: {default: a, options: [{id: a, impact: {water: 10, carbon: 1}}]}
  manufacturing: {default: a, options: [{id: a, impact: {water: 0, carbon: 0}}]}
  distribution: {default: a, options: [{id: a, impact: {water: 0, carbon: 0}}]}
  last_mile: {default: a, options: [{id: a, impact: {water: 0, carbon: 0}}]}
  use_phase: {default: w, options: [{id: w, impact: {water: 1, carbon: -0.1}}]}
  end_of_life: {default: a, options: [{id: a, impact: {water: 0, carbon: 0}}]}
`

func defaultsOf(cat *catalog.Catalog) map[catalog.Stage]string {
	return scenario.Default(cat).Selections
}

func TestProject_Errors(t *testing.T) {
	eng, cat := newEngine(t)

	sc := scenario.Default(cat)
	_, err := eng.WithHorizon(20).Project(context.Background(), sc)
	require.ErrorIs(t, err, engine.ErrInvalidUsageCount, "highlight must lie within the horizon")

	sc.Selections[catalog.StageUsePhase] = "tumble-dry"
	_, err = eng.Project(context.Background(), sc)
	require.ErrorIs(t, err, catalog.ErrUnknownOption)
}

func TestProject_Restartable(t *testing.T) {
	eng, cat := newEngine(t)
	sc := scenario.Default(cat)

	a, err := eng.Project(context.Background(), sc)
	require.NoError(t, err)
	b, err := eng.Project(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func BenchmarkProject(b *testing.B) {
	eng, cat := newEngine(b)
	sc := scenario.Default(cat)
	ctx := context.Background()
	for b.Loop() {
		_, _ = eng.Project(ctx, sc)
	}
}
