package engine_test

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/scenario"
)

// scenarioAt decodes idx into one combination of the catalog's options.
func scenarioAt(cat *catalog.Catalog, idx, usage int) scenario.Scenario {
	sc := scenario.Scenario{Selections: make(map[catalog.Stage]string), UsageCount: usage}
	for _, st := range catalog.Stages() {
		ids := cat.OptionIDs(st)
		sc.Selections[st] = ids[idx%len(ids)]
		idx /= len(ids)
	}
	return sc
}

func properties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestAggregateProperties(t *testing.T) {
	eng, cat := newEngine(t)
	ctx := context.Background()
	space := gen.IntRange(0, cat.ScenarioCount()-1)

	props := properties(t)

	props.Property("grand total equals the sum of stages", prop.ForAll(
		func(idx, n int) bool {
			totals, err := eng.Aggregate(ctx, scenarioAt(cat, idx, n))
			if err != nil {
				return false
			}
			var sum catalog.ImpactFactor
			for _, st := range totals.Stages {
				sum = sum.Add(st.Impact)
			}
			return math.Abs(sum.Water-totals.Total.Water) <= 1e-9 &&
				math.Abs(sum.Carbon-totals.Total.Carbon) <= 1e-9
		},
		space, gen.IntRange(1, engine.DefaultHorizon),
	))

	props.Property("doubling usage doubles the use-phase contribution", prop.ForAll(
		func(idx, n int) bool {
			single, err := eng.Aggregate(ctx, scenarioAt(cat, idx, n))
			if err != nil {
				return false
			}
			double, err := eng.Aggregate(ctx, scenarioAt(cat, idx, 2*n))
			if err != nil {
				return false
			}
			a, _ := single.Stage(catalog.StageUsePhase)
			b, _ := double.Stage(catalog.StageUsePhase)
			if b.Impact.Water != 2*a.Impact.Water || b.Impact.Carbon != 2*a.Impact.Carbon {
				return false
			}
			for name, v := range a.Stakeholders {
				if b.Stakeholders[name] != 2*v {
					return false
				}
			}
			return len(a.Stakeholders) == len(b.Stakeholders)
		},
		space, gen.IntRange(1, engine.DefaultHorizon/2),
	))

	props.Property("aggregate is idempotent", prop.ForAll(
		func(idx, n int) bool {
			sc := scenarioAt(cat, idx, n)
			a, errA := eng.Aggregate(ctx, sc)
			b, errB := eng.Aggregate(ctx, sc)
			return errA == nil && errB == nil && reflect.DeepEqual(a, b)
		},
		space, gen.IntRange(1, engine.DefaultHorizon),
	))

	props.Property("water is never negative", prop.ForAll(
		func(idx, n int) bool {
			totals, err := eng.Aggregate(ctx, scenarioAt(cat, idx, n))
			if err != nil || totals.Total.Water < 0 {
				return false
			}
			for _, st := range totals.Stages {
				if st.Impact.Water < 0 {
					return false
				}
			}
			return true
		},
		space, gen.IntRange(1, engine.DefaultHorizon),
	))

	props.TestingRun(t)
}

func TestProjectionProperties(t *testing.T) {
	eng, cat := newEngine(t)
	ctx := context.Background()
	space := gen.IntRange(0, cat.ScenarioCount()-1)

	props := properties(t)

	props.Property("projection agrees with aggregate at every usage count", prop.ForAll(
		func(idx, highlight int) bool {
			series, err := eng.Project(ctx, scenarioAt(cat, idx, highlight))
			if err != nil || len(series.Points) != eng.Horizon() {
				return false
			}
			for n := 1; n <= eng.Horizon(); n++ {
				totals, aggErr := eng.Aggregate(ctx, scenarioAt(cat, idx, n))
				if aggErr != nil {
					return false
				}
				pt, ok := series.At(n)
				if !ok || pt.UsageCount != n || pt.Water != totals.Total.Water || pt.Carbon != totals.Total.Carbon {
					return false
				}
			}
			return series.Highlight == highlight
		},
		space, gen.IntRange(1, engine.DefaultHorizon),
	))

	props.Property("projected water is non-decreasing", prop.ForAll(
		func(idx int) bool {
			series, err := eng.Project(ctx, scenarioAt(cat, idx, 1))
			if err != nil {
				return false
			}
			for i := 1; i < len(series.Points); i++ {
				if series.Points[i].Water < series.Points[i-1].Water {
					return false
				}
			}
			return true
		},
		space,
	))

	props.TestingRun(t)
}
