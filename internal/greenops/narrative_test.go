package greenops

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/scenario"
)

func aggregate(t *testing.T, mutate func(*scenario.Scenario)) engine.Totals {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	sc := scenario.Default(cat)
	if mutate != nil {
		mutate(&sc)
	}
	totals, err := engine.New(cat).Aggregate(context.Background(), sc)
	require.NoError(t, err)
	return totals
}

func lowWater(s *scenario.Scenario) {
	s.Selections[catalog.StageMaterial] = "hemp"
	s.Selections[catalog.StageManufacturing] = "eu"
	s.Selections[catalog.StageDistribution] = "sea"
	s.Selections[catalog.StageLastMile] = "cargo-bike"
	s.Selections[catalog.StageUsePhase] = "cold-line"
	s.Selections[catalog.StageEndOfLife] = "recycling"
	s.UsageCount = 77
}

func TestNarrate_DefaultScenario(t *testing.T) {
	n, err := Narrate(aggregate(t, nil))
	require.NoError(t, err)

	require.Len(t, n.SDGSentences, 4)
	assert.Contains(t, n.SDGSentences[0], "extending life")
	assert.Contains(t, n.SDGSentences[1], "water stress")
	assert.Contains(t, n.SDGSentences[1], "3,260 L")
	assert.Contains(t, n.SDGSentences[2], "Climate action")
	assert.Contains(t, n.SDGSentences[3], "Healthy cities")
	assert.Equal(t, strings.Join(n.SDGSentences, " "), n.SDGSummary)

	assert.Len(t, n.SDGs, len(catalog.KnownSDGs()))
	assert.Contains(t, n.Equivalencies.DisplayText, "~3.6 years")

	assert.Equal(t, []StakeholderImpact{
		{Name: "farmers", Score: -2, Level: ImpactNegative},
		{Name: "factory_workers", Score: -1, Level: ImpactNegative},
		{Name: "local_communities", Score: -5, Level: ImpactNegative},
		{Name: "ecosystems", Score: -4, Level: ImpactNegative},
	}, n.Stakeholders)
}

func TestSDGSentences_WaterStressThreshold(t *testing.T) {
	high := aggregate(t, nil)
	require.InDelta(t, 3260.0, high.Total.Water, 1e-9)
	require.True(t, high.HasSDG(SDGCleanWater))
	assert.True(t, containsFragment(SDGSentences(high), "water stress"))

	low := aggregate(t, lowWater)
	require.InDelta(t, 800.0, low.Total.Water, 1e-9)
	require.True(t, low.HasSDG(SDGCleanWater))
	assert.False(t, containsFragment(SDGSentences(low), "water stress"))
}

func TestSDGSentences_UsageTieBreak(t *testing.T) {
	tests := []struct {
		usage int
		want  string
	}{
		{usage: 125, want: "extending life"},
		{usage: 126, want: "maximizing utility"},
		{usage: 1, want: "extending life"},
		{usage: 200, want: "maximizing utility"},
	}
	for _, tt := range tests {
		totals := aggregate(t, func(s *scenario.Scenario) { s.UsageCount = tt.usage })
		sentences := SDGSentences(totals)
		assert.Contains(t, sentences[0], tt.want, "usage %d", tt.usage)
	}
}

func TestSDGSentences_ClimateThreshold(t *testing.T) {
	low := aggregate(t, lowWater)
	assert.False(t, containsFragment(SDGSentences(low), "Climate action"))

	// china manufacturing carries SDG 13; total carbon stays under 10 kg.
	mid := aggregate(t, func(s *scenario.Scenario) {
		lowWater(s)
		s.Selections[catalog.StageManufacturing] = "china"
	})
	require.True(t, mid.HasSDG(SDGClimateAction))
	require.Less(t, mid.Total.Carbon, ClimateThresholdKg)
	assert.False(t, containsFragment(SDGSentences(mid), "Climate action"))
}

func TestSDGSentences_UrbanHealthNeedsSevereNote(t *testing.T) {
	electric := aggregate(t, func(s *scenario.Scenario) {
		s.Selections[catalog.StageLastMile] = "electric-van"
	})
	require.True(t, electric.HasSDG(SDGSustainableCities))
	assert.False(t, containsFragment(SDGSentences(electric), "Healthy cities"))
}

func TestSDGSentences_Fallback(t *testing.T) {
	totals := engine.Totals{
		Total:      catalog.ImpactFactor{Water: 9000, Carbon: 50},
		SDGs:       []int{SDGLifeBelowWater},
		UsageCount: 50,
	}
	assert.Equal(t, []string{sdgFallback}, SDGSentences(totals))
}

func TestUrbanImpactText(t *testing.T) {
	text := UrbanImpactText(aggregate(t, nil))
	require.True(t, strings.HasPrefix(text, urbanPrefix))

	mfg := strings.Index(text, "Coal-heavy grids")
	dist := strings.Index(text, "Container ports")
	lastMile := strings.Index(text, "Diesel delivery trucks")
	eol := strings.Index(text, "Landfilled textiles")
	require.True(t, mfg >= 0 && dist >= 0 && lastMile >= 0 && eol >= 0, text)
	assert.Less(t, mfg, dist)
	assert.Less(t, dist, lastMile)
	assert.Less(t, lastMile, eol)

	assert.Equal(t, urbanFallback, UrbanImpactText(engine.Totals{}))
}

func TestUrbanImpactText_SkipsEmptyNotes(t *testing.T) {
	totals := engine.Totals{Stages: []engine.StageTotal{
		{Stage: catalog.StageManufacturing, UrbanNote: "Mill smog."},
		{Stage: catalog.StageDistribution},
		{Stage: catalog.StageEndOfLife, UrbanNote: "  Landfill odour.  "},
		{Stage: catalog.StageUsePhase, UrbanNote: "ignored"},
	}}
	assert.Equal(t, urbanPrefix+"Mill smog. Landfill odour.", UrbanImpactText(totals))
}

func TestClassifyScore(t *testing.T) {
	assert.Equal(t, ImpactNegative, ClassifyScore(-0.5))
	assert.Equal(t, ImpactNeutral, ClassifyScore(0))
	assert.Equal(t, ImpactPositive, ClassifyScore(2))
}

func TestStakeholderImpacts_SortsWithoutOrder(t *testing.T) {
	got := StakeholderImpacts(engine.Totals{Stakeholders: map[string]float64{"b": 1, "a": 0}})
	assert.Equal(t, []StakeholderImpact{
		{Name: "a", Score: 0, Level: ImpactNeutral},
		{Name: "b", Score: 1, Level: ImpactPositive},
	}, got)
}

func TestNarrate_RejectsNegativeWater(t *testing.T) {
	_, err := Narrate(engine.Totals{Total: catalog.ImpactFactor{Water: -1}})
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func containsFragment(sentences []string, fragment string) bool {
	for _, s := range sentences {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
