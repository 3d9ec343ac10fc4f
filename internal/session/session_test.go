package session_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/scenario"
	"github.com/rshade/garmentlca/internal/session"
)

func newSession(t *testing.T) (*session.Session, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, err := session.New(context.Background(), cat, session.Options{})
	require.NoError(t, err)
	return s, cat
}

func TestNew_DefaultResult(t *testing.T) {
	s, cat := newSession(t)
	res := s.Current()

	assert.NotEmpty(t, res.PassID)
	assert.Equal(t, scenario.Default(cat), res.Scenario)
	assert.InDelta(t, 3260.0, res.Totals.Total.Water, 1e-9)
	assert.Len(t, res.Projection.Points, engine.DefaultHorizon)
	assert.Equal(t, 50, res.Projection.Highlight)
	assert.NotEmpty(t, res.Narrative.SDGSummary)
}

func TestNew_InitialScenario(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	initial := scenario.Default(cat)
	initial.UsageCount = 10
	s, err := session.New(context.Background(), cat, session.Options{Horizon: 20, Initial: &initial})
	require.NoError(t, err)

	res := s.Current()
	assert.Equal(t, 10, res.Totals.UsageCount)
	assert.Len(t, res.Projection.Points, 20)
	assert.Equal(t, 20, s.Engine().Horizon())

	initial.UsageCount = 50
	_, err = session.New(context.Background(), cat, session.Options{Horizon: 20, Initial: &initial})
	require.ErrorIs(t, err, engine.ErrInvalidUsageCount)
}

func TestApply_RecomputesEverything(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()
	before := s.Current()

	res, err := s.Apply(ctx, session.SelectOption{Stage: catalog.StageMaterial, OptionID: "organic"})
	require.NoError(t, err)

	assert.NotEqual(t, before.PassID, res.PassID)
	assert.Equal(t, "organic", res.Scenario.Selection(catalog.StageMaterial))
	assert.InDelta(t, 3260.0-2700+950, res.Totals.Total.Water, 1e-9)
	assert.InDelta(t, res.Totals.Total.Water, res.Projection.Active().Water, 0)
	assert.Equal(t, res, s.Current())

	res, err = s.Apply(ctx, session.SetUsage{Count: 150})
	require.NoError(t, err)
	assert.Equal(t, 150, res.Totals.UsageCount)
	assert.Equal(t, 150, res.Projection.Highlight)
	assert.Contains(t, res.Narrative.SDGSummary, "maximizing utility")
	assert.Equal(t, "organic", res.Scenario.Selection(catalog.StageMaterial), "earlier selections persist")
}

func TestApply_FailureKeepsPreviousResult(t *testing.T) {
	s, _ := newSession(t)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())
	before := s.Current()

	tests := []struct {
		name    string
		ev      session.Event
		wantErr error
	}{
		{"unknown option", session.SelectOption{Stage: catalog.StageLastMile, OptionID: "drone"}, catalog.ErrUnknownOption},
		{"unknown stage", session.SelectOption{Stage: "dyeing", OptionID: "x"}, catalog.ErrUnknownStage},
		{"zero washes", session.SetUsage{Count: 0}, scenario.ErrInvalidUsageCount},
		{"too many washes", session.SetUsage{Count: engine.DefaultHorizon + 1}, scenario.ErrInvalidUsageCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Apply(ctx, tt.ev)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, res)
			assert.Equal(t, before, s.Current())
		})
	}

	assert.Contains(t, buf.String(), "keeping previous result")
}

func TestApply_Reset(t *testing.T) {
	s, cat := newSession(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, session.SelectOption{Stage: catalog.StageEndOfLife, OptionID: "donation"})
	require.NoError(t, err)
	_, err = s.Apply(ctx, session.SetUsage{Count: 7})
	require.NoError(t, err)

	res, err := s.Apply(ctx, session.Reset{})
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(cat), res.Scenario)

	want, err := session.Compute(ctx, cat, scenario.Default(cat), engine.DefaultHorizon)
	require.NoError(t, err)
	assert.Equal(t, want.Totals, res.Totals)
	assert.Equal(t, want.Projection, res.Projection)
	assert.Equal(t, want.Narrative, res.Narrative)
}

func TestApply_ResetWithinShortHorizon(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	ctx := context.Background()

	initial := scenario.Default(cat)
	initial.UsageCount = 30
	s, err := session.New(ctx, cat, session.Options{Horizon: 30, Initial: &initial})
	require.NoError(t, err)

	_, err = s.Apply(ctx, session.SelectOption{Stage: catalog.StageMaterial, OptionID: "hemp"})
	require.NoError(t, err)

	res, err := s.Apply(ctx, session.Reset{})
	require.NoError(t, err)
	assert.Equal(t, "conventional", res.Scenario.Selection(catalog.StageMaterial))
	assert.Equal(t, 30, res.Scenario.UsageCount)
	assert.Equal(t, 30, res.Projection.Highlight)
}

func TestApply_ResetRestoresDefaultUsage(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	ctx := context.Background()

	s, err := session.New(ctx, cat, session.Options{DefaultUsage: 20})
	require.NoError(t, err)

	_, err = s.Apply(ctx, session.SetUsage{Count: 90})
	require.NoError(t, err)

	res, err := s.Apply(ctx, session.Reset{})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Scenario.UsageCount)
}

func TestNew_MaxUsage(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		opts session.Options
		want int
	}{
		{name: "defaults to horizon", opts: session.Options{Horizon: 120}, want: 120},
		{name: "below horizon", opts: session.Options{Horizon: 120, MaxUsage: 60}, want: 60},
		{name: "capped at horizon", opts: session.Options{Horizon: 120, MaxUsage: 500}, want: 120},
		{name: "built-in horizon", opts: session.Options{}, want: engine.DefaultHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, newErr := session.New(ctx, cat, tt.opts)
			require.NoError(t, newErr)
			assert.Equal(t, tt.want, s.MaxUsage())
		})
	}

	s, err := session.New(ctx, cat, session.Options{Horizon: 120, MaxUsage: 60})
	require.NoError(t, err)
	_, err = s.Apply(ctx, session.SetUsage{Count: 61})
	require.ErrorIs(t, err, scenario.ErrInvalidUsageCount)
	_, err = s.Apply(ctx, session.SetUsage{Count: 60})
	require.NoError(t, err)
}

func TestResult_CallerOwnsCopy(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	res, err := s.Apply(ctx, session.SetUsage{Count: 40})
	require.NoError(t, err)
	want := s.Current()

	res.Scenario.Selections[catalog.StageMaterial] = "hemp"
	res.Totals.Stakeholders["farmers"] = 99
	res.Totals.SDGs[0] = 99
	res.Totals.StakeholderOrder[0] = "nobody"
	res.Totals.Stages[0].Impact.Water = -1
	for i := range res.Totals.Stages {
		if res.Totals.Stages[i].Stakeholders != nil {
			res.Totals.Stages[i].Stakeholders["farmers"] = 99
		}
		if len(res.Totals.Stages[i].SDGs) > 0 {
			res.Totals.Stages[i].SDGs[0] = 99
		}
	}
	res.Projection.Points[0].Water = -1
	res.Narrative.SDGSentences[0] = "changed"

	cur := s.Current()
	cur.Totals.Stakeholders["ecosystems"] = 99

	assert.Equal(t, want, s.Current())
	assert.Equal(t, "conventional", s.Current().Scenario.Selection(catalog.StageMaterial))
}

func TestApply_ResultIsIsolatedFromLaterEvents(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	first, err := s.Apply(ctx, session.SelectOption{Stage: catalog.StageMaterial, OptionID: "hemp"})
	require.NoError(t, err)
	_, err = s.Apply(ctx, session.SelectOption{Stage: catalog.StageMaterial, OptionID: "organic"})
	require.NoError(t, err)

	assert.Equal(t, "hemp", first.Scenario.Selection(catalog.StageMaterial))
}

func TestApply_Serialized(t *testing.T) {
	s, cat := newSession(t)
	ctx := context.Background()
	materials := cat.OptionIDs(catalog.StageMaterial)

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.Apply(ctx, session.SelectOption{Stage: catalog.StageMaterial, OptionID: materials[i%len(materials)]})
				return
			}
			_, _ = s.Apply(ctx, session.SetUsage{Count: 1 + i})
		}()
	}
	wg.Wait()

	res := s.Current()
	want, err := session.Compute(ctx, cat, res.Scenario, engine.DefaultHorizon)
	require.NoError(t, err)
	assert.Equal(t, want.Totals, res.Totals, "current totals match the current scenario")
	assert.Equal(t, want.Projection, res.Projection)
}
