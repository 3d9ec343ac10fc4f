package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/scenario"
)

// Aggregate computes the per-stage breakdown, grand totals, stakeholder
// scores and SDG union for sc.
//
// Fixed stages contribute their factor once. The repeated stage
// contributes its per-wash factor times sc.UsageCount, and its stakeholder
// scores are scaled by UsageCount over the option's reference usage.
// Totals are exact float sums; nothing is rounded here.
//
// It returns ErrInvalidUsageCount, ErrMissingSelection or
// catalog.ErrUnknownOption without a partial result.
func (e *Engine) Aggregate(ctx context.Context, sc scenario.Scenario) (Totals, error) {
	log := logging.FromContext(ctx)

	opts, err := e.resolve(sc)
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "aggregate").
			Err(err).
			Msg("scenario rejected")
		return Totals{}, fmt.Errorf("aggregating scenario: %w", err)
	}

	stakeholders := e.cat.Stakeholders()
	t := Totals{
		Stages:           make([]StageTotal, 0, len(opts)),
		Stakeholders:     make(map[string]float64, len(stakeholders)),
		StakeholderOrder: stakeholders,
		UsageCount:       sc.UsageCount,
	}
	for _, name := range stakeholders {
		t.Stakeholders[name] = 0
	}

	n := float64(sc.UsageCount)
	var fixed, repeated catalog.ImpactFactor
	sdgs := make(map[int]struct{})

	for i, st := range catalog.Stages() {
		opt := opts[i]
		entry := StageTotal{
			Stage:     st,
			OptionID:  opt.ID,
			Label:     opt.DisplayName(),
			PerUnit:   opt.Impact,
			Impact:    opt.Impact,
			Repeated:  st.Repeated(),
			SDGs:      slices.Clone(opt.SDGs),
			UrbanNote: opt.UrbanNote,
		}

		if st.Repeated() {
			entry.Impact = opt.Impact.Scale(n)
			entry.Stakeholders = scaleScores(opt.Stakeholders, sc.UsageCount, e.cat.ReferenceUsage(opt))
			repeated = repeated.Add(entry.Impact)
		} else {
			entry.Stakeholders = scaleScores(opt.Stakeholders, 1, 1)
			fixed = fixed.Add(entry.Impact)
		}

		for name, v := range entry.Stakeholders {
			t.Stakeholders[name] += v
		}
		for _, g := range opt.SDGs {
			sdgs[g] = struct{}{}
		}
		t.Stages = append(t.Stages, entry)
	}

	t.Total = fixed.Add(repeated)
	t.SDGs = slices.Sorted(maps.Keys(sdgs))

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "aggregate").
		Int("usage_count", sc.UsageCount).
		Float64("water_l", t.Total.Water).
		Float64("carbon_kg", t.Total.Carbon).
		Ints("sdgs", t.SDGs).
		Msg("scenario aggregated")

	return t, nil
}

// resolve validates sc and returns the selected options in stage order.
func (e *Engine) resolve(sc scenario.Scenario) ([]catalog.StageOption, error) {
	if err := scenario.CheckUsageCount(sc.UsageCount, e.horizon); err != nil {
		return nil, err
	}
	stages := catalog.Stages()
	opts := make([]catalog.StageOption, len(stages))
	for i, st := range stages {
		id := sc.Selection(st)
		if id == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingSelection, st)
		}
		opt, err := e.cat.Lookup(st, id)
		if err != nil {
			return nil, err
		}
		opts[i] = opt
	}
	return opts, nil
}

// fixedImpact sums the non-repeated stages in stage order.
func fixedImpact(opts []catalog.StageOption) catalog.ImpactFactor {
	var fixed catalog.ImpactFactor
	for i, st := range catalog.Stages() {
		if !st.Repeated() {
			fixed = fixed.Add(opts[i].Impact)
		}
	}
	return fixed
}

// scaleScores returns score × count / reference for every entry. The
// product is taken before dividing so doubling count doubles the result
// exactly.
func scaleScores(scores map[string]int, count, reference int) map[string]float64 {
	if len(scores) == 0 {
		return nil
	}
	out := make(map[string]float64, len(scores))
	for name, score := range scores {
		out[name] = float64(score) * float64(count) / float64(reference)
	}
	return out
}
