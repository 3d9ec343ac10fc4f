package engine

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/scenario"
)

// Metric selects the impact dimension scenarios are ranked by.
type Metric string

// Ranking metrics.
const (
	MetricWater  Metric = "water"
	MetricCarbon Metric = "carbon"
)

// DefaultCompareTop is the number of best and worst scenarios reported
// when CompareRequest.Top is not set.
const DefaultCompareTop = 5

// ParseMetric converts a metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(s)); m {
	case MetricWater, MetricCarbon:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: water, carbon)", ErrInvalidMetric, s)
	}
}

func (m Metric) value(f catalog.ImpactFactor) float64 {
	if m == MetricCarbon {
		return f.Carbon
	}
	return f.Water
}

func (m Metric) other() Metric {
	if m == MetricCarbon {
		return MetricWater
	}
	return MetricCarbon
}

// CompareRequest describes a sweep over the scenario space.
type CompareRequest struct {
	// UsageCount is applied to every evaluated scenario.
	UsageCount int

	// By is the ranking metric. Defaults to MetricWater.
	By Metric

	// Fixed pins stages to one option; unpinned stages vary over every
	// catalog option.
	Fixed map[catalog.Stage]string

	// Top is how many best and worst scenarios to keep.
	Top int
}

// RankedScenario is one evaluated scenario and its position.
type RankedScenario struct {
	Rank     int                  `json:"rank"`
	Scenario scenario.Scenario    `json:"scenario"`
	Total    catalog.ImpactFactor `json:"total"`
}

// Comparison is the result of Compare.
type Comparison struct {
	By         Metric `json:"by"`
	UsageCount int    `json:"usage_count"`
	Evaluated  int    `json:"evaluated"`

	// Best lists the lowest-impact scenarios, best first.
	Best []RankedScenario `json:"best"`

	// Worst lists the highest-impact scenarios, worst first.
	Worst []RankedScenario `json:"worst"`
}

// Compare aggregates every combination of options allowed by req and
// ranks them by req.By. Ties fall back to the other metric and then to
// catalog option order, so the ranking is deterministic.
func (e *Engine) Compare(ctx context.Context, req CompareRequest) (*Comparison, error) {
	log := logging.FromContext(ctx)

	by := req.By
	if by == "" {
		by = MetricWater
	}
	if _, err := ParseMetric(string(by)); err != nil {
		return nil, err
	}
	if err := scenario.CheckUsageCount(req.UsageCount, e.horizon); err != nil {
		return nil, fmt.Errorf("comparing scenarios: %w", err)
	}
	top := req.Top
	if top < 1 {
		top = DefaultCompareTop
	}

	choices, err := e.choices(req.Fixed)
	if err != nil {
		return nil, fmt.Errorf("comparing scenarios: %w", err)
	}
	space := expand(choices, req.UsageCount)

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "compare").
		Int("scenarios", len(space)).
		Str("by", string(by)).
		Msg("evaluating scenario space")

	totals := make([]catalog.ImpactFactor, len(space))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, chunk := range chunks(len(space), runtime.NumCPU()) {
		g.Go(func() error {
			for i := chunk[0]; i < chunk[1]; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				t, aggErr := e.Aggregate(gCtx, space[i])
				if aggErr != nil {
					return aggErr
				}
				totals[i] = t.Total
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("comparing scenarios: %w", err)
	}

	order := make([]int, len(space))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(by.value(totals[a]), by.value(totals[b])); c != 0 {
			return c
		}
		if c := cmp.Compare(by.other().value(totals[a]), by.other().value(totals[b])); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	top = min(top, len(order))
	result := &Comparison{
		By:         by,
		UsageCount: req.UsageCount,
		Evaluated:  len(space),
		Best:       make([]RankedScenario, 0, top),
		Worst:      make([]RankedScenario, 0, top),
	}
	for r := range top {
		i := order[r]
		result.Best = append(result.Best, RankedScenario{Rank: r + 1, Scenario: space[i], Total: totals[i]})
	}
	for r := range top {
		pos := len(order) - 1 - r
		i := order[pos]
		result.Worst = append(result.Worst, RankedScenario{Rank: pos + 1, Scenario: space[i], Total: totals[i]})
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "compare").
		Int("evaluated", result.Evaluated).
		Msg("scenario space ranked")

	return result, nil
}

// choices returns the candidate option ids per stage in stage order.
func (e *Engine) choices(fixed map[catalog.Stage]string) ([][]string, error) {
	stages := catalog.Stages()
	out := make([][]string, len(stages))
	for i, st := range stages {
		if id, ok := fixed[st]; ok {
			if _, err := e.cat.Lookup(st, id); err != nil {
				return nil, err
			}
			out[i] = []string{id}
			continue
		}
		out[i] = e.cat.OptionIDs(st)
	}
	return out, nil
}

// expand builds the cartesian product of choices. The last stage varies
// fastest.
func expand(choices [][]string, usage int) []scenario.Scenario {
	n := 1
	for _, c := range choices {
		n *= len(c)
	}
	stages := catalog.Stages()
	out := make([]scenario.Scenario, n)
	for idx := range n {
		sc := scenario.Scenario{
			Selections: make(map[catalog.Stage]string, len(stages)),
			UsageCount: usage,
		}
		rem := idx
		for s := len(stages) - 1; s >= 0; s-- {
			c := choices[s]
			sc.Selections[stages[s]] = c[rem%len(c)]
			rem /= len(c)
		}
		out[idx] = sc
	}
	return out
}

// chunks splits [0, n) into at most parts contiguous half-open ranges.
func chunks(n, parts int) [][2]int {
	if n == 0 {
		return nil
	}
	parts = max(1, min(parts, n))
	size := (n + parts - 1) / parts
	out := make([][2]int, 0, parts)
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}
	return out
}
