// Package session runs the recompute pipeline: every input event mutates
// a candidate Scenario and, on success, replaces the current Result with a
// full recomputation of totals, projection and narrative.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/engine"
	"github.com/rshade/garmentlca/internal/greenops"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/scenario"
)

// Result is the output of one recomputation pass.
type Result struct {
	// PassID identifies the pass that produced this result.
	PassID     string                  `json:"pass_id"`
	Scenario   scenario.Scenario       `json:"scenario"`
	Totals     engine.Totals           `json:"totals"`
	Projection engine.ProjectionSeries `json:"projection"`
	Narrative  greenops.Narrative      `json:"narrative"`
}

// usageBounds are the wash count limits events are applied under.
type usageBounds struct {
	max int
	def int
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	return Result{
		PassID:     r.PassID,
		Scenario:   r.Scenario.Clone(),
		Totals:     r.Totals.Clone(),
		Projection: r.Projection.Clone(),
		Narrative:  r.Narrative.Clone(),
	}
}

// Event is a user input that changes the scenario.
type Event interface {
	apply(s *scenario.Scenario, cat *catalog.Catalog, b usageBounds) error
	name() string
}

// SelectOption chooses OptionID for Stage.
type SelectOption struct {
	Stage    catalog.Stage
	OptionID string
}

func (e SelectOption) apply(s *scenario.Scenario, cat *catalog.Catalog, _ usageBounds) error {
	return s.Select(cat, e.Stage, e.OptionID)
}

func (SelectOption) name() string { return "select_option" }

// SetUsage sets the wash count.
type SetUsage struct {
	Count int
}

func (e SetUsage) apply(s *scenario.Scenario, _ *catalog.Catalog, b usageBounds) error {
	return s.SetUsageCount(e.Count, b.max)
}

func (SetUsage) name() string { return "set_usage" }

// Reset restores the default selections at the session's default usage
// count.
type Reset struct{}

func (Reset) apply(s *scenario.Scenario, cat *catalog.Catalog, b usageBounds) error {
	s.Reset(cat)
	s.UsageCount = b.def
	return nil
}

func (Reset) name() string { return "reset" }

// Options configures a Session.
type Options struct {
	// Horizon is the projection horizon. Defaults to engine.DefaultHorizon.
	Horizon int

	// MaxUsage bounds the wash count. Defaults to Horizon and never
	// exceeds it.
	MaxUsage int

	// DefaultUsage is the wash count Reset restores. Defaults to
	// scenario.DefaultUsageCount, clamped to MaxUsage.
	DefaultUsage int

	// Initial is the starting scenario. Defaults to scenario.Default.
	Initial *scenario.Scenario
}

// Session owns the mutable Scenario and its latest Result. Apply is
// serialized, so one pass always completes before the next begins.
type Session struct {
	mu      sync.Mutex
	cat     *catalog.Catalog
	eng     *engine.Engine
	usage   usageBounds
	current Result
}

// New computes the initial Result and returns a ready Session.
func New(ctx context.Context, cat *catalog.Catalog, opts Options) (*Session, error) {
	eng := engine.New(cat).WithHorizon(opts.Horizon)

	b := usageBounds{max: opts.MaxUsage, def: opts.DefaultUsage}
	if b.max < scenario.MinUsageCount || b.max > eng.Horizon() {
		b.max = eng.Horizon()
	}
	if b.def < scenario.MinUsageCount {
		b.def = scenario.DefaultUsageCount
	}
	b.def, _ = scenario.ClampUsageCount(b.def, b.max)

	initial := scenario.Default(cat)
	if opts.Initial != nil {
		initial = opts.Initial.Clone()
	}

	res, err := compute(ctx, eng, initial)
	if err != nil {
		return nil, fmt.Errorf("initial recompute: %w", err)
	}
	return &Session{cat: cat, eng: eng, usage: b, current: res}, nil
}

// Apply runs one pass for ev. On failure the previous Result stays current
// and the error is returned. The returned Result is a copy the caller owns.
func (s *Session) Apply(ctx context.Context, ev Event) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logging.FromContext(ctx)

	candidate := s.current.Scenario.Clone()
	if err := ev.apply(&candidate, s.cat, s.usage); err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "session").
			Str("event", ev.name()).
			Err(err).
			Msg("event rejected, keeping previous result")
		return s.current.Clone(), err
	}

	res, err := compute(ctx, s.eng, candidate)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "session").
			Str("event", ev.name()).
			Err(err).
			Msg("recompute failed, keeping previous result")
		return s.current.Clone(), err
	}

	s.current = res
	return res.Clone(), nil
}

// Current returns a copy of the latest successful Result.
func (s *Session) Current() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// MaxUsage returns the largest wash count SetUsage accepts.
func (s *Session) MaxUsage() int { return s.usage.max }

// Engine returns the engine the session recomputes with.
func (s *Session) Engine() *engine.Engine { return s.eng }

// Compute runs a single pass for sc without a Session.
func Compute(ctx context.Context, cat *catalog.Catalog, sc scenario.Scenario, horizon int) (Result, error) {
	return compute(ctx, engine.New(cat).WithHorizon(horizon), sc)
}

func compute(ctx context.Context, eng *engine.Engine, sc scenario.Scenario) (Result, error) {
	passID := ulid.Make().String()

	totals, err := eng.Aggregate(ctx, sc)
	if err != nil {
		return Result{}, err
	}
	series, err := eng.Project(ctx, sc)
	if err != nil {
		return Result{}, err
	}
	narrative, err := greenops.Narrate(totals)
	if err != nil {
		return Result{}, err
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "session").
		Str("pass_id", passID).
		Str("scenario", sc.String()).
		Msg("recompute pass complete")

	return Result{
		PassID:     passID,
		Scenario:   sc.Clone(),
		Totals:     totals,
		Projection: series,
		Narrative:  narrative,
	}, nil
}
