// Package engine turns a Scenario and a Catalog into footprint results.
//
// Aggregate computes the per-stage breakdown and grand totals, Project
// derives the cumulative usage-vs-impact curve, and Compare ranks the full
// option space. All three are pure functions of their inputs: the Engine
// holds only the read-only catalog and the projection horizon.
package engine

import (
	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/scenario"
)

// DefaultHorizon is the number of washes a projection covers and the
// largest accepted usage count.
const DefaultHorizon = scenario.MaxUsageCount

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. Usage and selection errors are shared with the scenario
// package so callers can match either name.
var (
	ErrInvalidUsageCount = scenario.ErrInvalidUsageCount
	ErrMissingSelection  = scenario.ErrMissingSelection

	// ErrInvalidHorizon indicates a non-positive projection horizon.
	ErrInvalidHorizon = constError("invalid projection horizon")

	// ErrInvalidMetric indicates an unknown ranking metric.
	ErrInvalidMetric = constError("invalid comparison metric")
)

// Engine evaluates scenarios against one catalog.
type Engine struct {
	cat     *catalog.Catalog
	horizon int
}

// New returns an Engine over cat with DefaultHorizon.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat, horizon: DefaultHorizon}
}

// WithHorizon returns a copy of e using horizon h. Values below 1 keep the
// current horizon.
func (e *Engine) WithHorizon(h int) *Engine {
	c := *e
	if h >= 1 {
		c.horizon = h
	}
	return &c
}

// Horizon returns the projection horizon, which is also the usage count
// upper bound.
func (e *Engine) Horizon() int { return e.horizon }

// Catalog returns the catalog the engine evaluates against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }
