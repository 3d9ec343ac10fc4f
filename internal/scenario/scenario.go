// Package scenario holds the user's current lifecycle selections: one
// option per stage plus a wash count. It is the only mutable input to the
// footprint model.
package scenario

import (
	"fmt"
	"maps"
	"strings"

	"github.com/rshade/garmentlca/internal/catalog"
)

// Usage count bounds.
const (
	// DefaultUsageCount is the wash count of a fresh scenario.
	DefaultUsageCount = 50

	// MinUsageCount is the smallest accepted wash count.
	MinUsageCount = 1

	// MaxUsageCount is the largest accepted wash count when no other
	// bound is configured. It matches the default projection horizon.
	MaxUsageCount = 200
)

// Scenario is one selected option per stage plus a usage count.
type Scenario struct {
	Selections map[catalog.Stage]string `json:"selections" yaml:"selections"`
	UsageCount int                      `json:"usage_count" yaml:"usage_count"`
}

// Default returns the catalog's default selections at DefaultUsageCount.
func Default(cat *catalog.Catalog) Scenario {
	s := Scenario{
		Selections: make(map[catalog.Stage]string, len(catalog.Stages())),
		UsageCount: DefaultUsageCount,
	}
	for _, st := range catalog.Stages() {
		s.Selections[st] = cat.DefaultOption(st)
	}
	return s
}

// Clone returns a deep copy of s.
func (s Scenario) Clone() Scenario {
	return Scenario{Selections: maps.Clone(s.Selections), UsageCount: s.UsageCount}
}

// Selection returns the option id selected for stage, or "" if none.
func (s Scenario) Selection(stage catalog.Stage) string {
	return s.Selections[stage]
}

// Select sets the option for stage. The id must resolve in cat; on error
// the scenario is left unchanged.
func (s *Scenario) Select(cat *catalog.Catalog, stage catalog.Stage, id string) error {
	if _, err := cat.Lookup(stage, id); err != nil {
		return err
	}
	if s.Selections == nil {
		s.Selections = make(map[catalog.Stage]string, len(catalog.Stages()))
	}
	s.Selections[stage] = id
	return nil
}

// SetUsageCount sets the wash count, rejecting values outside
// [MinUsageCount, maxCount].
func (s *Scenario) SetUsageCount(n, maxCount int) error {
	if err := CheckUsageCount(n, maxCount); err != nil {
		return err
	}
	s.UsageCount = n
	return nil
}

// Reset restores the default selections and usage count.
func (s *Scenario) Reset(cat *catalog.Catalog) {
	*s = Default(cat)
}

// Validate checks that every stage has a selection that resolves in cat
// and that the usage count is within [MinUsageCount, maxCount].
func (s Scenario) Validate(cat *catalog.Catalog, maxCount int) error {
	for _, st := range catalog.Stages() {
		id, ok := s.Selections[st]
		if !ok || id == "" {
			return fmt.Errorf("%w: %s", ErrMissingSelection, st)
		}
		if _, err := cat.Lookup(st, id); err != nil {
			return err
		}
	}
	return CheckUsageCount(s.UsageCount, maxCount)
}

// String renders the selections in stage order, e.g.
// "material=organic manufacturing=eu ... washes=50".
func (s Scenario) String() string {
	var b strings.Builder
	for _, st := range catalog.Stages() {
		fmt.Fprintf(&b, "%s=%s ", st, s.Selections[st])
	}
	fmt.Fprintf(&b, "washes=%d", s.UsageCount)
	return b.String()
}

// CheckUsageCount returns ErrInvalidUsageCount if n is outside
// [MinUsageCount, maxCount].
func CheckUsageCount(n, maxCount int) error {
	if n < MinUsageCount || n > maxCount {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidUsageCount, n, MinUsageCount, maxCount)
	}
	return nil
}

// ClampUsageCount bounds raw input to [MinUsageCount, maxCount]. The
// second result reports whether n was changed.
func ClampUsageCount(n, maxCount int) (int, bool) {
	if maxCount < MinUsageCount {
		maxCount = MinUsageCount
	}
	switch {
	case n < MinUsageCount:
		return MinUsageCount, true
	case n > maxCount:
		return maxCount, true
	default:
		return n, false
	}
}
