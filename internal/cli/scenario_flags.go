package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/logging"
	"github.com/rshade/garmentlca/internal/scenario"
)

// scenarioFlags binds one flag per stage plus --washes.
type scenarioFlags struct {
	options map[catalog.Stage]*string
	washes  int
}

// stageFlagName converts a stage id into its flag name (last_mile -> last-mile).
func stageFlagName(s catalog.Stage) string {
	return strings.ReplaceAll(string(s), "_", "-")
}

// addScenarioFlags registers the stage and wash flags on cmd.
func addScenarioFlags(cmd *cobra.Command) *scenarioFlags {
	f := &scenarioFlags{options: make(map[catalog.Stage]*string, len(catalog.Stages()))}
	for _, st := range catalog.Stages() {
		f.options[st] = cmd.Flags().String(stageFlagName(st), "",
			fmt.Sprintf("%s option id (default from catalog)", strings.ToLower(st.Label())))
	}
	cmd.Flags().IntVarP(&f.washes, "washes", "w", 0,
		"number of washes over the garment's life (default from config)")
	return f
}

// selected returns the stages whose flag was set, with the given ids.
func (f *scenarioFlags) selected(cmd *cobra.Command) map[catalog.Stage]string {
	out := make(map[catalog.Stage]string)
	for _, st := range catalog.Stages() {
		if cmd.Flags().Changed(stageFlagName(st)) {
			out[st] = *f.options[st]
		}
	}
	return out
}

// build returns the catalog default scenario with the flag overrides
// applied. Wash counts are bounded by the model's usage limit; an
// out-of-range --washes is clamped with a warning.
func (f *scenarioFlags) build(cmd *cobra.Command, cat *catalog.Catalog) (scenario.Scenario, error) {
	sc := scenario.Default(cat)
	for st, id := range f.selected(cmd) {
		if err := sc.Select(cat, st, id); err != nil {
			if errors.Is(err, catalog.ErrUnknownOption) {
				return scenario.Scenario{}, fmt.Errorf("--%s: %w (valid: %s)",
					stageFlagName(st), err, strings.Join(cat.OptionIDs(st), ", "))
			}
			return scenario.Scenario{}, err
		}
	}

	model := config.GetGlobalConfig().Model
	n := model.UsageDefault()
	if cmd.Flags().Changed("washes") {
		limit := model.UsageLimit()
		var clamped bool
		n, clamped = scenario.ClampUsageCount(f.washes, limit)
		if clamped {
			ctx := cmd.Context()
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Str("component", "cli").
				Int("requested", f.washes).
				Int("usage_count", n).
				Msg("wash count clamped")
			cmd.PrintErrf("Warning: %d washes is outside %d..%d, using %d\n",
				f.washes, scenario.MinUsageCount, limit, n)
		}
	}
	sc.UsageCount = n

	return sc, nil
}
