package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/garmentlca/internal/config"
	"github.com/rshade/garmentlca/internal/greenops"
	"github.com/rshade/garmentlca/internal/session"
	"github.com/rshade/garmentlca/internal/tui"
)

// ErrNoTerminal is returned when interactive mode runs without a TTY.
var ErrNoTerminal = errors.New("interactive mode requires a terminal")

// NewInteractiveCmd creates the "interactive" command, a full-screen editor
// that recomputes the footprint on every change.
func NewInteractiveCmd() *cobra.Command {
	var flags *scenarioFlags

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Edit a scenario and watch the footprint update",
		Long: `Open a terminal UI that shows the footprint breakdown, the projection
curve and the narrative for the current scenario. Every key press that
changes a stage option or the wash count triggers a full recompute.

Stage flags and --washes set the starting scenario.`,
		Example: `  # Start from the catalog defaults
  garmentlca interactive

  # Start from organic cotton at 100 washes
  garmentlca interactive --material organic --washes 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeInteractive(cmd, flags)
		},
	}
	flags = addScenarioFlags(cmd)

	return cmd
}

func executeInteractive(cmd *cobra.Command, flags *scenarioFlags) error {
	if !tui.IsTerminal(os.Stdin) || !tui.IsTerminal(os.Stdout) {
		return ErrNoTerminal
	}

	ctx := cmd.Context()
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	sc, err := flags.build(cmd, cat)
	if err != nil {
		return err
	}

	model := config.GetGlobalConfig().Model
	sess, err := session.New(ctx, cat, session.Options{
		Horizon:      model.Horizon,
		MaxUsage:     model.UsageLimit(),
		DefaultUsage: model.UsageDefault(),
		Initial:      &sc,
	})
	if err != nil {
		return err
	}

	m := tui.NewScenarioModel(ctx, sess, cat, displayPrecision())
	if _, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running interactive mode: %w", err)
	}

	final := sess.Current()
	p := displayPrecision()
	cmd.Printf("Final scenario: %s\n", final.Scenario)
	cmd.Printf("Total: %s L, %s kg CO2e\n",
		greenops.FormatFloat(final.Totals.Total.Water, p.Water),
		greenops.FormatFloat(final.Totals.Total.Carbon, p.Carbon))
	return nil
}
