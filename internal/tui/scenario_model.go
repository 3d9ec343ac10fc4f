package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/garmentlca/internal/catalog"
	"github.com/rshade/garmentlca/internal/scenario"
	"github.com/rshade/garmentlca/internal/session"
)

// Default dimensions for the editor.
const (
	editorDefaultWidth  = 100
	editorDefaultHeight = 40
	washStepLarge       = 10
	washInputCharLimit  = 4
	washInputWidth      = 8
	sparkMargin         = 30
)

// ScenarioModel is the Bubble Tea model for the interactive scenario
// editor. Every key that changes the scenario is applied to the session
// synchronously, so the view always shows the result of the latest pass.
type ScenarioModel struct {
	ctx     context.Context
	sess    *session.Session
	cat     *catalog.Catalog
	product string
	prec    Precision

	result  session.Result
	focused int
	err     error

	editing   bool
	washInput textinput.Model

	keys     keyMap
	help     help.Model
	quitting bool

	width  int
	height int
}

// NewScenarioModel creates an editor over sess.
func NewScenarioModel(ctx context.Context, sess *session.Session, cat *catalog.Catalog, p Precision) *ScenarioModel {
	ti := textinput.New()
	ti.Placeholder = "washes"
	ti.CharLimit = washInputCharLimit
	ti.Width = washInputWidth

	return &ScenarioModel{
		ctx:       ctx,
		sess:      sess,
		cat:       cat,
		product:   cat.Name(),
		prec:      p,
		result:    sess.Current(),
		washInput: ti,
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     editorDefaultWidth,
		height:    editorDefaultHeight,
	}
}

// Init initializes the model.
func (m *ScenarioModel) Init() tea.Cmd {
	return nil
}

// Result returns the latest successful result.
func (m *ScenarioModel) Result() session.Result { return m.result }

// Err returns the error from the last rejected event, if any.
func (m *ScenarioModel) Err() error { return m.err }

// FocusedStage returns the stage the cursor is on.
func (m *ScenarioModel) FocusedStage() catalog.Stage {
	return catalog.Stages()[m.focused]
}

// Update handles messages and updates the model state.
func (m *ScenarioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.handleWashInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *ScenarioModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	stages := catalog.Stages()
	usage := m.result.Scenario.UsageCount

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.focused = (m.focused - 1 + len(stages)) % len(stages)
	case key.Matches(msg, m.keys.Down):
		m.focused = (m.focused + 1) % len(stages)
	case key.Matches(msg, m.keys.Next):
		m.cycleOption(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleOption(-1)
	case key.Matches(msg, m.keys.MoreWashes):
		m.setUsage(usage + 1)
	case key.Matches(msg, m.keys.LessWashes):
		m.setUsage(usage - 1)
	case key.Matches(msg, m.keys.BigMore):
		m.setUsage(usage + washStepLarge)
	case key.Matches(msg, m.keys.BigLess):
		m.setUsage(usage - washStepLarge)
	case key.Matches(msg, m.keys.SetWashes):
		m.editing = true
		m.washInput.Reset()
		return m, m.washInput.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.apply(session.Reset{})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

//nolint:exhaustive // Only enter and escape end editing.
func (m *ScenarioModel) handleWashInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.washInput.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(m.washInput.Value()))
		if err != nil {
			m.err = fmt.Errorf("wash count must be a whole number: %w", err)
			return m, nil
		}
		m.setUsage(n)
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.washInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.washInput, cmd = m.washInput.Update(msg)
	return m, cmd
}

// cycleOption moves the focused stage's selection by delta, wrapping.
// Only catalog ids are ever offered, so the event cannot be rejected for
// an unknown option.
func (m *ScenarioModel) cycleOption(delta int) {
	stage := m.FocusedStage()
	ids := m.cat.OptionIDs(stage)
	if len(ids) == 0 {
		return
	}
	idx := slices.Index(ids, m.result.Scenario.Selection(stage))
	next := ids[((idx+delta)%len(ids)+len(ids))%len(ids)]
	m.apply(session.SelectOption{Stage: stage, OptionID: next})
}

// setUsage clamps n into the accepted range before applying it.
func (m *ScenarioModel) setUsage(n int) {
	clamped, _ := scenario.ClampUsageCount(n, m.sess.MaxUsage())
	if clamped == m.result.Scenario.UsageCount {
		m.err = nil
		return
	}
	m.apply(session.SetUsage{Count: clamped})
}

func (m *ScenarioModel) apply(ev session.Event) {
	res, err := m.sess.Apply(m.ctx, ev)
	m.result = res
	m.err = err
}

// View renders the current view.
func (m *ScenarioModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderHeader(m.product))
	sb.WriteString("\n\n")
	sb.WriteString(RenderTotals(m.result, m.prec))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderSelections())
	sb.WriteString("\n\n")
	sb.WriteString(RenderBreakdown(m.result.Totals, m.prec, m.focused))
	sb.WriteString("\n\n")
	sb.WriteString(RenderProjection(m.result.Projection, m.prec, max(m.width-sparkMargin, washInputWidth)))
	sb.WriteString("\n\n")
	sb.WriteString(RenderStakeholders(m.result.Narrative))
	sb.WriteString("\n\n")
	sb.WriteString(RenderNarrative(m.result.Narrative, m.width))
	sb.WriteString("\n\n")

	if m.editing {
		sb.WriteString(LabelStyle.Render("Washes: "))
		sb.WriteString(m.washInput.View())
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// renderSelections lists every stage's option set with the current choice
// highlighted.
func (m *ScenarioModel) renderSelections() string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Scenario"))
	for i, stage := range catalog.Stages() {
		marker := "  "
		nameStyle := LabelStyle
		if i == m.focused {
			marker = IconSelected + " "
			nameStyle = FocusedStyle
		}
		selected := m.result.Scenario.Selection(stage)
		opts := m.cat.Options(stage)
		parts := make([]string, len(opts))
		for j, opt := range opts {
			if opt.ID == selected {
				parts[j] = ValueStyle.Render("[" + opt.DisplayName() + "]")
			} else {
				parts[j] = MutedStyle.Render(opt.DisplayName())
			}
		}
		fmt.Fprintf(&sb, "\n%s%s %s", marker, nameStyle.Render(pad(stage.Label(), stageColWidth)), strings.Join(parts, "  "))
	}
	return sb.String()
}
