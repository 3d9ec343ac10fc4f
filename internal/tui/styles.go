// Package tui renders garment footprint results for terminals and runs the
// interactive scenario editor.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader    = lipgloss.Color("39")  // blue
	ColorBorder    = lipgloss.Color("240") // grey
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("212") // pink
	ColorOK        = lipgloss.Color("42")  // green
	ColorWarning   = lipgloss.Color("214") // orange
	ColorCritical  = lipgloss.Color("196") // red
	ColorWater     = lipgloss.Color("33")
	ColorCarbon    = lipgloss.Color("137")
)

// Status icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconSelected   = "▸"
)

//nolint:gochecknoglobals // Shared read-only styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	FocusedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)
)

// levelStyle returns the style for a stakeholder score sign.
func levelStyle(score float64) lipgloss.Style {
	switch {
	case score < 0:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case score > 0:
		return lipgloss.NewStyle().Foreground(ColorOK)
	default:
		return MutedStyle
	}
}
