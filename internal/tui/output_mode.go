package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the current terminal.
type OutputMode int

const (
	// OutputModePlain writes uncoloured text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// DetectOutputMode picks the richest mode the environment allows. Plain
// is forced by forcePlain, NO_COLOR, CI or a non-terminal stdout.
// Interactive additionally needs a terminal stdin and wantInteractive.
func DetectOutputMode(forcePlain, wantInteractive bool) OutputMode {
	return detectOutputMode(forcePlain, wantInteractive, IsTerminal(os.Stdout), IsTerminal(os.Stdin), os.LookupEnv)
}

func detectOutputMode(
	forcePlain, wantInteractive, stdoutTTY, stdinTTY bool,
	lookupEnv func(string) (string, bool),
) OutputMode {
	if forcePlain || !stdoutTTY {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, ok := lookupEnv("CI"); ok && v != "" && v != "false" {
		return OutputModePlain
	}
	if wantInteractive && stdinTTY {
		return OutputModeInteractive
	}
	return OutputModeStyled
}
