package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented.
type OutputMode int

const (
	// OutputModePlain prints unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints Lip Gloss styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
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

// DetectOutputMode picks an output mode for the current terminal. forcePlain and noColor
// force plain output; ciMode (or a CI environment) disables interaction.
func DetectOutputMode(forcePlain, noColor, ciMode bool) OutputMode {
	return detectOutputMode(forcePlain, noColor, ciMode, os.LookupEnv,
		isTerminal(os.Stdin), isTerminal(os.Stdout))
}

func detectOutputMode(
	forcePlain, noColor, ciMode bool,
	lookupEnv func(string) (string, bool),
	stdinTTY, stdoutTTY bool,
) OutputMode {
	if forcePlain || noColor || !stdoutTTY {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, ok := lookupEnv("TERM"); ok && v == "dumb" {
		return OutputModePlain
	}
	if _, ok := lookupEnv("CI"); ok || ciMode || !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or a default when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
