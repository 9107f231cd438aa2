package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader       = lipgloss.Color("99")
	ColorLabel        = lipgloss.Color("245")
	ColorValue        = lipgloss.Color("252")
	ColorMuted        = lipgloss.Color("241")
	ColorBorder       = lipgloss.Color("63")
	ColorCritical     = lipgloss.Color("196")
	ColorStarActive   = lipgloss.Color("220")
	ColorStarInactive = lipgloss.Color("240")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are immutable values shared across views.
var (
	HeaderStyle       = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle        = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle        = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	CriticalStyle     = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	BoxStyle          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	ActiveStarStyle   = lipgloss.NewStyle().Foreground(ColorStarActive)
	InactiveStarStyle = lipgloss.NewStyle().Foreground(ColorStarInactive)
)

// Layout constants.
const (
	defaultWidth  = 80
	borderPadding = 2
)
