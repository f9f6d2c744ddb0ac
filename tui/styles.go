// ABOUTME: Defines lipgloss style constants for the TUI panels, radio markers, and trace log formatting.
// ABOUTME: Provides StyleForKind to map trace record kinds to their display styles.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/yorool/router"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Controls
	CheckedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	UncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ButtonStyle    = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)
	KeyHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Trace log colors
	LogTimestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	LogEventStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	LogErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	LogSuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	LogWarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	LogQuietStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	FailedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// StyleForKind returns the log style for a trace record kind.
func StyleForKind(kind string) lipgloss.Style {
	switch router.EventKind(kind) {
	case router.EventRunStarted, router.EventQueryPushed:
		return LogEventStyle
	case router.EventQueryResolved, router.EventRunFinished:
		return LogSuccessStyle
	case router.EventStarved:
		return LogErrorStyle
	case router.EventDuplicateResponse, router.EventUnclaimed:
		return LogWarnStyle
	case router.EventTick:
		return LogQuietStyle
	default:
		return LogEventStyle
	}
}
