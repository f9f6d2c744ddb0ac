// ABOUTME: Implements a single-line status bar for the bottom of the TUI showing scene progress.
// ABOUTME: Displays frame count, protocol runs, failures, the selected radio and elapsed time.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays scene status in a single line.
type StatusBarModel struct {
	session   string
	startTime time.Time
	frames    int
	runs      int
	failures  int
	selected  string
	width     int
}

// NewStatusBarModel creates a status bar for a trace session.
func NewStatusBarModel(session string) StatusBarModel {
	return StatusBarModel{session: session}
}

// Start records the start time.
func (m *StatusBarModel) Start() {
	m.startTime = time.Now()
}

// SetFrames updates the frame count.
func (m *StatusBarModel) SetFrames(n int) {
	m.frames = n
}

// AddRuns adds finished protocol runs and failed ones.
func (m *StatusBarModel) AddRuns(finished, failed int) {
	m.runs += finished
	m.failures += failed
}

// SetSelected sets the checked radio name.
func (m *StatusBarModel) SetSelected(name string) {
	m.selected = name
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// Elapsed returns the time since Start() was called, or zero if not started.
func (m StatusBarModel) Elapsed() time.Duration {
	if m.startTime.IsZero() {
		return 0
	}
	return time.Since(m.startTime)
}

// formatElapsed formats a duration as "12s" under a minute and "2m30s" above.
func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) - minutes*60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	selected := m.selected
	if selected == "" {
		selected = "none"
	}
	session := m.session
	if len(session) > 8 {
		session = session[:8]
	}
	content := fmt.Sprintf("Session: %s | Elapsed: %s | Frames: %d | Runs: %d (%d failed) | Selected: %s",
		session, formatElapsed(m.Elapsed()), m.frames, m.runs, m.failures, selected)

	style := StatusBarStyle.Width(m.width)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
