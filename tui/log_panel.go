// ABOUTME: Implements a scrollable trace log panel using the bubbles viewport component.
// ABOUTME: Displays router trace records with color-coded formatting based on record kind.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/2389-research/yorool/trace"
)

// LogPanelModel is a scrollable log of trace records.
type LogPanelModel struct {
	entries  []trace.Record
	max      int
	viewport viewport.Model
	width    int
	height   int
}

// NewLogPanelModel creates a new log panel with a maximum number of entries.
// If maxEntries is <= 0, it defaults to 200.
func NewLogPanelModel(maxEntries int) LogPanelModel {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return LogPanelModel{
		entries:  make([]trace.Record, 0, maxEntries),
		max:      maxEntries,
		viewport: viewport.New(80, 10),
	}
}

// Append adds records, evicting the oldest entries beyond capacity.
func (m *LogPanelModel) Append(recs ...trace.Record) {
	m.entries = append(m.entries, recs...)
	if over := len(m.entries) - m.max; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
	m.syncViewport()
}

// Len returns the number of entries in the log.
func (m LogPanelModel) Len() int {
	return len(m.entries)
}

// SetSize sets the available dimensions and updates the viewport.
func (m *LogPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	// Border takes two lines and the title one.
	m.viewport.Width = max(w-2, 1)
	m.viewport.Height = max(h-3, 1)
	m.syncViewport()
}

// View renders the log panel.
func (m LogPanelModel) View() string {
	content := "No runs yet"
	if len(m.entries) > 0 {
		content = m.viewport.View()
	}
	rendered := TitleStyle.Render("TRACE") + "\n" + content
	return BorderStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rendered)
}

// syncViewport rebuilds the viewport content and scrolls to the bottom.
func (m *LogPanelModel) syncViewport() {
	lines := make([]string, 0, len(m.entries))
	for _, rec := range m.entries {
		lines = append(lines, formatEntry(rec))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// formatEntry formats a single record as a log line.
func formatEntry(rec trace.Record) string {
	parts := []string{
		LogTimestampStyle.Render(rec.At.Format("15:04:05")),
		StyleForKind(rec.Kind).Render(rec.Kind),
	}
	if rec.Label != "" {
		parts = append(parts, fmt.Sprintf("[%s]", rec.Label))
	}
	if rec.Address != "" {
		target := rec.Address
		if rec.Request != "" {
			target += "/" + rec.Request
		}
		parts = append(parts, target)
	}
	if rec.Detail != "" {
		parts = append(parts, rec.Detail)
	}
	return strings.Join(parts, " ")
}
