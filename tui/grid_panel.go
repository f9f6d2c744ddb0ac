// ABOUTME: Bubble Tea sub-model rendering the scene's radio row and reset button with lipgloss joins.
// ABOUTME: The layout follows the scene's ribbon orientations; state comes from a scene snapshot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/yorool/scene"
	"github.com/2389-research/yorool/widget"
)

// GridPanelModel displays the demo controls.
type GridPanelModel struct {
	state    scene.State
	row      widget.Orientation
	width    int
	selected string
}

// NewGridPanelModel creates a grid panel for a scene.
func NewGridPanelModel(s *scene.Scene) GridPanelModel {
	m := GridPanelModel{row: widget.Horizontal}
	if s != nil {
		if tree := s.Tree(); len(tree.Children) > 0 {
			if r, ok := tree.Children[0].(*widget.Ribbon); ok {
				m.row = r.Orientation
			}
		}
		m.SetState(s.State())
	}
	return m
}

// SetState replaces the snapshot being rendered.
func (m *GridPanelModel) SetState(st scene.State) {
	m.state = st
	m.selected = st.Selected()
}

// Selected returns the name of the checked radio.
func (m GridPanelModel) Selected() string {
	return m.selected
}

// SetWidth sets the available width for rendering.
func (m *GridPanelModel) SetWidth(w int) {
	m.width = w
}

// radioMark returns the marker for a radio.
func radioMark(checked bool) string {
	if checked {
		return "(•)"
	}
	return "( )"
}

// View renders the panel.
func (m GridPanelModel) View() string {
	cells := make([]string, 0, len(m.state.Radios))
	for i, r := range m.state.Radios {
		style := UncheckedStyle
		if r.Checked {
			style = CheckedStyle
		}
		cell := style.Render(radioMark(r.Checked)+" "+r.Label) + " " + KeyHintStyle.Render(fmt.Sprintf("[%d]", i+1))
		cells = append(cells, lipgloss.NewStyle().PaddingRight(3).Render(cell))
	}

	var row string
	if m.row == widget.Horizontal {
		row = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	} else {
		row = lipgloss.JoinVertical(lipgloss.Left, cells...)
	}

	label := m.state.ResetLabel
	if label == "" {
		label = "Reset"
	}
	button := lipgloss.JoinHorizontal(lipgloss.Center, ButtonStyle.Render(label), " "+KeyHintStyle.Render("[r]"))

	title := TitleStyle.Render(fmt.Sprintf("=== GRID (frame %d) ===", m.state.Frame))
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, row, button))

	if m.width > 0 {
		return BorderStyle.Width(m.width - 2).Render(b.String())
	}
	return BorderStyle.Render(b.String())
}
