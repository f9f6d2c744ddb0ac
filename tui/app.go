// ABOUTME: Top-level Bubble Tea AppModel composing the grid, trace log, help and status bar panels.
// ABOUTME: Key presses become scene presses followed by one scene frame; new trace records feed the log.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/scene"
	"github.com/2389-research/yorool/trace"
)

// AppModel is the top-level Bubble Tea model.
type AppModel struct {
	grid      GridPanelModel
	log       LogPanelModel
	statusBar StatusBarModel
	help      help.Model
	keys      KeyMap

	scene   *scene.Scene
	sink    *trace.MemorySink
	lastSeq int

	showHelp bool
	err      error // last frame or press error
	width    int
	height   int
}

// NewAppModel creates an AppModel over s. sink must be attached to the
// recorder observing s; the log panel shows what it collects.
func NewAppModel(s *scene.Scene, sink *trace.MemorySink, session string, logLines int) AppModel {
	return AppModel{
		grid:      NewGridPanelModel(s),
		log:       NewLogPanelModel(logLines),
		statusBar: NewStatusBarModel(session),
		help:      help.New(),
		keys:      DefaultKeyMap(),
		scene:     s,
		sink:      sink,
	}
}

// Init implements tea.Model. The first frame lets every widget announce itself.
func (m AppModel) Init() tea.Cmd {
	return func() tea.Msg { return FrameMsg{} }
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.runFrame(), nil

	case PressMsg:
		return m.press(msg.Control), nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}
	if name, ok := m.keys.control(msg); ok {
		return m.press(name), nil
	}
	return m, nil
}

func (m AppModel) press(name string) AppModel {
	if err := m.scene.Press(name); err != nil {
		m.err = err
		return m
	}
	return m.runFrame()
}

// runFrame drives one scene frame and folds the new trace records into the panels.
func (m AppModel) runFrame() AppModel {
	if m.statusBar.startTime.IsZero() {
		m.statusBar.Start()
	}
	m.err = m.scene.Frame()

	var fresh []trace.Record
	finished, failed := 0, 0
	if m.sink != nil {
		for _, rec := range m.sink.Records() {
			if rec.Seq <= m.lastSeq {
				continue
			}
			m.lastSeq = rec.Seq
			fresh = append(fresh, rec)
			switch router.EventKind(rec.Kind) {
			case router.EventRunFinished:
				finished++
				if rec.Detail != "ok" {
					failed++
				}
			case router.EventStarved:
				failed++
			}
		}
	}
	if len(fresh) > 0 {
		m.log.Append(fresh...)
	}

	st := m.scene.State()
	m.grid.SetState(st)
	m.statusBar.SetFrames(st.Frame)
	m.statusBar.SetSelected(st.Selected())
	m.statusBar.AddRuns(finished, failed)
	return m
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x12.", m.width, m.height)
	}

	m.grid.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	gridView := m.grid.View()
	helpView := m.help.View(m.keys)

	statusBarHeight := 1
	logHeight := m.height - lipgloss.Height(gridView) - lipgloss.Height(helpView) - statusBarHeight
	if logHeight < 3 {
		logHeight = 3
	}
	m.log.SetSize(m.width, logHeight)

	statusView := m.statusBar.View()
	if m.err != nil {
		statusView += " " + FailedStyle.Render(fmt.Sprintf("ERROR: %v", m.err))
	}

	var b strings.Builder
	b.WriteString(gridView)
	b.WriteString("\n")
	b.WriteString(m.log.View())
	b.WriteString("\n")
	b.WriteString(helpView)
	b.WriteString("\n")
	b.WriteString(statusView)
	return b.String()
}
