// ABOUTME: Tests for the top-level AppModel: frames, key handling, help toggling and view rendering.
// ABOUTME: Uses a real scene observed by a trace recorder with a memory sink.
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/yorool/scene"
	"github.com/2389-research/yorool/trace"
)

func testAppModel() AppModel {
	sink := trace.NewMemorySink(0)
	rec := trace.NewRecorder(sink)
	s := scene.New(scene.Options{Observer: rec})
	return NewAppModel(s, sink, rec.Session().String(), 50)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", next)
	}
	return am, cmd
}

func TestAppModelInitRequestsFrame(t *testing.T) {
	m := testAppModel()
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil")
	}
	if _, ok := cmd().(FrameMsg); !ok {
		t.Fatal("Init() command should produce a FrameMsg")
	}
}

func TestAppModelFirstFrame(t *testing.T) {
	m, _ := update(t, testAppModel(), FrameMsg{})

	if got := m.grid.Selected(); got != "A" {
		t.Errorf("selected = %q, want A", got)
	}
	if m.log.Len() == 0 {
		t.Error("log should hold the init runs' trace records")
	}
	if m.statusBar.frames != 1 {
		t.Errorf("frames = %d, want 1", m.statusBar.frames)
	}
	if m.statusBar.runs != 3 {
		t.Errorf("runs = %d, want 3", m.statusBar.runs)
	}
	if m.statusBar.failures != 0 {
		t.Errorf("failures = %d, want 0", m.statusBar.failures)
	}
	if m.statusBar.startTime.IsZero() {
		t.Error("status bar should be started by the first frame")
	}
}

func TestAppModelKeysPressControls(t *testing.T) {
	m, _ := update(t, testAppModel(), FrameMsg{})
	before := m.log.Len()

	m, _ = update(t, m, runes("2"))
	if got := m.grid.Selected(); got != "B" {
		t.Errorf("after 2: selected = %q, want B", got)
	}
	if m.log.Len() <= before {
		t.Error("pressing should append trace records")
	}

	m, _ = update(t, m, runes("3"))
	if got := m.grid.Selected(); got != "C" {
		t.Errorf("after 3: selected = %q, want C", got)
	}

	m, _ = update(t, m, runes("r"))
	if got := m.grid.Selected(); got != "A" {
		t.Errorf("after r: selected = %q, want A", got)
	}
	if got := m.grid.state.ResetLabel; got != "Reset (1)" {
		t.Errorf("reset label = %q, want %q", got, "Reset (1)")
	}
	if m.statusBar.frames != 4 {
		t.Errorf("frames = %d, want 4", m.statusBar.frames)
	}
}

func TestAppModelHelpToggle(t *testing.T) {
	m := testAppModel()
	m, _ = update(t, m, runes("?"))
	if !m.showHelp || !m.help.ShowAll {
		t.Fatal("? should show full help")
	}
	m, _ = update(t, m, runes("?"))
	if m.showHelp {
		t.Fatal("? again should hide full help")
	}
}

func TestAppModelQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, testAppModel(), msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestAppModelUnknownPress(t *testing.T) {
	m, _ := update(t, testAppModel(), PressMsg{Control: "Z"})
	if m.err == nil {
		t.Fatal("expected an error for an unknown control")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(m.View(), "ERROR") {
		t.Error("view should surface the error")
	}
	if m.scene.Frames() != 0 {
		t.Error("a failed press must not run a frame")
	}
}

func TestAppModelView(t *testing.T) {
	m := testAppModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("view before size = %q", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 8})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("expected too-small message")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, FrameMsg{})
	view := m.View()
	for _, want := range []string{"GRID (frame 1)", "TRACE", "Frames: 1", "Selected: A", "(•) A", "( ) B", "Reset"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
