// ABOUTME: Key bindings for the TUI, declared with bubbles/key so bubbles/help can render them.
// ABOUTME: KeyMap implements help.KeyMap for the short and full help views.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/yorool/scene"
)

// KeyMap lists every binding the app responds to.
type KeyMap struct {
	RadioA key.Binding
	RadioB key.Binding
	RadioC key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		RadioA: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "press A")),
		RadioB: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "press B")),
		RadioC: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "press C")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RadioA, k.RadioB, k.RadioC},
		{k.Reset, k.Help, k.Quit},
	}
}

// control maps a key press to the scene control it presses.
func (k KeyMap) control(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.RadioA):
		return scene.RadioA, true
	case key.Matches(msg, k.RadioB):
		return scene.RadioB, true
	case key.Matches(msg, k.RadioC):
		return scene.RadioC, true
	case key.Matches(msg, k.Reset):
		return scene.Reset, true
	}
	return "", false
}
