// ABOUTME: The tui subcommand: runs the grid scene inside the Bubble Tea terminal UI.
// ABOUTME: The trace session stays open for the program's lifetime and is closed on exit.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/yorool/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runTUI()
		},
	}
}

func (a *app) runTUI() error {
	sess, err := openSession(a.cfg, a.dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	model := tui.NewAppModel(sess.scene(a.cfg), sess.memory, sess.recorder.Session().String(), a.cfg.TUI.LogLines)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if sess.jsonl != "" {
		fmt.Fprintf(a.stdout, "trace written to %s\n", sess.jsonl)
	}
	return nil
}
