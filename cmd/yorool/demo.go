// ABOUTME: The demo subcommand: a headless scripted press sequence over the grid scene.
// ABOUTME: Prints the radio states after every frame and fails if exclusivity or reset is violated.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/yorool/scene"
)

// demoStep presses a control (or nothing) and states the expected selection.
type demoStep struct {
	press string
	want  string
}

var demoScript = []demoStep{
	{press: "", want: scene.RadioA},
	{press: scene.RadioB, want: scene.RadioB},
	{press: scene.RadioB, want: scene.RadioB},
	{press: scene.RadioC, want: scene.RadioC},
	{press: scene.Reset, want: scene.RadioA},
}

// errDemoFailed is returned when the scene disagrees with the script.
var errDemoFailed = errors.New("demo failed")

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted press sequence headlessly and check the results",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runDemo(demoScript)
		},
	}
}

func (a *app) runDemo(script []demoStep) error {
	sess, err := openSession(a.cfg, a.dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()
	sc := sess.scene(a.cfg)

	var failures []error
	for i, step := range script {
		action := "init"
		if step.press != "" {
			action = "press " + step.press
			if err := sc.Press(step.press); err != nil {
				return err
			}
		}
		if err := sc.Frame(); err != nil {
			failures = append(failures, fmt.Errorf("step %d (%s): %w", i+1, action, err))
		}

		st, err := sc.Inspect()
		if err != nil {
			failures = append(failures, fmt.Errorf("step %d (%s): inspect: %w", i+1, action, err))
			continue
		}
		mark := "ok"
		if st.Selected() != step.want || st.Selected() != sc.State().Selected() {
			mark = "FAIL"
			failures = append(failures, fmt.Errorf("step %d (%s): selected %q, want %q", i+1, action, st.Selected(), step.want))
		}
		fmt.Fprintf(a.stdout, "%-2d %-13s %s  label=%q  %s\n", st.Frame, action, st, st.ResetLabel, mark)
	}

	if sess.jsonl != "" {
		fmt.Fprintf(a.stdout, "trace: %s\n", sess.jsonl)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %w", errDemoFailed, errors.Join(failures...))
	}
	return nil
}
