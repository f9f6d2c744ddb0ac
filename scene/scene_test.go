// ABOUTME: Tests for the grid scene: default selection, radio exclusivity, reset and inspection.
// ABOUTME: Frames are driven by hand the way the TUI and demo command drive them.
package scene_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/scene"
)

func TestFirstFrameSelectsDefault(t *testing.T) {
	s := scene.New(scene.Options{})
	assert.Equal(t, "", s.State().Selected())

	require.NoError(t, s.Frame())
	st := s.State()
	assert.Equal(t, 1, st.Frame)
	assert.Equal(t, "A", st.Selected())
	assert.Equal(t, "A=true B=false C=false", st.String())
	assert.Empty(t, s.Notices())
}

func TestPressKeepsRadiosExclusive(t *testing.T) {
	s := scene.New(scene.Options{})
	require.NoError(t, s.Frame())

	require.NoError(t, s.Press(scene.RadioB))
	require.NoError(t, s.Frame())
	assert.Equal(t, "A=false B=true C=false", s.State().String())

	require.NoError(t, s.Press(scene.RadioB))
	require.NoError(t, s.Frame())
	assert.Equal(t, "A=false B=true C=false", s.State().String(), "pressing the selected radio keeps it")

	require.NoError(t, s.Press(scene.RadioC))
	require.NoError(t, s.Frame())
	assert.Equal(t, "C", s.State().Selected())
}

func TestResetRestoresDefaultAndRelabels(t *testing.T) {
	s := scene.New(scene.Options{})
	require.NoError(t, s.Frame())
	require.NoError(t, s.Press(scene.RadioC))
	require.NoError(t, s.Frame())

	require.NoError(t, s.Press(scene.Reset))
	require.NoError(t, s.Frame())
	st := s.State()
	assert.Equal(t, "A", st.Selected())
	assert.Equal(t, "Reset (1)", st.ResetLabel)
	assert.Equal(t, 1, st.Clicks)

	require.NoError(t, s.Press(scene.Reset))
	require.NoError(t, s.Press(scene.Reset))
	require.NoError(t, s.Frame())
	assert.Equal(t, "Reset (3)", s.State().ResetLabel)
}

func TestPressUnknownControl(t *testing.T) {
	s := scene.New(scene.Options{})
	err := s.Press("Z")
	assert.True(t, errors.Is(err, scene.ErrUnknownControl))
}

func TestInspectMatchesState(t *testing.T) {
	s := scene.New(scene.Options{})
	require.NoError(t, s.Frame())
	require.NoError(t, s.Press(scene.RadioB))
	require.NoError(t, s.Frame())

	st, err := s.Inspect()
	require.NoError(t, err)
	assert.Equal(t, s.State(), st)
}

func TestInspectBeforeFirstFrameKeepsInit(t *testing.T) {
	s := scene.New(scene.Options{})
	st, err := s.Inspect()
	require.NoError(t, err)
	assert.Equal(t, "", st.Selected())

	require.NoError(t, s.Frame())
	assert.Equal(t, "A", s.State().Selected(), "Init raised during inspection still reaches the radio group")
}

func TestObserverSeesEveryRun(t *testing.T) {
	var labels []string
	obs := router.ObserverFunc(func(e router.Event) {
		if e.Kind == router.EventRunFinished {
			labels = append(labels, e.Label)
		}
	})
	s := scene.New(scene.Options{Observer: obs})
	require.NoError(t, s.Frame())
	assert.Equal(t, []string{
		"radio.init grid.RadioA",
		"radio.init grid.RadioB",
		"radio.init grid.RadioC",
	}, labels)
}

func TestSchemaTable(t *testing.T) {
	s := scene.New(scene.Options{})
	assert.Equal(t, []string{"RadioA", "RadioB", "RadioC", "Reset"}, s.Schema().Variants())
	assert.True(t, s.Schema().Sealed())
	assert.Len(t, s.Tree().Children, 2)
}
