// ABOUTME: Tests for the button widget's click counting and label backend.
// ABOUTME: Label queries are exercised through a router run.
package button_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/widget/button"
)

func newButton(t *testing.T) *button.Button {
	t.Helper()
	s := message.NewSchema("toolbar")
	id := message.Define[button.Event](s, "Save")
	require.NoError(t, s.Seal())
	return button.New(id, "Save")
}

func TestPressCountsClicks(t *testing.T) {
	b := newButton(t)
	b.Press()
	b.Press()
	assert.Equal(t, 2, b.Clicks())

	out := pool.New[message.Msg]()
	b.Handle(pool.New[message.Msg](), out)
	events := message.QueryByCtrlID(out, b.ID())
	assert.Equal(t, []button.Event{button.Pressed{Clicks: 1}, button.Pressed{Clicks: 2}}, events)

	out.Clear()
	b.Handle(pool.New[message.Msg](), out)
	assert.True(t, out.IsEmpty(), "presses are flushed once")
}

func TestLabelBackend(t *testing.T) {
	b := newButton(t)
	rt := router.New(nil)
	label, err := router.Run(b, rt, func(rt *router.Router) (string, error) {
		old, err := router.Query(rt, b.ID(), button.GetLabelRequest, struct{}{})
		if err != nil {
			return "", err
		}
		if _, err := router.Query(rt, b.ID(), button.SetLabelRequest, old+" all"); err != nil {
			return "", err
		}
		return router.Query(rt, b.ID(), button.GetLabelRequest, struct{}{})
	})
	require.NoError(t, err)
	assert.Equal(t, "Save all", label)
	assert.Equal(t, "Save all", b.Label())
}
