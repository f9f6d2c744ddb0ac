// ABOUTME: Tests for the radio group reactor, including the three-radio exclusivity scenario.
// ABOUTME: Runs the group both as raw protocols over router.Run and as a panel reactor across frames.
package radio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/widget"
	"github.com/2389-research/yorool/widget/checkbox"
	"github.com/2389-research/yorool/widget/radio"
)

type trio struct {
	a, b, c *checkbox.Checkbox
	tree    *widget.Ribbon
}

func newTrio(t *testing.T) trio {
	t.Helper()
	s := message.NewSchema("trio")
	ids := []message.ControlID[checkbox.Event]{
		message.Define[checkbox.Event](s, "A"),
		message.Define[checkbox.Event](s, "B"),
		message.Define[checkbox.Event](s, "C"),
	}
	require.NoError(t, s.Seal())
	tr := trio{
		a: checkbox.New(ids[0], "A"),
		b: checkbox.New(ids[1], "B"),
		c: checkbox.New(ids[2], "C"),
	}
	tr.tree = widget.NewRibbon(widget.Horizontal, tr.a, tr.b, tr.c)
	return tr
}

func (tr trio) states() []bool {
	return []bool{tr.a.Checked(), tr.b.Checked(), tr.c.Checked()}
}

func (tr trio) group() *radio.Group {
	return radio.NewGroup(tr.a.ID(), tr.b.ID(), tr.c.ID())
}

func TestExclusivityScenario(t *testing.T) {
	tr := newTrio(t)
	g := tr.group()

	carry := pool.New[message.Msg]()
	for _, box := range []*checkbox.Checkbox{tr.a, tr.b, tr.c} {
		_, err := router.Run(tr.tree, router.New(carry), g.OnInit(box.ID()))
		require.NoError(t, err)
	}
	assert.Equal(t, []bool{true, false, false}, tr.states())

	tr.b.Press()
	rt := router.New(carry)
	_, err := router.Run(tr.tree, rt, g.OnChange(tr.b.ID()))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, tr.states())
	// GetState, SetState(A), SetState(C), SetState(B).
	assert.Equal(t, 4, rt.Ticks())
}

func TestPressingCheckedRadioKeepsIt(t *testing.T) {
	tr := newTrio(t)
	g := tr.group()
	_, err := router.Run(tr.tree, router.New(nil), g.OnInit(tr.a.ID()))
	require.NoError(t, err)

	tr.a.Press()
	assert.False(t, tr.a.Checked())
	_, err = router.Run(tr.tree, router.New(nil), g.OnChange(tr.a.ID()))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, tr.states())
}

func TestGroupAsPanelReactor(t *testing.T) {
	tr := newTrio(t)
	p := widget.NewPanel(tr.tree, tr.group())
	var errs []error
	p.OnError = func(err error) { errs = append(errs, err) }

	carry := pool.New[message.Msg]()
	frame := func() {
		router.New(carry).Tick(p)
	}

	frame()
	assert.Equal(t, []bool{true, false, false}, tr.states())
	assert.True(t, carry.IsEmpty(), "Init notifications were consumed")

	tr.c.Press()
	frame()
	assert.Equal(t, []bool{false, false, true}, tr.states())

	tr.b.Press()
	frame()
	assert.Equal(t, []bool{false, true, false}, tr.states())
	assert.Empty(t, errs)
}

func TestMembership(t *testing.T) {
	tr := newTrio(t)
	g := radio.NewGroup(tr.a.ID(), tr.a.ID())
	assert.Len(t, g.Members(), 1, "duplicates ignored")

	g.Add(tr.b.ID())
	assert.True(t, g.Contains(tr.b.ID()))
	assert.True(t, g.Remove(tr.a.ID()))
	assert.False(t, g.Remove(tr.a.ID()))
	assert.Equal(t, []message.ControlID[checkbox.Event]{tr.b.ID()}, g.Members())

	// b is first now, so it becomes the default.
	_, err := router.Run(tr.tree, router.New(nil), g.OnInit(tr.b.ID()))
	require.NoError(t, err)
	assert.True(t, tr.b.Checked())
}

func TestRemovedMemberIsIgnoredByReactor(t *testing.T) {
	tr := newTrio(t)
	g := tr.group()
	require.True(t, g.Remove(tr.c.ID()))
	p := widget.NewPanel(tr.tree, g)

	carry := pool.New[message.Msg]()
	router.New(carry).Tick(p)
	assert.Equal(t, []bool{true, false, false}, tr.states())
	require.Equal(t, 1, carry.Len(), "C's Init is not the group's to consume")
	assert.Equal(t, "trio.C", carry.Messages()[0].Address())
}
