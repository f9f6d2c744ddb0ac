// ABOUTME: Tests for the Ribbon and Panel containers and the Arena window registry.
// ABOUTME: Uses checkboxes as leaf widgets.
package widget_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/widget"
	"github.com/2389-research/yorool/widget/checkbox"
)

type fixture struct {
	a, b *checkbox.Checkbox
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := message.NewSchema("pair")
	a := message.Define[checkbox.Event](s, "A")
	b := message.Define[checkbox.Event](s, "B")
	require.NoError(t, s.Seal())
	return fixture{a: checkbox.New(a, "a"), b: checkbox.New(b, "b")}
}

func tick(w widget.Widget, in *pool.Pool[message.Msg]) *pool.Pool[message.Msg] {
	out := pool.New[message.Msg]()
	w.Handle(in, out)
	return out
}

func TestRibbonHandlesChildrenInOrder(t *testing.T) {
	f := newFixture(t)
	r := widget.NewRibbon(widget.Horizontal, f.a)
	r.Add(f.b)
	assert.Equal(t, "horizontal", r.Orientation.String())

	out := tick(r, pool.New[message.Msg]())
	msgs := out.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "pair.A", msgs[0].Address())
	assert.Equal(t, "pair.B", msgs[1].Address())
}

func TestRibbonLeavesForeignMessages(t *testing.T) {
	f := newFixture(t)
	other := message.NewSchema("other")
	x := message.Define[checkbox.Event](other, "X")
	require.NoError(t, other.Seal())

	in := pool.New(x.Wrap(checkbox.Init{}))
	tick(widget.NewRibbon(widget.Vertical, f.a, f.b), in)
	assert.Equal(t, 1, in.Len())
}

func TestPanelRunsReactorProtocolsOverChild(t *testing.T) {
	f := newFixture(t)
	child := widget.NewRibbon(widget.Vertical, f.a, f.b)

	// Mirror a's Init into b: when a initialises, check b.
	mirror := widget.ReactorFunc(func(rc *widget.Reaction) error {
		inits := message.QueryByCtrlID(rc.Notes, f.a.ID())
		for range inits {
			_, err := widget.Drive(rc, "mirror", func(rt *router.Router) (struct{}, error) {
				_, err := router.Query(rt, f.b.ID(), checkbox.SetStateRequest, true)
				return struct{}{}, err
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	p := widget.NewPanel(child, mirror)

	out := tick(p, pool.New[message.Msg]())
	assert.True(t, f.b.Checked())
	// b's Init was not claimed by the reactor and is forwarded.
	msgs := out.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "pair.B", msgs[0].Address())
}

func TestPanelReportsReactorErrors(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	var got []error
	p := widget.NewPanel(f.a)
	p.AddReactor(widget.ReactorFunc(func(*widget.Reaction) error { return boom }))
	p.OnError = func(err error) { got = append(got, err) }

	tick(p, pool.New[message.Msg]())
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], boom)
}

func TestPanelRouterOptionsReachReactions(t *testing.T) {
	s := message.NewSchema("lonely")
	ghost := message.Define[checkbox.Event](s, "Ghost")
	require.NoError(t, s.Seal())

	var labels []string
	p := widget.NewPanel(widget.NewRibbon(widget.Vertical))
	p.Options = []router.Option{
		router.WithMaxStall(2),
		router.WithObserver(router.ObserverFunc(func(e router.Event) {
			if e.Kind == router.EventStarved {
				labels = append(labels, e.Label)
			}
		})),
	}
	var failure error
	p.OnError = func(err error) { failure = err }
	p.AddReactor(widget.ReactorFunc(func(rc *widget.Reaction) error {
		_, err := widget.Drive(rc, "ghost", func(rt *router.Router) (bool, error) {
			return router.Query(rt, ghost, checkbox.GetStateRequest, struct{}{})
		})
		return err
	}))

	tick(p, pool.New[message.Msg]())
	assert.ErrorIs(t, failure, router.ErrStarved)
	assert.Equal(t, []string{"ghost"}, labels)
}

func TestArenaIndicesAreStable(t *testing.T) {
	f := newFixture(t)
	a := widget.NewArena()
	ia := a.Add(f.a)
	ib := a.Add(f.b)
	assert.Equal(t, widget.Index(0), ia)
	assert.Equal(t, widget.Index(1), ib)

	assert.True(t, a.Remove(ia))
	assert.False(t, a.Remove(ia), "already removed")
	_, ok := a.Get(ia)
	assert.False(t, ok)

	w, ok := a.Get(ib)
	require.True(t, ok)
	assert.Same(t, f.b, w)

	ic := a.Add(checkbox.New(f.a.ID(), "again"))
	assert.Equal(t, widget.Index(2), ic, "tombstoned index is not reused")
	assert.Equal(t, []widget.Index{1, 2}, a.Indices())
	assert.Equal(t, 2, a.Len())
	_, ok = a.Get(-1)
	assert.False(t, ok)
}

func TestArenaNotifyHandlers(t *testing.T) {
	f := newFixture(t)
	a := widget.NewArena()
	ia := a.Add(f.a)
	ib := a.Add(f.b)

	var seen []widget.Index
	consume, err := a.OnNotify(ia, func(idx widget.Index, m message.Msg) bool {
		seen = append(seen, idx)
		return true
	})
	require.NoError(t, err)
	_, err = a.OnNotify(ib, func(idx widget.Index, m message.Msg) bool {
		seen = append(seen, idx)
		return false
	})
	require.NoError(t, err)
	_, err = a.OnNotify(widget.Index(9), func(widget.Index, message.Msg) bool { return true })
	assert.Error(t, err)

	out := tick(a, pool.New[message.Msg]())
	assert.Equal(t, []widget.Index{ia, ib}, seen)
	require.Equal(t, 1, out.Len(), "a's Init consumed, b's forwarded")
	assert.Equal(t, "pair.B", out.Messages()[0].Address())

	assert.True(t, a.RemoveHandler(consume))
	assert.False(t, a.RemoveHandler(consume))
	f.a.Press()
	out = tick(a, pool.New[message.Msg]())
	assert.Equal(t, 1, out.Len(), "a's Pressed now flows through")
}

func TestArenaSkipsRemovedWindows(t *testing.T) {
	f := newFixture(t)
	a := widget.NewArena()
	ia := a.Add(f.a)
	a.Add(f.b)
	require.True(t, a.Remove(ia))

	out := tick(a, pool.New[message.Msg]())
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "pair.B", out.Messages()[0].Address())
}
