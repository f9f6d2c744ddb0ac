// ABOUTME: Panel wraps a child widget with reactors that turn its notifications into protocol runs.
// ABOUTME: Each reaction drives its protocol to completion over the child through a fresh router.
package widget

import (
	"log"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
	"github.com/2389-research/yorool/router"
)

// Reactor consumes the notifications it cares about from a Reaction and runs
// whatever protocols they call for.
type Reactor interface {
	React(rc *Reaction) error
}

// ReactorFunc adapts a function to Reactor.
type ReactorFunc func(rc *Reaction) error

func (f ReactorFunc) React(rc *Reaction) error { return f(rc) }

// Reaction is what a reactor sees during one panel tick: the notifications
// the child produced, and the child itself for protocols to query.
type Reaction struct {
	Notes *pool.Pool[message.Msg]
	Child Widget
	opts  []router.Option
}

// NewReaction builds a reaction over child. Routers created by Drive get opts.
func NewReaction(child Widget, notes *pool.Pool[message.Msg], opts ...router.Option) *Reaction {
	if notes == nil {
		notes = pool.New[message.Msg]()
	}
	return &Reaction{Notes: notes, Child: child, opts: opts}
}

// Drive runs proto to completion over the reaction's child with a fresh
// router labelled label. Whatever the child left unclaimed or in the router's
// pool is returned to Notes so later reactors and the panel's output still
// see it.
func Drive[T any](rc *Reaction, label string, proto router.Protocol[T]) (T, error) {
	opts := make([]router.Option, 0, len(rc.opts)+2)
	opts = append(opts, rc.opts...)
	opts = append(opts, router.WithLabel(label), router.WithUnclaimed(func(msgs []message.Msg) {
		for _, m := range msgs {
			rc.Notes.Push(m)
		}
	}))
	rt := router.New(nil, opts...)
	result, err := router.Run(rc.Child, rt, proto)
	rc.Notes.Append(rt.Pool())
	return result, err
}

// Panel is a widget that owns one child and the reactors attached to it.
type Panel struct {
	Child    Widget
	Reactors []Reactor
	// Options are applied to every router a reaction creates.
	Options []router.Option
	// OnError receives reactor failures. They are logged either way.
	OnError func(error)

	queued *pool.Pool[message.Msg]
}

// NewPanel wraps child.
func NewPanel(child Widget, reactors ...Reactor) *Panel {
	return &Panel{Child: child, Reactors: reactors}
}

// AddReactor attaches another reactor. Reactors run in attachment order.
func (p *Panel) AddReactor(r Reactor) {
	p.Reactors = append(p.Reactors, r)
}

// Queue hands the panel notifications its child raised while something else
// was ticking it. Reactors see them on the next Handle, ahead of the child's
// own output.
func (p *Panel) Queue(msgs ...message.Msg) {
	if p.queued == nil {
		p.queued = pool.New[message.Msg]()
	}
	for _, m := range msgs {
		p.queued.Push(m)
	}
}

// Handle ticks the child into a scratch pool, gives every reactor a chance
// to consume notifications from it, then forwards what is left to out.
func (p *Panel) Handle(in, out *pool.Pool[message.Msg]) {
	scratch := pool.New[message.Msg]()
	scratch.Append(p.queued)
	p.Child.Handle(in, scratch)
	rc := NewReaction(p.Child, scratch, p.Options...)
	for _, r := range p.Reactors {
		if err := r.React(rc); err != nil {
			log.Printf("component=widget.panel action=react_failed err=%v", err)
			if p.OnError != nil {
				p.OnError(err)
			}
		}
	}
	out.Append(scratch)
}
