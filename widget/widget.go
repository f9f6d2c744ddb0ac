// ABOUTME: Widget handler contract and the Ribbon container that composes children in declaration order.
// ABOUTME: Every widget drains messages addressed to it from in and pushes responses and notifications to out.
package widget

import (
	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
)

// Widget is one node of the widget tree. Handle is called once per tick: it
// drains every message addressed to the widget (or any descendant) from in
// and pushes responses, notifications and new queries to out. Messages it
// does not recognise stay in in for the next consumer.
type Widget interface {
	Handle(in, out *pool.Pool[message.Msg])
}

// Orientation records how a Ribbon lays out its children. The core never
// reads it; renderers do.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Ribbon is a container whose children see the same input pool in
// declaration order.
type Ribbon struct {
	Orientation Orientation
	Children    []Widget
}

// NewRibbon builds a ribbon with the given children.
func NewRibbon(o Orientation, children ...Widget) *Ribbon {
	return &Ribbon{Orientation: o, Children: children}
}

// Add appends a child.
func (r *Ribbon) Add(w Widget) {
	r.Children = append(r.Children, w)
}

func (r *Ribbon) Handle(in, out *pool.Pool[message.Msg]) {
	for _, c := range r.Children {
		c.Handle(in, out)
	}
}
