// ABOUTME: Checkbox widget: a boolean state answering SetState/GetState queries and notifying Init and Pressed.
// ABOUTME: Event is a sealed interface; SetStateRequest and GetStateRequest describe its two query channels.
package checkbox

import (
	"log"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
)

// Event is the sealed set of checkbox events.
type Event interface {
	checkboxEvent()
}

// Init is emitted once, on the checkbox's first tick.
type Init struct{}

// Pressed is emitted after a user press toggled the state.
type Pressed struct{}

// SetState carries a SetState query or its acknowledgement.
type SetState struct {
	QR message.QR[bool, struct{}]
}

// GetState carries a GetState query or the current state.
type GetState struct {
	QR message.QR[struct{}, bool]
}

func (Init) checkboxEvent()     {}
func (Pressed) checkboxEvent()  {}
func (SetState) checkboxEvent() {}
func (GetState) checkboxEvent() {}

var (
	SetStateRequest = message.NewRequest[Event, bool, struct{}]("SetState",
		func(qr message.QR[bool, struct{}]) Event { return SetState{QR: qr} },
		func(e Event) (message.QR[bool, struct{}], bool) {
			s, ok := e.(SetState)
			return s.QR, ok
		})

	GetStateRequest = message.NewRequest[Event, struct{}, bool]("GetState",
		func(qr message.QR[struct{}, bool]) Event { return GetState{QR: qr} },
		func(e Event) (message.QR[struct{}, bool], bool) {
			g, ok := e.(GetState)
			return g.QR, ok
		})
)

// IsNotification reports whether e is an unsolicited event (Init or Pressed).
func IsNotification(e Event) bool {
	switch e.(type) {
	case Init, Pressed:
		return true
	}
	return false
}

// Checkbox is a two-state control bound to one address.
type Checkbox struct {
	id      message.ControlID[Event]
	label   string
	checked bool
	started bool
	presses int
}

// New creates an unchecked checkbox at id.
func New(id message.ControlID[Event], label string) *Checkbox {
	return &Checkbox{id: id, label: label}
}

// ID returns the checkbox's address.
func (c *Checkbox) ID() message.ControlID[Event] {
	return c.id
}

// Label returns the display label.
func (c *Checkbox) Label() string {
	return c.label
}

// Checked returns the current state.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// Press simulates a user press: the state toggles now and Pressed is
// emitted on the next tick.
func (c *Checkbox) Press() {
	c.checked = !c.checked
	c.presses++
}

// Handle answers every query addressed to the checkbox within this tick and
// flushes queued notifications. Other messages on its address are left in
// in for whoever owns them.
func (c *Checkbox) Handle(in, out *pool.Pool[message.Msg]) {
	if !c.started {
		c.started = true
		out.Push(c.id.Wrap(Init{}))
	}
	for ; c.presses > 0; c.presses-- {
		out.Push(c.id.Wrap(Pressed{}))
	}

	queries := in.DrainFilter(func(m message.Msg) bool {
		e, ok := message.Peek(m, c.id)
		return ok && isQuery(e)
	})
	for _, m := range queries {
		e, err := message.Unpack(m, c.id)
		if err != nil {
			log.Printf("component=checkbox action=unpack_failed address=%s err=%v", c.id, err)
			continue
		}
		switch ev := e.(type) {
		case SetState:
			v, _ := ev.QR.Query()
			c.checked = v
			out.Push(c.id.Wrap(SetStateRequest.Make(message.Answer[bool](struct{}{}))))
		case GetState:
			out.Push(c.id.Wrap(GetStateRequest.Make(message.Answer[struct{}](c.checked))))
		}
	}
}

func isQuery(e Event) bool {
	switch ev := e.(type) {
	case SetState:
		return ev.QR.IsQuery()
	case GetState:
		return ev.QR.IsQuery()
	}
	return false
}
