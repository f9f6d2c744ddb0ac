// ABOUTME: Button widget: counts presses, notifies Pressed and serves its label over SetLabel/GetLabel queries.
// ABOUTME: Event is a sealed interface; SetLabelRequest and GetLabelRequest describe the label backend.
package button

import (
	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
)

// Event is the sealed set of button events.
type Event interface {
	buttonEvent()
}

// Pressed is emitted once per press. Clicks is the running total.
type Pressed struct {
	Clicks int
}

// SetLabel carries a label update or its acknowledgement.
type SetLabel struct {
	QR message.QR[string, struct{}]
}

// GetLabel carries a label read or the label.
type GetLabel struct {
	QR message.QR[struct{}, string]
}

func (Pressed) buttonEvent()  {}
func (SetLabel) buttonEvent() {}
func (GetLabel) buttonEvent() {}

var (
	SetLabelRequest = message.NewRequest[Event, string, struct{}]("SetLabel",
		func(qr message.QR[string, struct{}]) Event { return SetLabel{QR: qr} },
		func(e Event) (message.QR[string, struct{}], bool) {
			s, ok := e.(SetLabel)
			return s.QR, ok
		})

	GetLabelRequest = message.NewRequest[Event, struct{}, string]("GetLabel",
		func(qr message.QR[struct{}, string]) Event { return GetLabel{QR: qr} },
		func(e Event) (message.QR[struct{}, string], bool) {
			g, ok := e.(GetLabel)
			return g.QR, ok
		})
)

// Button is a push button bound to one address.
type Button struct {
	id     message.ControlID[Event]
	label  string
	clicks int
	queued []int
}

// New creates a button at id.
func New(id message.ControlID[Event], label string) *Button {
	return &Button{id: id, label: label}
}

func (b *Button) ID() message.ControlID[Event] { return b.id }
func (b *Button) Label() string                { return b.label }
func (b *Button) Clicks() int                  { return b.clicks }

// Press records a click. Pressed is emitted on the next tick.
func (b *Button) Press() {
	b.clicks++
	b.queued = append(b.queued, b.clicks)
}

// Handle flushes queued presses and answers label queries. Other messages on
// the button's address are left in in.
func (b *Button) Handle(in, out *pool.Pool[message.Msg]) {
	for _, n := range b.queued {
		out.Push(b.id.Wrap(Pressed{Clicks: n}))
	}
	b.queued = b.queued[:0]

	queries := in.DrainFilter(func(m message.Msg) bool {
		e, ok := message.Peek(m, b.id)
		return ok && isQuery(e)
	})
	for _, m := range queries {
		e, _ := message.Peek(m, b.id)
		switch ev := e.(type) {
		case SetLabel:
			b.label, _ = ev.QR.Query()
			out.Push(b.id.Wrap(SetLabelRequest.Make(message.Answer[string](struct{}{}))))
		case GetLabel:
			out.Push(b.id.Wrap(GetLabelRequest.Make(message.Answer[struct{}](b.label))))
		}
	}
}

func isQuery(e Event) bool {
	switch ev := e.(type) {
	case SetLabel:
		return ev.QR.IsQuery()
	case GetLabel:
		return ev.QR.IsQuery()
	}
	return false
}
