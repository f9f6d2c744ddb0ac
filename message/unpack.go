// ABOUTME: Typed event extraction from messages: Peek, Unpack and QueryByCtrlID over a pool.
// ABOUTME: Request pairs an event constructor with its matcher so the router can build and recognise QR events.
package message

import (
	"fmt"

	"github.com/2389-research/yorool/pool"
)

// MismatchError is returned by Unpack when a message is not the variant the
// address constructs. It hands the original message back unchanged so other
// consumers may still claim it.
type MismatchError struct {
	Msg     Msg
	Address string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("message %s is not addressed to %s", e.Msg.Address(), e.Address)
}

// Peek returns the inner event iff m is the variant id constructs.
func Peek[E any](m Msg, id ControlID[E]) (E, bool) {
	var zero E
	if !id.Matches(m) {
		return zero, false
	}
	e, ok := m.event.(E)
	if !ok {
		return zero, true
	}
	return e, true
}

// Unpack consumes m and returns its event on match. On mismatch it returns
// a *MismatchError holding m.
func Unpack[E any](m Msg, id ControlID[E]) (E, error) {
	e, ok := Peek(m, id)
	if !ok {
		return e, &MismatchError{Msg: m, Address: id.String()}
	}
	return e, nil
}

// QueryByCtrlID drains every message addressed to id from p and returns the
// unpacked events in pool order.
func QueryByCtrlID[E any](p *pool.Pool[Msg], id ControlID[E]) []E {
	msgs := p.DrainFilter(id.Matches)
	events := make([]E, 0, len(msgs))
	for _, m := range msgs {
		e, err := Unpack(m, id)
		if err != nil {
			// DrainFilter only returned matching messages.
			panic(err)
		}
		events = append(events, e)
	}
	return events
}

// Request describes one query/response channel of a widget event type: how
// to build the event from a QR and how to recognise it again.
type Request[E, Q, R any] struct {
	Name  string
	Make  func(QR[Q, R]) E
	Match func(E) (QR[Q, R], bool)
}

// NewRequest builds a Request from its constructor and matcher.
func NewRequest[E, Q, R any](name string, build func(QR[Q, R]) E, match func(E) (QR[Q, R], bool)) Request[E, Q, R] {
	return Request[E, Q, R]{Name: name, Make: build, Match: match}
}

// Responds reports whether m is a Response for this request on address id,
// returning the answer when it is.
func (r Request[E, Q, R]) Responds(m Msg, id ControlID[E]) (R, bool) {
	var zero R
	e, ok := Peek(m, id)
	if !ok {
		return zero, false
	}
	qr, ok := r.Match(e)
	if !ok {
		return zero, false
	}
	return qr.Response()
}
