// ABOUTME: QR is the two-state query/response envelope carried inside widget events.
// ABOUTME: The zero QR is a Response holding the zero answer, which makes "nothing yet" representable.
package message

import "fmt"

// QR distinguishes a pending request carrying parameters Q from its answer R.
type QR[Q, R any] struct {
	query bool
	q     Q
	r     R
}

// Ask builds the Query state.
func Ask[Q, R any](q Q) QR[Q, R] {
	return QR[Q, R]{query: true, q: q}
}

// Answer builds the Response state.
func Answer[Q, R any](r R) QR[Q, R] {
	return QR[Q, R]{r: r}
}

// IsQuery reports whether x is an outstanding request.
func (x QR[Q, R]) IsQuery() bool {
	return x.query
}

// IsResponse reports whether x is an answer.
func (x QR[Q, R]) IsResponse() bool {
	return !x.query
}

// Query returns the request parameters when x is a Query.
func (x QR[Q, R]) Query() (Q, bool) {
	if !x.query {
		var zero Q
		return zero, false
	}
	return x.q, true
}

// Response returns the answer when x is a Response.
func (x QR[Q, R]) Response() (R, bool) {
	if x.query {
		var zero R
		return zero, false
	}
	return x.r, true
}

func (x QR[Q, R]) String() string {
	if x.query {
		return fmt.Sprintf("Query(%v)", x.q)
	}
	return fmt.Sprintf("Response(%v)", x.r)
}
