// ABOUTME: Pool is the ordered, destructively drainable collection of in-flight messages.
// ABOUTME: A pool has exactly one owner at a time; ownership moves by Swap or Drain, never by sharing.
package pool

// Pool is an append-ordered sequence of messages exchanged during one tick.
// It carries no locking: correctness relies on a single owner at any instant.
type Pool[M any] struct {
	msgs []M
}

// New creates a pool holding msgs in the given order.
func New[M any](msgs ...M) *Pool[M] {
	p := &Pool[M]{}
	if len(msgs) > 0 {
		p.msgs = append(make([]M, 0, len(msgs)), msgs...)
	}
	return p
}

// Push appends m to the end of the pool.
func (p *Pool[M]) Push(m M) {
	p.msgs = append(p.msgs, m)
}

// DrainFilter removes and returns, in original order, every message that
// satisfies pred. Messages that don't match stay in the pool with their
// relative order intact.
func (p *Pool[M]) DrainFilter(pred func(M) bool) []M {
	var taken []M
	kept := p.msgs[:0]
	for _, m := range p.msgs {
		if pred(m) {
			taken = append(taken, m)
			continue
		}
		kept = append(kept, m)
	}
	// Zero the abandoned tail so drained messages aren't retained.
	var zero M
	for i := len(kept); i < len(p.msgs); i++ {
		p.msgs[i] = zero
	}
	p.msgs = kept
	return taken
}

// Drain removes and returns every message in the pool.
func (p *Pool[M]) Drain() []M {
	out := p.msgs
	p.msgs = nil
	return out
}

// Query returns the messages satisfying pred without consuming them.
func (p *Pool[M]) Query(pred func(M) bool) []M {
	var found []M
	for _, m := range p.msgs {
		if pred(m) {
			found = append(found, m)
		}
	}
	return found
}

// Any reports whether at least one message satisfies pred.
func (p *Pool[M]) Any(pred func(M) bool) bool {
	for _, m := range p.msgs {
		if pred(m) {
			return true
		}
	}
	return false
}

// Append drains other into the end of p, preserving other's order.
func (p *Pool[M]) Append(other *Pool[M]) {
	if other == nil || other == p {
		return
	}
	p.msgs = append(p.msgs, other.Drain()...)
}

// Swap exchanges the contents of p and other. This is the hand-off the
// driving loop uses to move a tick's output into the router's pool.
func (p *Pool[M]) Swap(other *Pool[M]) {
	p.msgs, other.msgs = other.msgs, p.msgs
}

// Messages returns a copy of the pool contents for inspection.
func (p *Pool[M]) Messages() []M {
	return append([]M(nil), p.msgs...)
}

// Len returns the number of messages in the pool.
func (p *Pool[M]) Len() int {
	return len(p.msgs)
}

// IsEmpty reports whether the pool holds no messages.
func (p *Pool[M]) IsEmpty() bool {
	return len(p.msgs) == 0
}

// Clear discards every message in the pool.
func (p *Pool[M]) Clear() {
	p.msgs = nil
}
