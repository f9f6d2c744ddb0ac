// ABOUTME: Router owns the message pool for one protocol run and implements the Query suspension primitive.
// ABOUTME: Answers come from the pool when present; otherwise the query is pushed and the protocol suspends.
package router

import (
	"crypto/rand"
	"fmt"
	"log"

	"github.com/oklog/ulid/v2"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
)

const (
	// DefaultMaxTicks bounds the handler ticks a single Run may drive.
	DefaultMaxTicks = 256
	// DefaultMaxStall bounds consecutive ticks spent waiting on one query.
	DefaultMaxStall = 8
)

// Option configures a Router.
type Option func(*Router)

// WithMaxTicks sets the total tick budget of a Run. Values <= 0 keep the default.
func WithMaxTicks(n int) Option {
	return func(rt *Router) {
		if n > 0 {
			rt.maxTicks = n
		}
	}
}

// WithMaxStall sets how many consecutive ticks a single query may stay
// unanswered before Run reports starvation. Values <= 0 keep the default.
func WithMaxStall(n int) Option {
	return func(rt *Router) {
		if n > 0 {
			rt.maxStall = n
		}
	}
}

// WithObserver attaches an observer for router events.
func WithObserver(o Observer) Option {
	return func(rt *Router) {
		rt.observer = o
	}
}

// WithStrictContracts makes duplicate responses fail the protocol instead of
// being logged and resolved by last-match-wins.
func WithStrictContracts() Option {
	return func(rt *Router) {
		rt.strict = true
	}
}

// WithLabel names the protocol run in logs and observer events.
func WithLabel(label string) Option {
	return func(rt *Router) {
		rt.label = label
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id ulid.ULID) Option {
	return func(rt *Router) {
		rt.runID = id
	}
}

// WithUnclaimed installs the catch-all for messages no widget drained during
// a tick. Without it unclaimed messages are reported to the observer and dropped.
func WithUnclaimed(fn func([]message.Msg)) Option {
	return func(rt *Router) {
		rt.unclaimed = fn
	}
}

// Pending describes the query a suspended protocol is waiting on.
type Pending struct {
	Seq     int
	Address string
	Request string
	Tick    int // tick at which the query was pushed
}

func (p Pending) key() string {
	return p.Address + "/" + p.Request
}

type answer struct {
	key   string
	value any
}

// Router drives one protocol over a pool it owns. The pool may be fresh or
// carried over from a prior cycle; Pool returns it for carrying on.
type Router struct {
	pool      *pool.Pool[message.Msg]
	runID     ulid.ULID
	label     string
	maxTicks  int
	maxStall  int
	strict    bool
	observer  Observer
	unclaimed func([]message.Msg)

	journal   []answer
	cursor    int
	pending   *Pending
	suspended bool
	failed    error
	tick      int
	bound     uint64 // generation of the task currently driving the router
}

// New creates a router over p. A nil p starts from an empty pool.
func New(p *pool.Pool[message.Msg], opts ...Option) *Router {
	if p == nil {
		p = pool.New[message.Msg]()
	}
	rt := &Router{
		pool:     p,
		maxTicks: DefaultMaxTicks,
		maxStall: DefaultMaxStall,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.runID == (ulid.ULID{}) {
		rt.runID = ulid.MustNew(ulid.Now(), rand.Reader)
	}
	return rt
}

// bind clears the protocol state of any earlier task so a new one starts
// from an empty journal. The pool and tick count carry over; a query the
// earlier task left pending stays in the pool as an orphan.
func (rt *Router) bind() uint64 {
	rt.journal = nil
	rt.cursor = 0
	rt.pending = nil
	rt.suspended = false
	rt.failed = nil
	rt.bound++
	return rt.bound
}

// Pool returns the router's current pool.
func (rt *Router) Pool() *pool.Pool[message.Msg] {
	return rt.pool
}

// RunID returns the id stamped on this router's events.
func (rt *Router) RunID() ulid.ULID {
	return rt.runID
}

// Label returns the run label.
func (rt *Router) Label() string {
	return rt.label
}

// Ticks returns the number of handler ticks driven so far.
func (rt *Router) Ticks() int {
	return rt.tick
}

// Pending returns the outstanding query, if any.
func (rt *Router) Pending() (Pending, bool) {
	if rt.pending == nil {
		return Pending{}, false
	}
	return *rt.pending, true
}

// Query asks the widget at id for req with parameter q.
//
// Answers are journaled under the address and req.Name, so request names
// must be unique per event type. Two requests sharing a name but not an
// answer type fail on replay with *ReplayMismatchError.
//
// If a matching Response is already in the pool it is drained and returned
// without suspending. Otherwise the Query is pushed (once) and ErrSuspended is
// returned; the protocol must return it so the driving loop can tick the
// widgets and resume. On resume the protocol is replayed and queries already
// answered return their journaled values.
func Query[E, Q, R any](rt *Router, id message.ControlID[E], req message.Request[E, Q, R], q Q) (R, error) {
	var zero R
	if rt.failed != nil {
		return zero, rt.failed
	}
	if rt.suspended {
		return zero, ErrSuspended
	}
	key := id.String() + "/" + req.Name

	if rt.cursor < len(rt.journal) {
		a := rt.journal[rt.cursor]
		if a.key != key {
			return zero, rt.fail(&ReplayMismatchError{Seq: rt.cursor, Want: a.key, Got: key})
		}
		v, ok := a.value.(R)
		if !ok && a.value != nil {
			return zero, rt.fail(&ReplayMismatchError{Seq: rt.cursor,
				Want: fmt.Sprintf("%s (%T)", a.key, a.value), Got: fmt.Sprintf("%s (%T)", key, zero)})
		}
		rt.cursor++
		return v, nil
	}

	if r, n := takeResponses(rt.pool, id, req); n > 0 {
		if n > 1 {
			if err := rt.duplicate(key, n); err != nil {
				return zero, err
			}
		}
		rt.resolve(key, r)
		return r, nil
	}

	if rt.pending == nil {
		rt.pool.Push(id.Wrap(req.Make(message.Ask[Q, R](q))))
		rt.pending = &Pending{Seq: rt.cursor, Address: id.String(), Request: req.Name, Tick: rt.tick}
		rt.emit(Event{Kind: EventQueryPushed, Seq: rt.cursor, Address: id.String(), Request: req.Name,
			Detail: fmt.Sprintf("%v", q)})
	} else if rt.pending.Seq != rt.cursor || rt.pending.key() != key {
		return zero, rt.fail(&ReplayMismatchError{Seq: rt.cursor, Want: rt.pending.key(), Got: key})
	}
	rt.suspended = true
	return zero, ErrSuspended
}

// takeResponses drains every Response for req on id in one destructive scan.
// The last one found wins.
func takeResponses[E, Q, R any](p *pool.Pool[message.Msg], id message.ControlID[E], req message.Request[E, Q, R]) (R, int) {
	var last R
	found := p.DrainFilter(func(m message.Msg) bool {
		_, ok := req.Responds(m, id)
		return ok
	})
	for _, m := range found {
		last, _ = req.Responds(m, id)
	}
	return last, len(found)
}

func (rt *Router) resolve(key string, value any) {
	seq := rt.cursor
	rt.journal = append(rt.journal, answer{key: key, value: value})
	rt.cursor++
	waited := 0
	if rt.pending != nil && rt.pending.Seq == seq {
		waited = rt.tick - rt.pending.Tick
		rt.pending = nil
	}
	address, request := splitKey(key)
	rt.emit(Event{Kind: EventQueryResolved, Seq: seq, Address: address, Request: request,
		Detail: fmt.Sprintf("%v after %d ticks", value, waited)})
}

func (rt *Router) duplicate(key string, n int) error {
	address, request := splitKey(key)
	log.Printf("component=router action=duplicate_response run_id=%s label=%s address=%s request=%s count=%d",
		rt.runID, rt.label, address, request, n)
	rt.emit(Event{Kind: EventDuplicateResponse, Seq: rt.cursor, Address: address, Request: request,
		Detail: fmt.Sprintf("%d responses, last wins", n)})
	if rt.strict {
		return rt.fail(fmt.Errorf("%w: %s received %d responses", ErrDuplicateResponse, key, n))
	}
	return nil
}

func (rt *Router) fail(err error) error {
	if rt.failed == nil {
		rt.failed = err
	}
	return rt.failed
}

// Tick hands the pool to h for exactly one handle call and takes the output
// as the new pool. Input messages h left undrained go to the unclaimed
// catch-all.
func (rt *Router) Tick(h Handler) {
	in := pool.New[message.Msg]()
	in.Swap(rt.pool)
	out := pool.New[message.Msg]()
	h.Handle(in, out)
	if leftover := in.Drain(); len(leftover) > 0 {
		rt.reportUnclaimed(leftover)
	}
	rt.pool.Swap(out)
	rt.tick++
	rt.emit(Event{Kind: EventTick, PoolSize: rt.pool.Len()})
}

func (rt *Router) reportUnclaimed(msgs []message.Msg) {
	for _, m := range msgs {
		rt.emit(Event{Kind: EventUnclaimed, Address: m.Address(), Detail: m.String()})
	}
	if rt.unclaimed != nil {
		rt.unclaimed(msgs)
	}
}

func (rt *Router) emit(e Event) {
	if rt.observer == nil {
		return
	}
	e.RunID = rt.runID
	e.Label = rt.label
	e.Tick = rt.tick
	if e.PoolSize == 0 {
		e.PoolSize = rt.pool.Len()
	}
	rt.observer.Observe(e)
}

func splitKey(key string) (string, string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
