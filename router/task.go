// ABOUTME: Task is the explicit suspend/resume state machine around a protocol.
// ABOUTME: Resume replays the protocol against its answer journal and yields Suspended(pending) or Done(result).
package router

import "log"

// Protocol is a straight-line procedure expressed on top of Query. It holds
// no pool or handler state of its own and must issue the same query sequence
// whenever it is replayed with the same answers.
type Protocol[T any] func(rt *Router) (T, error)

// Step is the outcome of one Resume: either Suspended on Pending, or Done
// with the protocol's result.
type Step[T any] struct {
	Done    bool
	Result  T
	Err     error
	Pending Pending
}

// Suspended reports whether the protocol is waiting on a query.
func (s Step[T]) Suspended() bool {
	return !s.Done
}

// Task binds a protocol to the router that serves its queries.
type Task[T any] struct {
	rt      *Router
	proto   Protocol[T]
	gen     uint64
	started bool
	final   *Step[T]
}

// NewTask prepares proto to run over rt. Nothing happens until Resume.
// A router serves one task at a time: binding a new task discards the
// journal of the previous one, which can no longer be resumed.
func NewTask[T any](rt *Router, proto Protocol[T]) *Task[T] {
	return &Task[T]{rt: rt, proto: proto, gen: rt.bind()}
}

// Router returns the router serving the task.
func (t *Task[T]) Router() *Router {
	return t.rt
}

// Done reports whether the task has completed.
func (t *Task[T]) Done() bool {
	return t.final != nil
}

// Resume runs the protocol until it completes or suspends on a query that
// the current pool cannot answer. Resuming a finished task returns its final
// step again with ErrTaskFinished if it had no error of its own.
func (t *Task[T]) Resume() Step[T] {
	if t.final != nil {
		s := *t.final
		if s.Err == nil {
			s.Err = ErrTaskFinished
		}
		return s
	}
	rt := t.rt
	if rt.bound != t.gen {
		log.Printf("component=router action=resume_detached run_id=%s label=%s", rt.runID, rt.label)
		s := Step[T]{Done: true, Err: ErrTaskDetached}
		t.final = &s
		return s
	}
	if !t.started {
		t.started = true
		rt.emit(Event{Kind: EventRunStarted})
	}

	rt.cursor = 0
	rt.suspended = false
	result, err := t.proto(rt)

	if rt.failed != nil {
		return t.finish(Step[T]{Done: true, Err: rt.failed})
	}
	if rt.suspended {
		if err == nil {
			log.Printf("component=router action=suspension_swallowed run_id=%s label=%s", rt.runID, rt.label)
		}
		return Step[T]{Pending: *rt.pending}
	}
	return t.finish(Step[T]{Done: true, Result: result, Err: err})
}

func (t *Task[T]) finish(s Step[T]) Step[T] {
	t.final = &s
	detail := "ok"
	if s.Err != nil {
		detail = s.Err.Error()
	}
	t.rt.emit(Event{Kind: EventRunFinished, Seq: len(t.rt.journal), Detail: detail})
	return s
}
