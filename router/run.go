// ABOUTME: Run is the driving loop: resume the protocol, tick the widget handler once, repeat.
// ABOUTME: A tick budget and a stall budget turn unanswered queries into a StarvationError.
package router

import (
	"log"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
)

// Handler is the widget tree seen from the router: one Handle call drains
// every message addressed to any widget in the tree from in and pushes
// responses, notifications and new queries to out.
type Handler interface {
	Handle(in, out *pool.Pool[message.Msg])
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(in, out *pool.Pool[message.Msg])

func (f HandlerFunc) Handle(in, out *pool.Pool[message.Msg]) { f(in, out) }

// Run drives proto to completion over rt, calling h.Handle exactly once
// between consecutive resumes. It gives up with a *StarvationError when the
// run exceeds the router's tick budget, or when one query stays unanswered
// for more than the stall budget.
func Run[T any](h Handler, rt *Router, proto Protocol[T]) (T, error) {
	task := NewTask(rt, proto)
	ticks := 0
	stalled := 0
	lastSeq := -1
	for {
		step := task.Resume()
		if step.Done {
			return step.Result, step.Err
		}

		if step.Pending.Seq == lastSeq {
			stalled++
		} else {
			lastSeq = step.Pending.Seq
			stalled = 0
		}

		reason := ""
		switch {
		case ticks >= rt.maxTicks:
			reason = "budget"
		case stalled >= rt.maxStall:
			reason = "stalled"
		}
		if reason != "" {
			err := &StarvationError{Pending: step.Pending, Ticks: ticks, Reason: reason}
			log.Printf("component=router action=starved run_id=%s label=%s address=%s request=%s ticks=%d reason=%s",
				rt.runID, rt.label, step.Pending.Address, step.Pending.Request, ticks, reason)
			rt.emit(Event{Kind: EventStarved, Seq: step.Pending.Seq, Address: step.Pending.Address,
				Request: step.Pending.Request, Detail: reason})
			var zero T
			return zero, err
		}

		rt.Tick(h)
		ticks++
	}
}
