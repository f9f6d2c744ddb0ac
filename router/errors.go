// ABOUTME: Sentinel and typed errors for the cooperative router.
// ABOUTME: Covers suspension, starvation, duplicate responses and replay divergence.
package router

import (
	"errors"
	"fmt"
)

var (
	// ErrSuspended is returned by Query when the protocol must yield to the
	// driving loop. Protocols return it unchanged.
	ErrSuspended = errors.New("protocol suspended awaiting response")

	// ErrStarved indicates a pending query was never answered within the
	// router's tick budget.
	ErrStarved = errors.New("query starved")

	// ErrDuplicateResponse indicates more than one Response arrived for a
	// single outstanding query. Only fatal with WithStrictContracts.
	ErrDuplicateResponse = errors.New("duplicate response for one query")

	// ErrReplayMismatch indicates a protocol issued a different query
	// sequence when replayed, which means it is not deterministic.
	ErrReplayMismatch = errors.New("protocol replay diverged")

	// ErrTaskFinished indicates a Task was resumed after it completed.
	ErrTaskFinished = errors.New("task already finished")

	// ErrTaskDetached indicates a Task was resumed after a newer task was
	// bound to its router.
	ErrTaskDetached = errors.New("router was bound to a newer task")
)

// StarvationError reports a query the driving loop gave up on.
type StarvationError struct {
	Pending Pending
	Ticks   int
	Reason  string // "budget" or "stalled"
}

func (e *StarvationError) Error() string {
	return fmt.Sprintf("query %s/%s starved after %d ticks (%s)",
		e.Pending.Address, e.Pending.Request, e.Ticks, e.Reason)
}

func (e *StarvationError) Unwrap() error {
	return ErrStarved
}

// ReplayMismatchError reports the query slot where a replayed protocol
// diverged from its journal.
type ReplayMismatchError struct {
	Seq  int
	Want string
	Got  string
}

func (e *ReplayMismatchError) Error() string {
	return fmt.Sprintf("replay diverged at query %d: journal has %s, protocol asked %s", e.Seq, e.Want, e.Got)
}

func (e *ReplayMismatchError) Unwrap() error {
	return ErrReplayMismatch
}
