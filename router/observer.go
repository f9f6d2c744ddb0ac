// ABOUTME: Observer hook for router lifecycle and diagnostic events.
// ABOUTME: Trace recorders and tests subscribe here; the router never blocks on an observer.
package router

import "github.com/oklog/ulid/v2"

// EventKind names a router lifecycle or diagnostic event.
type EventKind string

const (
	EventRunStarted        EventKind = "run_started"
	EventQueryPushed       EventKind = "query_pushed"
	EventQueryResolved     EventKind = "query_resolved"
	EventTick              EventKind = "tick"
	EventDuplicateResponse EventKind = "duplicate_response"
	EventUnclaimed         EventKind = "unclaimed"
	EventStarved           EventKind = "starved"
	EventRunFinished       EventKind = "run_finished"
)

// Event is one observation emitted by a router.
type Event struct {
	Kind     EventKind
	RunID    ulid.ULID
	Label    string
	Tick     int
	Seq      int
	Address  string
	Request  string
	Detail   string
	PoolSize int
}

// Observer receives router events synchronously, in order.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Observers fans one event out to several observers in order.
type Observers []Observer

func (os Observers) Observe(e Event) {
	for _, o := range os {
		if o != nil {
			o.Observe(e)
		}
	}
}
