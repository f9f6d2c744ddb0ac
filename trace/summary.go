// ABOUTME: Summarize folds a record stream into one RunSummary per router run.
// ABOUTME: Summaries keep the order in which runs first appear.
package trace

import (
	"fmt"
	"time"

	"github.com/2389-research/yorool/router"
)

// RunSummary describes one router run.
type RunSummary struct {
	RunID      string    `yaml:"run_id"`
	SessionID  string    `yaml:"session_id"`
	Label      string    `yaml:"label"`
	Started    time.Time `yaml:"started"`
	Ticks      int       `yaml:"ticks"`
	Queries    int       `yaml:"queries"`
	Resolved   int       `yaml:"resolved"`
	Duplicates int       `yaml:"duplicates,omitempty"`
	Unclaimed  int       `yaml:"unclaimed,omitempty"`
	Outcome    string    `yaml:"outcome"`
}

// Outcomes for runs that never reported one.
const (
	OutcomeIncomplete = "incomplete"
	OutcomeTicksOnly  = "ticks only"
)

// Summarize groups records by run id.
func Summarize(records []Record) []RunSummary {
	var order []string
	byRun := make(map[string]*RunSummary)
	started := make(map[string]bool)

	for _, rec := range records {
		id := rec.RunID.String()
		s, ok := byRun[id]
		if !ok {
			s = &RunSummary{RunID: id, SessionID: rec.SessionID.String(), Label: rec.Label, Started: rec.At}
			byRun[id] = s
			order = append(order, id)
		}
		if rec.Tick > s.Ticks {
			s.Ticks = rec.Tick
		}
		switch router.EventKind(rec.Kind) {
		case router.EventRunStarted:
			started[id] = true
		case router.EventQueryPushed:
			s.Queries++
		case router.EventQueryResolved:
			s.Resolved++
		case router.EventDuplicateResponse:
			s.Duplicates++
		case router.EventUnclaimed:
			s.Unclaimed++
		case router.EventStarved:
			s.Outcome = fmt.Sprintf("starved (%s)", rec.Detail)
		case router.EventRunFinished:
			s.Outcome = rec.Detail
		}
	}

	out := make([]RunSummary, 0, len(order))
	for _, id := range order {
		s := byRun[id]
		if s.Outcome == "" {
			if started[id] {
				s.Outcome = OutcomeIncomplete
			} else {
				s.Outcome = OutcomeTicksOnly
			}
		}
		out = append(out, *s)
	}
	return out
}
