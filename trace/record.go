// ABOUTME: Record is the durable form of one router event, stamped with session, run and wall-clock time.
// ABOUTME: Records are what the JSONL log, the SQLite index and the YAML export all carry.
package trace

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/yorool/router"
)

// Record is one observed router event.
type Record struct {
	SessionID uuid.UUID `json:"session_id"`
	RunID     ulid.ULID `json:"run_id"`
	Label     string    `json:"label,omitempty"`
	Seq       int       `json:"seq"` // position in the session
	Kind      string    `json:"kind"`
	Tick      int       `json:"tick"`
	Query     int       `json:"query"` // query slot within the run
	Address   string    `json:"address,omitempty"`
	Request   string    `json:"request,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	PoolSize  int       `json:"pool_size"`
	At        time.Time `json:"at"`
}

// newRecord converts a router event. Seq and At are filled in by the caller.
func newRecord(session uuid.UUID, e router.Event) Record {
	return Record{
		SessionID: session,
		RunID:     e.RunID,
		Label:     e.Label,
		Kind:      string(e.Kind),
		Tick:      e.Tick,
		Query:     e.Seq,
		Address:   e.Address,
		Request:   e.Request,
		Detail:    e.Detail,
		PoolSize:  e.PoolSize,
	}
}

// Line renders the record for a log panel.
func (r Record) Line() string {
	s := r.At.Format("15:04:05.000") + " " + r.Kind
	if r.Label != "" {
		s += " [" + r.Label + "]"
	}
	if r.Address != "" {
		s += " " + r.Address
		if r.Request != "" {
			s += "/" + r.Request
		}
	}
	if r.Detail != "" {
		s += " " + r.Detail
	}
	return s
}
