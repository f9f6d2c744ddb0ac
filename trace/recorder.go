// ABOUTME: Recorder is a router observer that stamps events into Records and fans them out to sinks.
// ABOUTME: MemorySink keeps a bounded tail in memory for the terminal UI and tests.
package trace

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/yorool/router"
)

// Sink receives records in order.
type Sink interface {
	Write(Record) error
	Close() error
}

// Recorder implements router.Observer.
type Recorder struct {
	session  uuid.UUID
	sinks    []Sink
	seq      int
	failures int
	now      func() time.Time
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder(sinks ...Sink) *Recorder {
	return &Recorder{session: uuid.New(), sinks: sinks, now: time.Now}
}

// Session returns the id shared by every record this recorder writes.
func (r *Recorder) Session() uuid.UUID {
	return r.session
}

// AddSink attaches another sink. It sees only records written afterwards.
func (r *Recorder) AddSink(s Sink) {
	r.sinks = append(r.sinks, s)
}

// Failures returns how many sink writes have failed.
func (r *Recorder) Failures() int {
	return r.failures
}

// Observe records e. Sink failures are logged and counted, never returned
// to the router.
func (r *Recorder) Observe(e router.Event) {
	rec := newRecord(r.session, e)
	r.seq++
	rec.Seq = r.seq
	rec.At = r.now().UTC()
	for _, s := range r.sinks {
		if err := s.Write(rec); err != nil {
			r.failures++
			log.Printf("component=trace action=write_failed session=%s seq=%d kind=%s err=%v",
				r.session, rec.Seq, rec.Kind, err)
		}
	}
}

// Close closes every sink.
func (r *Recorder) Close() error {
	var errs []error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemorySink keeps the most recent records. A limit <= 0 keeps everything.
type MemorySink struct {
	mu      sync.Mutex
	limit   int
	records []Record
}

// NewMemorySink creates a memory sink holding at most limit records.
func NewMemorySink(limit int) *MemorySink {
	return &MemorySink{limit: limit}
}

func (m *MemorySink) Write(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	if m.limit > 0 && len(m.records) > m.limit {
		m.records = append(m.records[:0:0], m.records[len(m.records)-m.limit:]...)
	}
	return nil
}

func (m *MemorySink) Close() error { return nil }

// Records returns a copy of the retained records, oldest first.
func (m *MemorySink) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}

// Len returns the number of retained records.
func (m *MemorySink) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
