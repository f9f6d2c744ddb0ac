// ABOUTME: Arena holds top-level windows under stable integer indices with per-index notification handlers.
// ABOUTME: Removed windows leave tombstones so an index never names a different window later.
package widget

import (
	"fmt"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
)

// Index addresses a window in an Arena. Indices are never reused.
type Index int

// HandlerID identifies one registered notification handler.
type HandlerID uint64

// NotifyFunc is called for every message a window pushed during a tick.
// Returning true consumes the message; otherwise it is forwarded.
type NotifyFunc func(idx Index, m message.Msg) bool

type notifyHandler struct {
	id HandlerID
	fn NotifyFunc
}

// Arena owns windows and the handlers keyed by their indices.
type Arena struct {
	windows  []Widget
	handlers map[Index][]notifyHandler
	nextID   HandlerID
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{handlers: make(map[Index][]notifyHandler)}
}

// Add stores w and returns its index.
func (a *Arena) Add(w Widget) Index {
	if w == nil {
		panic("widget: arena cannot hold a nil window")
	}
	a.windows = append(a.windows, w)
	return Index(len(a.windows) - 1)
}

// Remove tombstones the window at idx and drops its handlers. It reports
// whether a live window was removed.
func (a *Arena) Remove(idx Index) bool {
	if _, ok := a.Get(idx); !ok {
		return false
	}
	a.windows[idx] = nil
	delete(a.handlers, idx)
	return true
}

// Get returns the live window at idx.
func (a *Arena) Get(idx Index) (Widget, bool) {
	if idx < 0 || int(idx) >= len(a.windows) || a.windows[idx] == nil {
		return nil, false
	}
	return a.windows[idx], true
}

// Indices returns the live indices in ascending order.
func (a *Arena) Indices() []Index {
	var out []Index
	for i, w := range a.windows {
		if w != nil {
			out = append(out, Index(i))
		}
	}
	return out
}

// Len returns the number of live windows.
func (a *Arena) Len() int {
	return len(a.Indices())
}

// OnNotify registers fn for messages pushed by the window at idx.
func (a *Arena) OnNotify(idx Index, fn NotifyFunc) (HandlerID, error) {
	if _, ok := a.Get(idx); !ok {
		return 0, fmt.Errorf("widget: no window at index %d", idx)
	}
	a.nextID++
	id := a.nextID
	a.handlers[idx] = append(a.handlers[idx], notifyHandler{id: id, fn: fn})
	return id, nil
}

// RemoveHandler unregisters a handler. It reports whether one was removed.
func (a *Arena) RemoveHandler(id HandlerID) bool {
	for idx, hs := range a.handlers {
		for i, h := range hs {
			if h.id != id {
				continue
			}
			hs = append(hs[:i:i], hs[i+1:]...)
			if len(hs) == 0 {
				delete(a.handlers, idx)
			} else {
				a.handlers[idx] = hs
			}
			return true
		}
	}
	return false
}

// Handle ticks live windows in index order. Each window's output passes
// through that window's handlers before reaching out.
func (a *Arena) Handle(in, out *pool.Pool[message.Msg]) {
	for i, w := range a.windows {
		if w == nil {
			continue
		}
		idx := Index(i)
		hs := a.handlers[idx]
		if len(hs) == 0 {
			w.Handle(in, out)
			continue
		}
		produced := pool.New[message.Msg]()
		w.Handle(in, produced)
		for _, m := range produced.Drain() {
			if !a.notify(idx, hs, m) {
				out.Push(m)
			}
		}
	}
}

func (a *Arena) notify(idx Index, hs []notifyHandler, m message.Msg) bool {
	for _, h := range hs {
		if h.fn(idx, m) {
			return true
		}
	}
	return false
}
