// File: internal/trace/recorder.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ordered event log of a pool run.

package trace

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// Kind classifies a trace event.
type Kind int

const (
	KindArrive Kind = iota
	KindRelease
	KindBurst
	KindDone
	KindAbort
)

func (k Kind) String() string {
	switch k {
	case KindArrive:
		return "arrive"
	case KindRelease:
		return "release"
	case KindBurst:
		return "burst"
	case KindDone:
		return "done"
	case KindAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Event is one timestamped step of a worker.
type Event struct {
	Worker int
	Kind   Kind
	Burst  int // 1-based; zero for non-burst events
	At     time.Time
}

// Recorder collects events from concurrent workers in the order they were recorded.
type Recorder struct {
	mu  sync.Mutex
	q   *queue.Queue
	now func() time.Time
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{q: queue.New(), now: time.Now}
}

// Record appends an event stamped with the current time and returns the stamp.
func (r *Recorder) Record(worker int, kind Kind, burst int) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := r.now()
	r.q.Add(Event{Worker: worker, Kind: kind, Burst: burst, At: at})
	return at
}

// Len returns the number of undrained events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Length()
}

// Drain removes and returns all recorded events, oldest first.
func (r *Recorder) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.q.Length())
	for r.q.Length() > 0 {
		out = append(out, r.q.Remove().(Event))
	}
	return out
}

// Filter returns the events of the given kind, preserving order.
func Filter(events []Event, kind Kind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// RendezvousHeld reports whether every release happened no earlier than the
// last arrival, i.e. no worker left the barrier before all had reached it.
func RendezvousHeld(events []Event) bool {
	var lastArrive, firstRelease time.Time
	for _, e := range events {
		switch e.Kind {
		case KindArrive:
			if e.At.After(lastArrive) {
				lastArrive = e.At
			}
		case KindRelease:
			if firstRelease.IsZero() || e.At.Before(firstRelease) {
				firstRelease = e.At
			}
		}
	}
	return firstRelease.IsZero() || !firstRelease.Before(lastArrive)
}
