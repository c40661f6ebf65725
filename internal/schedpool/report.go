// File: internal/schedpool/report.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package schedpool

import (
	"time"

	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/internal/trace"
)

// WorkerReport is what one worker observed about itself.
type WorkerReport struct {
	ID       int
	Policy   api.Policy
	Priority int

	// ApplyErr is the non-fatal outcome of the scheduling request; nil when it took effect.
	ApplyErr error
	// PinErr is set when the worker could not pin its own thread.
	PinErr error
	// Effective is the policy the kernel reported after the request.
	Effective         api.Policy
	EffectivePriority int

	ArrivedAt  time.Time
	ReleasedAt time.Time
	FinishedAt time.Time

	// Bursts holds the clock advance measured for each completed burst.
	Bursts []time.Duration
	State  State
}

// Completed reports whether the worker ran all its bursts.
func (r WorkerReport) Completed() bool {
	return r.State == StateTerminated
}

// RealTime reports whether the worker actually ran under a real-time class.
func (r WorkerReport) RealTime() bool {
	return r.Effective.RealTime()
}

// Report summarizes one pool run.
type Report struct {
	RunID  string
	CPU    int
	Pinned bool
	PinErr error
	Clock  api.ClockSource
	Bursts int

	Started  time.Time
	Finished time.Time

	Workers []WorkerReport
	Events  []trace.Event
}

// Completed returns the number of workers that ran all their bursts.
func (r *Report) Completed() int {
	n := 0
	for _, w := range r.Workers {
		if w.Completed() {
			n++
		}
	}
	return n
}

// Wall returns the elapsed time from the first launch to the last join.
func (r *Report) Wall() time.Duration {
	return r.Finished.Sub(r.Started)
}

// RendezvousHeld reports whether no worker left the barrier before the last one arrived.
func (r *Report) RendezvousHeld() bool {
	return trace.RendezvousHeld(r.Events)
}

// BurstOrder returns worker ids in the order their bursts started.
func (r *Report) BurstOrder() []int {
	bursts := trace.Filter(r.Events, trace.KindBurst)
	out := make([]int, len(bursts))
	for i, e := range bursts {
		out[i] = e.Worker
	}
	return out
}
