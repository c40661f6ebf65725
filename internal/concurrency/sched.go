// File: internal/concurrency/sched.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-thread scheduling class control.

package concurrency

import (
	"github.com/momentics/schedlab/api"
)

// ThreadScheduler implements api.Scheduler for the calling OS thread.
// Every method acts on the thread the goroutine is running on, so callers
// must hold runtime.LockOSThread.
type ThreadScheduler struct{}

// NewThreadScheduler returns the platform scheduler.
func NewThreadScheduler() *ThreadScheduler {
	return &ThreadScheduler{}
}

// Apply requests policy/priority for the calling thread.
func (ThreadScheduler) Apply(policy api.Policy, priority int) error {
	switch policy {
	case api.PolicyNormal:
		// Host default; nothing to request.
		return nil
	case api.PolicyFIFO:
		lo, hi, err := priorityRangePlatform(policy)
		if err != nil {
			return err
		}
		if priority < lo || priority > hi {
			return api.NewError(api.ErrCodePriorityOutOfRange, "FIFO priority out of range").
				WithContext("priority", priority).
				WithContext("min", lo).
				WithContext("max", hi)
		}
		return applyFIFOPlatform(priority)
	default:
		return api.NewError(api.ErrCodeInvalidPolicy, "unrecognized scheduling policy").
			WithContext("policy", policy.String())
	}
}

// Current reports the calling thread's effective policy and priority.
func (ThreadScheduler) Current() (api.Policy, int, error) {
	return currentPlatform()
}

// PriorityRange returns the static priority range the host accepts for policy.
func (ThreadScheduler) PriorityRange(policy api.Policy) (int, int, error) {
	return priorityRangePlatform(policy)
}
