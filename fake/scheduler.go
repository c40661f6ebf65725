// File: fake/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fake per-thread scheduler with Linux priority semantics.

package fake

import (
	"sync"

	"github.com/momentics/schedlab/api"
)

// Scheduler is a fake api.Scheduler. It never touches the OS; it records
// requests and always answers Current with NORMAL.
type Scheduler struct {
	mu       sync.Mutex
	denyFIFO bool
	calls    []SchedCall
}

// SchedCall is one recorded Apply.
type SchedCall struct {
	Policy   api.Policy
	Priority int
	Err      error
}

// NewScheduler creates a fake that grants every valid request.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// DenyFIFO makes every FIFO request fail with api.ErrSchedulingPrivilegeDenied.
func (s *Scheduler) DenyFIFO() *Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denyFIFO = true
	return s
}

// Apply implements api.Scheduler.Apply with the host's semantics minus the syscall.
func (s *Scheduler) Apply(policy api.Policy, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch policy {
	case api.PolicyNormal:
	case api.PolicyFIFO:
		if priority < 1 || priority > 99 {
			err = api.NewError(api.ErrCodePriorityOutOfRange, "fake: FIFO priority out of range")
		} else if s.denyFIFO {
			err = api.NewError(api.ErrCodePrivilegeDenied, "fake: FIFO denied")
		}
	default:
		err = api.NewError(api.ErrCodeInvalidPolicy, "fake: unrecognized policy")
	}
	s.calls = append(s.calls, SchedCall{Policy: policy, Priority: priority, Err: err})
	return err
}

// Current reports NORMAL: the fake has no per-thread identity to remember grants by.
// Use Calls to inspect what was granted.
func (s *Scheduler) Current() (api.Policy, int, error) {
	return api.PolicyNormal, 0, nil
}

// PriorityRange mirrors Linux.
func (s *Scheduler) PriorityRange(policy api.Policy) (int, int, error) {
	switch policy {
	case api.PolicyFIFO:
		return 1, 99, nil
	case api.PolicyNormal:
		return 0, 0, nil
	}
	return 0, 0, api.ErrInvalidPolicy
}

// Calls returns a copy of the recorded requests.
func (s *Scheduler) Calls() []SchedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SchedCall(nil), s.calls...)
}
