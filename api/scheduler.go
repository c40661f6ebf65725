// Package api
// Author: momentics
//
// Scheduler contract for per-thread OS scheduling class and priority.

package api

// Scheduler configures the host OS scheduler for the calling thread.
// Callers must lock their goroutine to its OS thread before using it.
type Scheduler interface {
	// Apply requests policy/priority for the calling thread.
	// NORMAL leaves the thread untouched. UNKNOWN yields ErrInvalidPolicy.
	// A refused real-time request yields ErrSchedulingPrivilegeDenied.
	Apply(policy Policy, priority int) error

	// Current reports the policy and priority the kernel holds for the calling thread.
	Current() (Policy, int, error)

	// PriorityRange returns the valid static priority range for policy.
	PriorityRange(policy Policy) (min, max int, err error)
}
