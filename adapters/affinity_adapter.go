// File: adapters/affinity_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter implementing the api.Affinity interface, delegating to
//   the affinity package for CPU pinning.
//
// Package adapters provides glue code between the core API contracts
// and the platform implementations.

package adapters

import (
	"github.com/momentics/schedlab/affinity"
	"github.com/momentics/schedlab/api"
)

// AffinityAdapter implements api.Affinity using the affinity package.
type AffinityAdapter struct{}

// NewAffinityAdapter creates the host affinity adapter.
func NewAffinityAdapter() api.Affinity {
	return AffinityAdapter{}
}

// PinProcess restricts every thread of the process to cpuID.
func (AffinityAdapter) PinProcess(cpuID int) error {
	return affinity.SetProcessAffinity(cpuID)
}

// PinThread restricts the calling OS thread to cpuID.
func (AffinityAdapter) PinThread(cpuID int) error {
	return affinity.SetAffinity(cpuID)
}

// NumCPUs returns the number of logical CPUs on the host.
func (AffinityAdapter) NumCPUs() int {
	return affinity.NumCPUs()
}
