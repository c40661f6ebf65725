// File: fake/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fake CPU affinity recording pin requests.

package fake

import (
	"sync"

	"github.com/momentics/schedlab/api"
)

// Affinity is a fake api.Affinity recording pin requests.
type Affinity struct {
	mu          sync.Mutex
	cpus        int
	err         error
	processPins []int
	threadPins  []int
}

// NewAffinity creates a fake host with cpus logical CPUs.
func NewAffinity(cpus int) *Affinity {
	return &Affinity{cpus: cpus}
}

// FailWith makes every pin request return err.
func (a *Affinity) FailWith(err error) *Affinity {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
	return a
}

func (a *Affinity) PinProcess(cpuID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processPins = append(a.processPins, cpuID)
	return a.check(cpuID)
}

func (a *Affinity) PinThread(cpuID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.threadPins = append(a.threadPins, cpuID)
	return a.check(cpuID)
}

func (a *Affinity) NumCPUs() int {
	return a.cpus
}

func (a *Affinity) check(cpuID int) error {
	if a.err != nil {
		return a.err
	}
	if cpuID < 0 || cpuID >= a.cpus {
		return api.ErrInvalidArgument
	}
	return nil
}

// ProcessPins returns the CPUs requested through PinProcess.
func (a *Affinity) ProcessPins() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.processPins...)
}

// ThreadPins returns the CPUs requested through PinThread.
func (a *Affinity) ThreadPins() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.threadPins...)
}
