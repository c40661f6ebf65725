// Package api
// Author: momentics@gmail.com
//
// CPU affinity and thread pinning contracts.

package api

// Affinity controls execution on particular CPUs.
type Affinity interface {
	// PinProcess restricts every thread of the process to cpuID.
	// Threads created afterwards inherit the mask.
	PinProcess(cpuID int) error
	// PinThread restricts the calling OS thread to cpuID.
	// The caller must hold runtime.LockOSThread.
	PinThread(cpuID int) error
	// NumCPUs returns the number of logical CPUs usable as pin targets.
	NumCPUs() int
}
