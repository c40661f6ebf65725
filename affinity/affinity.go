// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.

package affinity

import (
	"runtime"
	"sync"

	"github.com/momentics/schedlab/api"
	"github.com/shirou/gopsutil/v3/cpu"
)

var (
	numCPUOnce sync.Once
	numCPU     int
)

// NumCPUs returns the number of logical CPUs reported by the host,
// falling back to the Go runtime's view when the host query fails.
func NumCPUs() int {
	numCPUOnce.Do(func() {
		n, err := cpu.Counts(true)
		if err != nil || n <= 0 {
			n = runtime.NumCPU()
		}
		numCPU = n
	})
	return numCPU
}

// SetAffinity pins the current OS thread to a given logical CPU/core on supported platforms.
// The caller must hold runtime.LockOSThread, otherwise the goroutine may migrate
// to an unpinned thread. On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	if err := checkCPU(cpuID); err != nil {
		return err
	}
	return setAffinityPlatform(cpuID)
}

// SetProcessAffinity pins every thread of the process to cpuID.
// Threads the runtime creates afterwards inherit the mask from their creator.
func SetProcessAffinity(cpuID int) error {
	if err := checkCPU(cpuID); err != nil {
		return err
	}
	return setProcessAffinityPlatform(cpuID)
}

func checkCPU(cpuID int) error {
	if n := NumCPUs(); cpuID < 0 || cpuID >= n {
		return api.NewError(api.ErrCodeInvalidArgument, "affinity: cpu index out of range").
			WithContext("cpu", cpuID).
			WithContext("cpus", n)
	}
	return nil
}
