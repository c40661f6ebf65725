//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread and process CPU affinity.

package affinity

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

func cpuMask(cpuID int) *unix.CPUSet {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return &set
}

// setAffinityPlatform sets the calling thread's affinity to a given CPU for Linux.
func setAffinityPlatform(cpuID int) error {
	if err := unix.SchedSetaffinity(0, cpuMask(cpuID)); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity failed: %w", err)
	}
	return nil
}

// setProcessAffinityPlatform walks /proc/self/task and pins each thread.
// Threads that exit during the walk are skipped.
func setProcessAffinityPlatform(cpuID int) error {
	entries, err := os.ReadDir("/proc/self/task")
	if err != nil {
		// No procfs: the calling thread is the best we can do.
		return setAffinityPlatform(cpuID)
	}
	set := cpuMask(cpuID)
	var errs []error
	for _, e := range entries {
		tid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if err := unix.SchedSetaffinity(tid, set); err != nil && !errors.Is(err, unix.ESRCH) {
			errs = append(errs, fmt.Errorf("affinity: tid %d: %w", tid, err))
		}
	}
	return errors.Join(errs...)
}
