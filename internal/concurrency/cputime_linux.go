//go:build linux
// +build linux

// File: internal/concurrency/cputime_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CPU-time clocks through clock_gettime(2).

package concurrency

import (
	"fmt"
	"time"

	"github.com/momentics/schedlab/api"
	"golang.org/x/sys/unix"
)

type cpuClock struct {
	id int32
}

func newCPUClock(src api.ClockSource) (Clock, error) {
	c := cpuClock{id: unix.CLOCK_PROCESS_CPUTIME_ID}
	if src == api.ClockThreadCPU {
		c.id = unix.CLOCK_THREAD_CPUTIME_ID
	}
	var ts unix.Timespec
	if err := unix.ClockGettime(c.id, &ts); err != nil {
		return nil, fmt.Errorf("clock_gettime(%s): %w", src, err)
	}
	return c, nil
}

// Now reads the CPU-time clock. CLOCK_THREAD_CPUTIME_ID is per calling
// thread, so readings are only comparable on one locked OS thread.
func (c cpuClock) Now() time.Duration {
	var ts unix.Timespec
	// Probed in newCPUClock; clock_gettime on a valid id does not fail afterwards.
	_ = unix.ClockGettime(c.id, &ts)
	return time.Duration(ts.Nano())
}
