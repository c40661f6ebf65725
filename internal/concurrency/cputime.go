// File: internal/concurrency/cputime.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Clocks used to time busy-wait bursts.

package concurrency

import (
	"time"

	"github.com/momentics/schedlab/api"
)

// Clock reports a monotonically increasing reading. Only differences between
// readings are meaningful.
type Clock interface {
	Now() time.Duration
}

// NewClock returns the clock for src. CPU-time clocks are probed once; an
// unavailable clock is reported as an error so the caller can fall back to
// wall time knowingly.
func NewClock(src api.ClockSource) (Clock, error) {
	switch src {
	case api.ClockWall:
		return NewWallClock(), nil
	case api.ClockProcessCPU, api.ClockThreadCPU:
		return newCPUClock(src)
	}
	return nil, api.NewError(api.ErrCodeInvalidArgument, "unknown clock source").
		WithContext("clock", int(src))
}

type wallClock struct {
	origin time.Time
}

// NewWallClock returns a clock reading monotonic wall time.
func NewWallClock() Clock {
	return wallClock{origin: time.Now()}
}

func (c wallClock) Now() time.Duration {
	return time.Since(c.origin)
}
