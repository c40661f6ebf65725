//go:build !linux
// +build !linux

// File: internal/concurrency/cputime_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "github.com/momentics/schedlab/api"

func newCPUClock(src api.ClockSource) (Clock, error) {
	return nil, api.NewError(api.ErrCodeNotSupported, "cpu-time clock not supported on this platform").
		WithContext("clock", src.String())
}
