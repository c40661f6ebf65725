//go:build !linux
// +build !linux

// File: internal/concurrency/sched_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without POSIX real-time scheduling control.

package concurrency

import "github.com/momentics/schedlab/api"

func applyFIFOPlatform(priority int) error {
	return api.NewError(api.ErrCodeNotSupported, "real-time scheduling not supported on this platform")
}

func currentPlatform() (api.Policy, int, error) {
	return api.PolicyUnknown, 0, api.ErrNotSupported
}

// priorityRangePlatform reports the POSIX-mandated minimum FIFO range so that
// priority validation still runs; applying it then yields ErrNotSupported.
func priorityRangePlatform(p api.Policy) (int, int, error) {
	switch p {
	case api.PolicyFIFO:
		return 1, 32, nil
	case api.PolicyNormal:
		return 0, 0, nil
	}
	return 0, 0, api.NewError(api.ErrCodeInvalidPolicy, "no kernel policy").
		WithContext("policy", p.String())
}
