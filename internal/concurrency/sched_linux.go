//go:build linux
// +build linux

// File: internal/concurrency/sched_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux scheduling class control through sched_setattr(2) / sched_getattr(2).

package concurrency

import (
	"errors"
	"fmt"

	"github.com/momentics/schedlab/api"
	"golang.org/x/sys/unix"
)

func kernelPolicy(p api.Policy) (int, error) {
	switch p {
	case api.PolicyNormal:
		return unix.SCHED_NORMAL, nil
	case api.PolicyFIFO:
		return unix.SCHED_FIFO, nil
	}
	return 0, api.NewError(api.ErrCodeInvalidPolicy, "no kernel policy").
		WithContext("policy", p.String())
}

// applyFIFOPlatform switches the calling thread (pid 0) to SCHED_FIFO.
func applyFIFOPlatform(priority int) error {
	attr := unix.SchedAttr{
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}
	err := unix.SchedSetAttr(0, &attr, 0)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EPERM) {
		return api.NewError(api.ErrCodePrivilegeDenied, "sched_setattr(SCHED_FIFO)").
			WithContext("priority", priority).
			WithCause(err)
	}
	return fmt.Errorf("sched_setattr(SCHED_FIFO, %d): %w", priority, err)
}

func currentPlatform() (api.Policy, int, error) {
	attr, err := unix.SchedGetAttr(0, 0)
	if err != nil {
		return api.PolicyUnknown, 0, fmt.Errorf("sched_getattr: %w", err)
	}
	switch attr.Policy {
	case unix.SCHED_NORMAL:
		return api.PolicyNormal, int(attr.Priority), nil
	case unix.SCHED_FIFO:
		return api.PolicyFIFO, int(attr.Priority), nil
	}
	return api.PolicyUnknown, int(attr.Priority), nil
}

func priorityRangePlatform(p api.Policy) (int, int, error) {
	kp, err := kernelPolicy(p)
	if err != nil {
		return 0, 0, err
	}
	lo, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, uintptr(kp), 0, 0)
	if errno != 0 {
		return 0, 0, fmt.Errorf("sched_get_priority_min: %w", errno)
	}
	hi, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, uintptr(kp), 0, 0)
	if errno != 0 {
		return 0, 0, fmt.Errorf("sched_get_priority_max: %w", errno)
	}
	return int(lo), int(hi), nil
}
