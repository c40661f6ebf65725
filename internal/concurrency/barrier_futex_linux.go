//go:build linux
// +build linux

// File: internal/concurrency/barrier_futex_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// futex(2) parking for the rendezvous barrier. A parked worker sleeps in the
// kernel, so on release the kernel scheduler picks the waking order by policy
// and priority.

package concurrency

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	futexWaitPrivate = 0 | 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 1 | 128 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
	futexWakeAll     = 1<<31 - 1
)

type futexParker struct{}

func newParker() parker {
	return futexParker{}
}

// wait sleeps while *word == old. EAGAIN (word already changed) and EINTR
// both return to the caller, which re-checks the word.
func (futexParker) wait(word *uint32, old uint32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(word)),
		uintptr(futexWaitPrivate),
		uintptr(old),
		0, 0, 0)
}

func (futexParker) wakeAll(word *uint32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(word)),
		uintptr(futexWakePrivate),
		uintptr(futexWakeAll),
		0, 0, 0)
}
