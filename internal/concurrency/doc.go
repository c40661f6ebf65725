// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread-level concurrency primitives for schedlab: a reusable rendezvous
// barrier, per-thread OS scheduling class control, CPU-time clocks and the
// busy-wait loop the workers burn CPU with.
//
// Scheduling and clock implementations are build-tag partitioned; Linux gets
// the real syscalls through golang.org/x/sys/unix, other platforms get stubs
// returning api.ErrNotSupported.
package concurrency
