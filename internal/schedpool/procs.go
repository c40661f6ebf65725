// File: internal/schedpool/procs.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// GOMAXPROCS reservation for the duration of a run.

package schedpool

import (
	"runtime"
	"sync"
)

// procs raises GOMAXPROCS so that every worker woken by the kernel finds a
// free P without waiting for the runtime's own (NORMAL class) threads, which
// a spinning FIFO worker on the same core starves. The original value is
// restored when the last overlapping run releases its reservation.
var procs struct {
	mu     sync.Mutex
	active int
	saved  int
}

// reserveProcs ensures GOMAXPROCS >= want and returns the matching release.
func reserveProcs(want int) (release func()) {
	procs.mu.Lock()
	defer procs.mu.Unlock()
	cur := runtime.GOMAXPROCS(0)
	if procs.active == 0 {
		procs.saved = cur
	}
	procs.active++
	if cur < want {
		runtime.GOMAXPROCS(want)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			procs.mu.Lock()
			defer procs.mu.Unlock()
			procs.active--
			if procs.active == 0 && runtime.GOMAXPROCS(0) != procs.saved {
				runtime.GOMAXPROCS(procs.saved)
			}
		})
	}
}
