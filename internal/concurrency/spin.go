// File: internal/concurrency/spin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "time"

// Spin busy-waits until c has advanced by at least d and returns the measured advance.
// It never sleeps or yields.
func Spin(c Clock, d time.Duration) time.Duration {
	start := c.Now()
	for {
		if elapsed := c.Now() - start; elapsed >= d {
			return elapsed
		}
	}
}
