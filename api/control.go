// File: api/control.go
// Package api defines Control interfaces.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Metrics records run counters and gauges.
type Metrics interface {
	Set(key string, value any)
	Add(key string, delta int64) int64
	GetSnapshot() map[string]any
}

// Control bundles run metrics with debug probes.
type Control interface {
	Metrics() Metrics
	Stats() map[string]any
	RegisterDebugProbe(name string, fn func() any)
}
