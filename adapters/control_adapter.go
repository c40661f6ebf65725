// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control interface using control package primitives.

package adapters

import (
	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/control"
)

type ControlAdapter struct {
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

// NewControlAdapter returns a control surface with the platform probes registered.
func NewControlAdapter() *ControlAdapter {
	adapter := &ControlAdapter{
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

func (c *ControlAdapter) Metrics() api.Metrics {
	return c.metrics
}

// Stats merges metrics with probe output; probe keys are prefixed with "debug.".
func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// RealTimeCapable reports whether the host is expected to grant SCHED_FIFO.
func (c *ControlAdapter) RealTimeCapable() bool {
	return c.debug.RealTimeCapable()
}
