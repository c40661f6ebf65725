// File: control/debug.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Host probe registry. Implements api.Debug and answers the one question an
// experiment asks before it starts: will FIFO requests be honoured here.

package control

import (
	"sort"
	"sync"
)

// Platform probe names.
const (
	ProbeCPUs          = "platform.cpus"
	ProbeCPUModel      = "platform.cpu_model"
	ProbeGOMAXPROCS    = "platform.gomaxprocs"
	ProbeAffinityWidth = "platform.affinity"
	ProbeRealTime      = "platform.rt_capable"
)

// DebugProbes holds named probe functions. Probes are evaluated on demand.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates an empty registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]func() any)}
}

// RegisterProbe installs fn under name, replacing any previous probe.
// A nil fn removes the probe.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	if fn == nil {
		delete(dp.probes, name)
		return
	}
	dp.probes[name] = fn
}

// Value evaluates a single probe.
func (dp *DebugProbes) Value(name string) (any, bool) {
	dp.mu.RLock()
	fn, ok := dp.probes[name]
	dp.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names returns the registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for name := range dp.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DumpState evaluates every probe. Probes run outside the registry lock.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	fns := make(map[string]func() any, len(dp.probes))
	for k, fn := range dp.probes {
		fns[k] = fn
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(fns))
	for k, fn := range fns {
		out[k] = fn()
	}
	return out
}

// RealTimeCapable reports the ProbeRealTime answer; false when the probe is
// missing or does not yield a bool.
func (dp *DebugProbes) RealTimeCapable() bool {
	v, ok := dp.Value(ProbeRealTime)
	if !ok {
		return false
	}
	capable, _ := v.(bool)
	return capable
}
