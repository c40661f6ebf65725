//go:build !linux
// +build !linux

// control/platform_other.go
// Author: momentics <momentics@gmail.com>

package control

// RegisterPlatformProbes sets host probes; no real-time facts are available here.
func RegisterPlatformProbes(dp *DebugProbes) {
	registerHostProbes(dp)
	dp.RegisterProbe(ProbeRealTime, func() any { return false })
}
