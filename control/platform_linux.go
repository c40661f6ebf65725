//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific debug probe integrations.

package control

import (
	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets host probes plus Linux real-time scheduling facts.
func RegisterPlatformProbes(dp *DebugProbes) {
	registerHostProbes(dp)
	dp.RegisterProbe(ProbeRealTime, func() any {
		var lim unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_RTPRIO, &lim); err != nil {
			return false
		}
		return unix.Geteuid() == 0 || lim.Cur > 0
	})
	dp.RegisterProbe(ProbeAffinityWidth, func() any {
		var set unix.CPUSet
		if err := unix.SchedGetaffinity(0, &set); err != nil {
			return -1
		}
		return set.Count()
	})
}
