// control/host.go
// Author: momentics <momentics@gmail.com>
//
// Host CPU probes backed by gopsutil.

package control

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

func registerHostProbes(dp *DebugProbes) {
	dp.RegisterProbe(ProbeCPUs, func() any {
		n, err := cpu.Counts(true)
		if err != nil {
			return runtime.NumCPU()
		}
		return n
	})
	dp.RegisterProbe(ProbeCPUModel, func() any {
		infos, err := cpu.Info()
		if err != nil || len(infos) == 0 {
			return runtime.GOARCH
		}
		return infos[0].ModelName
	})
	dp.RegisterProbe(ProbeGOMAXPROCS, func() any {
		return runtime.GOMAXPROCS(0)
	})
}
