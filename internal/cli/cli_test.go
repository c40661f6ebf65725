package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeExperiment(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunPrintsEveryBurst(t *testing.T) {
	out, logs, err := execute(t, "-n", "2", "-t", "0.001", "-s", "NORMAL,NORMAL", "-p", "-1,-1",
		"--cpu", "-1", "--clock", "wall")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "Thread 0 is running\n"))
	assert.Equal(t, 3, strings.Count(out, "Thread 1 is running\n"))
	assert.Equal(t, 6, strings.Count(out, "\n"))
	assert.Contains(t, logs, "run complete")
}

func TestRunRejectsMismatchedLists(t *testing.T) {
	out, _, err := execute(t, "-n", "3", "-t", "0.001", "-s", "NORMAL,FIFO", "-p", "-1,10,20", "--cpu", "-1")

	assert.ErrorIs(t, err, api.ErrConfigMismatch)
	assert.Empty(t, out)
}

func TestRunRejectsMalformedPriority(t *testing.T) {
	out, _, err := execute(t, "-n", "1", "-t", "0.001", "-s", "FIFO", "-p", "ten", "--cpu", "-1")

	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Empty(t, out)
}

func TestRunRejectsUnknownClock(t *testing.T) {
	_, _, err := execute(t, "-n", "1", "-t", "0", "-s", "NORMAL", "-p", "0", "--clock", "tsc")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestRunToleratesUnknownPolicy(t *testing.T) {
	out, logs, err := execute(t, "-n", "1", "-t", "0.001", "-s", "RR", "-p", "5",
		"--cpu", "-1", "--clock", "wall")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "Thread 0 is running\n"))
	assert.Contains(t, logs, "invalid scheduling policy")
}

func TestOptionsSkipEmptyTokens(t *testing.T) {
	o := &Options{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"-n", "2", "-t", "0.5", "-s", ",NORMAL,,FIFO,", "-p", "0,,10"}))

	cfg, err := o.Config(fs)
	require.NoError(t, err)
	assert.Equal(t, api.PolicyNormal, cfg.Thread(0).Policy)
	assert.Equal(t, api.PolicyFIFO, cfg.Thread(1).Policy)
	assert.Equal(t, 10, cfg.Thread(1).Priority)
	assert.Equal(t, config.DefaultCPU, cfg.CPU)
	assert.Equal(t, api.ClockProcessCPU, cfg.Clock)
}

func TestOptionsFlagsOverrideExperimentFile(t *testing.T) {
	path := writeExperiment(t, `
workload: 0.25
bursts: 5
cpu: 2
clock: thread
threads:
  - {policy: NORMAL, priority: 0}
  - {policy: FIFO, priority: 10}
`)
	o := &Options{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--cpu", "-1", "-p", "0,20"}))

	cfg, err := o.Config(fs)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Len())
	assert.Equal(t, config.NoPin, cfg.CPU)
	assert.Equal(t, 5, cfg.Bursts)
	assert.Equal(t, api.ClockThreadCPU, cfg.Clock)
	assert.Equal(t, 20, cfg.Thread(1).Priority)
	assert.Equal(t, cfg.Thread(0).Workload, cfg.Thread(1).Workload)
}

func TestOptionsRejectUnknownFileKeys(t *testing.T) {
	path := writeExperiment(t, "workload: 0.1\npriority_boost: true\nthreads: []\n")
	o := &Options{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path}))

	_, err := o.Config(fs)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestHostCommand(t *testing.T) {
	out, _, err := execute(t, "host")
	require.NoError(t, err)
	assert.Contains(t, out, "debug.platform.cpus")
	assert.Contains(t, out, "debug.platform.gomaxprocs")
}

func TestFIFOThreadsCountsRealTimeRequests(t *testing.T) {
	cfg, err := config.Build(3, 0, []string{"NORMAL", "FIFO", "FIFO"}, []int{0, 10, 20})
	require.NoError(t, err)
	assert.Equal(t, 2, fifoThreads(cfg))
}
