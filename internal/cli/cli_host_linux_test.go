//go:build linux

package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/internal/concurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const childArgsEnv = "SCHEDLAB_CLI_CHILD_ARGS"

// TestMain lets host tests run sched_demo as a separate process, since the
// default flags pin the whole process to CPU 0.
func TestMain(m *testing.M) {
	if args, ok := os.LookupEnv(childArgsEnv); ok {
		root := NewRootCmd()
		root.SetArgs(strings.Fields(args))
		if err := root.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func runChild(t *testing.T, args string) (stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), childArgsEnv+"="+args)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	require.NoError(t, cmd.Run(), "stderr: %s", errOut.String())
	return out.String(), errOut.String()
}

func requireHostCPU0(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("busy-waits on a single core")
	}
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil || !set.IsSet(0) {
		t.Skip("CPU 0 is outside the affinity mask")
	}
}

var wallField = regexp.MustCompile(`wall=(\S+)`)

func TestDefaultFlagsEndToEnd(t *testing.T) {
	requireHostCPU0(t)

	out, logs := runChild(t, "-n 2 -t 0.1 -s NORMAL,FIFO -p 0,10")

	assert.Equal(t, 3, strings.Count(out, "Thread 0 is running\n"))
	assert.Equal(t, 3, strings.Count(out, "Thread 1 is running\n"))
	assert.Contains(t, logs, "pinned=true")
	assert.Contains(t, logs, "clock=process")

	m := wallField.FindStringSubmatch(logs)
	require.Len(t, m, 2, "no wall time in %q", logs)
	wall, err := time.ParseDuration(m[1])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, wall, 300*time.Millisecond)
}

func TestDefaultFlagsHonourFIFOPriority(t *testing.T) {
	requireHostCPU0(t)
	granted := make(chan error)
	go func() {
		runtime.LockOSThread()
		granted <- concurrency.NewThreadScheduler().Apply(api.PolicyFIFO, 1)
	}()
	if err := <-granted; err != nil {
		t.Skipf("SCHED_FIFO not permitted: %v", err)
	}

	out, _ := runChild(t, "-n 3 -t 0.05 -s NORMAL,FIFO,FIFO -p -1,10,30")

	var order []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		order = append(order, strings.Fields(line)[1])
	}
	assert.Equal(t, []string{"2", "2", "2", "1", "1", "1", "0", "0", "0"}, order)
}
