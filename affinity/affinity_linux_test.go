//go:build linux

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSetAffinityPinsCallingThread(t *testing.T) {
	var before unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &before))
	target := -1
	for i := 0; i < NumCPUs(); i++ {
		if before.IsSet(i) {
			target = i
			break
		}
	}
	if target < 0 {
		t.Skip("no usable CPU in current mask")
	}

	type result struct {
		err  error
		mask unix.CPUSet
	}
	done := make(chan result)
	go func() {
		// The thread is never unlocked; it exits with the goroutine
		// instead of returning to the runtime with a narrowed mask.
		runtime.LockOSThread()
		var r result
		r.err = SetAffinity(target)
		if r.err == nil {
			r.err = unix.SchedGetaffinity(0, &r.mask)
		}
		done <- r
	}()

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, 1, r.mask.Count())
	assert.True(t, r.mask.IsSet(target))
}
