package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momentics/schedlab/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const experiment = `
workload: 0.25
bursts: 2
cpu: -1
clock: thread
threads:
  - {policy: NORMAL, priority: 0}
  - {policy: FIFO, priority: 10}
  - {policy: BATCH, priority: 0}
`

func TestLoadFileBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(experiment), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	cfg, err := f.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Len())
	assert.Equal(t, 2, cfg.Bursts)
	assert.False(t, cfg.Pinned())
	assert.Equal(t, api.ClockThreadCPU, cfg.Clock)
	assert.Equal(t, DefaultThreadCeiling, cfg.ThreadCeiling)
	assert.Equal(t, 250*time.Millisecond, cfg.Thread(1).Workload)
	assert.Equal(t, api.PolicyFIFO, cfg.Thread(1).Policy)
	assert.Equal(t, api.PolicyUnknown, cfg.Thread(2).Policy)
}

func TestFileDefaultsWhenFieldsOmitted(t *testing.T) {
	f, err := Parse([]byte("workload: 0\nthreads:\n  - {policy: NORMAL}\n"))
	require.NoError(t, err)
	cfg, err := f.Build()
	require.NoError(t, err)

	assert.Equal(t, DefaultBursts, cfg.Bursts)
	assert.Equal(t, DefaultCPU, cfg.CPU)
	assert.Equal(t, api.ClockProcessCPU, cfg.Clock)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("workload: 1\nthreadz: []\n"))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestFileBadClock(t *testing.T) {
	f, err := Parse([]byte("workload: 1\nclock: tsc\nthreads:\n  - {policy: FIFO, priority: 1}\n"))
	require.NoError(t, err)
	_, err = f.Build()
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileWithNoThreads(t *testing.T) {
	f, err := Parse([]byte("workload: 1\n"))
	require.NoError(t, err)
	_, err = f.Build()
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}
