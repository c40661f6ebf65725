package schedpool

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/fake"
	"github.com/momentics/schedlab/internal/concurrency"
	"github.com/momentics/schedlab/internal/config"
	"github.com/momentics/schedlab/internal/logging"
	"github.com/momentics/schedlab/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, barrier *concurrency.Barrier, out *bytes.Buffer) *Worker {
	t.Helper()
	return newWorker(
		config.ThreadConfig{ID: 7, Policy: api.PolicyFIFO, Priority: 10, Workload: time.Millisecond},
		workerEnv{
			bursts:  2,
			cpu:     config.NoPin,
			clock:   api.ClockWall,
			barrier: barrier,
			trace:   trace.NewRecorder(),
			out:     out,
			sched:   fake.NewScheduler(),
			aff:     fake.NewAffinity(1),
			log:     logging.Discard(),
		},
	)
}

func TestWorkerLifecycle(t *testing.T) {
	b, err := concurrency.NewBarrier(1)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	w := newTestWorker(t, b, out)
	assert.Equal(t, StateCreated, w.State())

	done := make(chan error)
	go func() { done <- w.Run() }()
	require.NoError(t, <-done)

	assert.Equal(t, StateTerminated, w.State())
	assert.Equal(t, "Thread 7 is running\nThread 7 is running\n", out.String())
	assert.Len(t, w.report.Bursts, 2)
	assert.False(t, w.report.ReleasedAt.Before(w.report.ArrivedAt))
	assert.False(t, w.report.FinishedAt.Before(w.report.ReleasedAt))

	events := w.env.trace.Drain()
	kinds := make([]trace.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []trace.Kind{trace.KindArrive, trace.KindRelease, trace.KindBurst, trace.KindBurst, trace.KindDone}, kinds)
}

func TestWorkerAbortsOnBrokenBarrier(t *testing.T) {
	b, err := concurrency.NewBarrier(2)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	w := newTestWorker(t, b, out)

	done := make(chan error)
	go func() { done <- w.Run() }()
	require.Eventually(t, func() bool { return w.State() == StateWaiting && b.Waiting() == 1 },
		time.Second, time.Millisecond)

	cause := errors.New("launch refused")
	b.Break(cause)
	err = <-done

	assert.ErrorIs(t, err, api.ErrBarrierBroken)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, StateAborted, w.State())
	assert.Empty(t, out.String())
	assert.Empty(t, w.report.Bursts)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "waiting_at_barrier", StateWaiting.String())
	assert.Equal(t, "terminated", StateTerminated.String())
	assert.Equal(t, "unknown", State(99).String())
}
