// File: internal/schedpool/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker task: apply policy, rendezvous, burn CPU in bursts.

package schedpool

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/internal/concurrency"
	"github.com/momentics/schedlab/internal/config"
	"github.com/momentics/schedlab/internal/trace"
)

// State is a worker's lifecycle stage.
type State int32

const (
	StateCreated State = iota
	StatePolicyApplied
	StateWaiting
	StateRunning
	StateTerminated
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePolicyApplied:
		return "policy_applied"
	case StateWaiting:
		return "waiting_at_barrier"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// workerEnv is what the orchestrator shares with every worker of a run.
type workerEnv struct {
	bursts  int
	cpu     int
	clock   api.ClockSource
	barrier *concurrency.Barrier
	trace   *trace.Recorder
	out     io.Writer
	sched   api.Scheduler
	aff     api.Affinity
	log     *slog.Logger
}

// Worker runs one ThreadConfig. Its report is written only by the worker's
// own goroutine and read by the orchestrator after the join.
type Worker struct {
	cfg    config.ThreadConfig
	env    workerEnv
	log    *slog.Logger
	state  atomic.Int32
	report WorkerReport
}

func newWorker(cfg config.ThreadConfig, env workerEnv) *Worker {
	w := &Worker{
		cfg: cfg,
		env: env,
		log: env.log.With("worker", cfg.ID, "policy", cfg.Policy.String()),
		report: WorkerReport{
			ID:       cfg.ID,
			Policy:   cfg.Policy,
			Priority: cfg.Priority,
		},
	}
	w.setState(StateCreated)
	return w
}

// State returns the worker's current stage.
func (w *Worker) State() State {
	return State(w.state.Load())
}

func (w *Worker) setState(s State) {
	w.state.Store(int32(s))
	w.report.State = s
}

// Run is the worker body. It returns an error only when the barrier was broken,
// in which case no burst has run.
func (w *Worker) Run() error {
	// Never unlocked: a thread whose scheduling class was changed exits with
	// this goroutine instead of going back to the runtime's pool.
	runtime.LockOSThread()

	if w.env.cpu != config.NoPin {
		if err := w.env.aff.PinThread(w.env.cpu); err != nil {
			w.report.PinErr = err
			w.log.Warn("thread pin failed", "cpu", w.env.cpu, "err", err)
		}
	}

	w.report.ApplyErr = w.applyPolicy()
	policy, prio, err := w.env.sched.Current()
	if err != nil {
		w.log.Debug("reading effective policy failed", "err", err)
	}
	w.report.Effective, w.report.EffectivePriority = policy, prio
	w.setState(StatePolicyApplied)

	clock, err := concurrency.NewClock(w.env.clock)
	if err != nil {
		w.log.Warn("cpu clock unavailable, timing bursts on wall clock", "clock", w.env.clock.String(), "err", err)
		clock = concurrency.NewWallClock()
	}

	w.setState(StateWaiting)
	w.report.ArrivedAt = w.env.trace.Record(w.cfg.ID, trace.KindArrive, 0)
	if _, err := w.env.barrier.Wait(); err != nil {
		w.report.FinishedAt = w.env.trace.Record(w.cfg.ID, trace.KindAbort, 0)
		w.setState(StateAborted)
		w.log.Debug("barrier broken before release", "err", err)
		return err
	}
	w.report.ReleasedAt = w.env.trace.Record(w.cfg.ID, trace.KindRelease, 0)
	w.setState(StateRunning)

	w.report.Bursts = make([]time.Duration, 0, w.env.bursts)
	for k := 1; k <= w.env.bursts; k++ {
		fmt.Fprintf(w.env.out, "Thread %d is running\n", w.cfg.ID)
		w.env.trace.Record(w.cfg.ID, trace.KindBurst, k)
		w.log.Debug("burst started", "burst", humanize.Ordinal(k))
		w.report.Bursts = append(w.report.Bursts, concurrency.Spin(clock, w.cfg.Workload))
	}

	w.report.FinishedAt = w.env.trace.Record(w.cfg.ID, trace.KindDone, 0)
	w.setState(StateTerminated)
	return nil
}

// applyPolicy requests the configured class. Failures are logged and
// returned for the report; they never stop the worker.
func (w *Worker) applyPolicy() error {
	err := w.env.sched.Apply(w.cfg.Policy, w.cfg.Priority)
	switch {
	case err == nil:
		w.log.Debug("scheduling policy applied", "priority", w.cfg.Priority)
	case errors.Is(err, api.ErrInvalidPolicy):
		w.log.Warn("invalid scheduling policy, running under default scheduling", "err", err)
	case errors.Is(err, api.ErrSchedulingPrivilegeDenied), errors.Is(err, api.ErrNotSupported):
		w.log.Warn("real-time scheduling denied, running under current policy",
			"priority", w.cfg.Priority, "err", err)
	default:
		w.log.Warn("scheduling request rejected, running under current policy",
			"priority", w.cfg.Priority, "err", err)
	}
	return err
}
