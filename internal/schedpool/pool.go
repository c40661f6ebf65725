// File: internal/schedpool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool orchestrator: owns the configuration and the barrier of a run,
// launches one locked OS thread per worker and joins them all.

package schedpool

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momentics/schedlab/adapters"
	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/control"
	"github.com/momentics/schedlab/internal/concurrency"
	"github.com/momentics/schedlab/internal/config"
	"github.com/momentics/schedlab/internal/logging"
	"github.com/momentics/schedlab/internal/trace"
)

// LauncherFactory creates the launcher for one run.
type LauncherFactory func(ceiling int) api.Launcher

// Pool runs scheduling experiments. A Pool holds no per-run state, so several
// pools, or several runs of one pool, may coexist.
type Pool struct {
	log      *slog.Logger
	out      io.Writer
	aff      api.Affinity
	sched    api.Scheduler
	launcher LauncherFactory
	metrics  api.Metrics
	runID    func() string
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) { p.log = l }
}

// WithOutput sets the writer receiving the workers' progress lines.
func WithOutput(w io.Writer) Option {
	return func(p *Pool) { p.out = w }
}

// WithAffinity replaces the host affinity implementation.
func WithAffinity(a api.Affinity) Option {
	return func(p *Pool) { p.aff = a }
}

// WithScheduler replaces the host scheduling implementation.
func WithScheduler(s api.Scheduler) Option {
	return func(p *Pool) { p.sched = s }
}

// WithLauncher replaces the thread launcher.
func WithLauncher(f LauncherFactory) Option {
	return func(p *Pool) { p.launcher = f }
}

// WithMetrics sets the registry updated after every run.
func WithMetrics(m api.Metrics) Option {
	return func(p *Pool) { p.metrics = m }
}

// WithRunID fixes the run identifier instead of generating one per run.
func WithRunID(id string) Option {
	return func(p *Pool) { p.runID = func() string { return id } }
}

// New creates a Pool wired to the host OS unless options say otherwise.
func New(opts ...Option) *Pool {
	p := &Pool{
		log:      logging.Discard(),
		out:      os.Stdout,
		aff:      adapters.NewAffinityAdapter(),
		sched:    adapters.NewSchedAdapter(),
		launcher: NewThreadLauncher,
		metrics:  control.NewMetricsRegistry(),
		runID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one experiment and blocks until every worker has finished.
//
// Configuration errors are returned before any side effect. Scheduling
// failures of individual workers are recorded in the report and do not fail
// the run. A launch failure aborts the run: already launched workers are
// released from the barrier without running any burst, and an error wrapping
// api.ErrThreadCreationFailed is returned.
//
// While the run lasts GOMAXPROCS is at least N+1, so a worker the kernel
// wakes from the barrier can resume without help from another Go thread.
//
// Run has no timeout; a worker that never reaches the barrier stalls it forever.
func (p *Pool) Run(cfg *config.PoolConfig) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.Len()
	runID := p.runID()
	log := p.log.With("run_id", runID)

	rep := &Report{
		RunID:   runID,
		CPU:     cfg.CPU,
		Clock:   cfg.Clock,
		Bursts:  cfg.Bursts,
		Workers: make([]WorkerReport, n),
	}

	if cfg.Pinned() {
		if err := p.aff.PinProcess(cfg.CPU); err != nil {
			rep.PinErr = err
			log.Warn("process pin failed; workers may spread across CPUs", "cpu", cfg.CPU, "err", err)
		} else {
			rep.Pinned = true
			log.Debug("process pinned", "cpu", cfg.CPU)
		}
	}

	barrier, err := concurrency.NewBarrier(n)
	if err != nil {
		return nil, err
	}
	defer reserveProcs(n + 1)()
	env := workerEnv{
		bursts:  cfg.Bursts,
		cpu:     cfg.CPU,
		clock:   cfg.Clock,
		barrier: barrier,
		trace:   trace.NewRecorder(),
		out:     &lockedWriter{w: p.out},
		sched:   p.sched,
		aff:     p.aff,
		log:     log,
	}

	launcher := p.launcher(cfg.ThreadCeiling)
	workers := make([]*Worker, n)
	rep.Started = time.Now()
	for i := range workers {
		workers[i] = newWorker(cfg.Thread(i), env)
		if err := launcher.Launch(i, workers[i].Run); err != nil {
			barrier.Break(err)
			_ = launcher.Wait()
			p.metrics.Add(control.MetricWorkersLaunched, int64(i))
			p.metrics.Add(control.MetricWorkersAborted, int64(i))
			log.Error("worker launch failed; run aborted", "worker", i, "launched", i, "err", err)
			return nil, api.NewError(api.ErrCodeThreadCreation, "launching worker").
				WithContext("worker", i).
				WithCause(err)
		}
	}
	log.Debug("workers launched", "count", n)

	joinErr := launcher.Wait()
	rep.Finished = time.Now()
	for i, w := range workers {
		rep.Workers[i] = w.report
	}
	rep.Events = env.trace.Drain()
	p.record(rep)

	if joinErr != nil {
		return rep, joinErr
	}
	return rep, nil
}

// record folds a finished run into the metrics registry.
func (p *Pool) record(rep *Report) {
	p.metrics.Add(control.MetricWorkersLaunched, int64(len(rep.Workers)))
	for _, w := range rep.Workers {
		switch w.State {
		case StateTerminated:
			p.metrics.Add(control.MetricWorkersCompleted, 1)
		case StateAborted:
			p.metrics.Add(control.MetricWorkersAborted, 1)
		}
		switch api.CodeOf(w.ApplyErr) {
		case api.ErrCodeOK:
		case api.ErrCodePrivilegeDenied, api.ErrCodeNotSupported:
			p.metrics.Add(control.MetricSchedDenied, 1)
		case api.ErrCodeInvalidPolicy:
			p.metrics.Add(control.MetricSchedInvalid, 1)
		default:
			p.metrics.Add(control.MetricSchedRejected, 1)
		}
	}
	p.metrics.Set(control.MetricRunWallNanos, rep.Wall().Nanoseconds())
	p.metrics.Set(control.MetricRunPinned, rep.Pinned)
}

// lockedWriter serializes progress lines from concurrent workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(b []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(b)
}
