// File: internal/cli/root.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// sched_demo command tree.

// Package cli implements the sched_demo command line.
package cli

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/momentics/schedlab/adapters"
	"github.com/momentics/schedlab/internal/config"
	"github.com/momentics/schedlab/internal/logging"
	"github.com/momentics/schedlab/internal/schedpool"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewRootCmd creates the sched_demo command.
func NewRootCmd() *cobra.Command {
	o := &Options{}

	root := &cobra.Command{
		Use:   "sched_demo",
		Short: "Run threads under NORMAL and FIFO scheduling and watch the order they run in",
		Long: `sched_demo starts one OS thread per entry of the policy list, applies the
requested scheduling class and priority to each, releases them together from a
barrier and lets every thread busy-wait through a fixed number of bursts.

Each burst prints "Thread <id> is running" to stdout. Real-time classes need
CAP_SYS_NICE or a non-zero RLIMIT_RTPRIO; without them FIFO threads run under
the default policy and a warning is logged.`,
		Example: `  sched_demo -n 3 -t 0.5 -s NORMAL,FIFO,FIFO -p -1,10,30
  sched_demo --config experiment.yaml --cpu -1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLoggerWithWriter(logging.ParseLevel(o.level()), o.LogFormat, cmd.ErrOrStderr())

			cfg, err := o.Config(cmd.Flags())
			if err != nil {
				return err
			}

			ctl := adapters.NewControlAdapter()
			if n := fifoThreads(cfg); n > 0 && !ctl.RealTimeCapable() {
				logger.Warn("FIFO requested but this host grants no real-time priority; those threads will run as NORMAL",
					"fifo_threads", n)
			}
			pool := schedpool.New(
				schedpool.WithLogger(logger),
				schedpool.WithOutput(cmd.OutOrStdout()),
				schedpool.WithMetrics(ctl.Metrics()),
			)
			rep, err := pool.Run(cfg)
			if err != nil {
				return err
			}

			logSummary(logger, rep)
			if logger.Enabled(cmd.Context(), slog.LevelDebug) {
				logger.Debug("run stats", "stats", ctl.Stats())
			}
			return nil
		},
	}
	o.AddFlags(root.Flags())
	root.AddCommand(newHostCmd())

	return root
}

func fifoThreads(cfg *config.PoolConfig) int {
	n := 0
	for i := 0; i < cfg.Len(); i++ {
		if cfg.Thread(i).Policy.RealTime() {
			n++
		}
	}
	return n
}

func logSummary(logger *slog.Logger, rep *schedpool.Report) {
	realTime := 0
	for _, w := range rep.Workers {
		if w.RealTime() {
			realTime++
		}
		if w.ApplyErr != nil {
			logger.Info("worker ran under fallback scheduling",
				"worker", w.ID,
				"requested", w.Policy.String(),
				"effective", w.Effective.String(),
				"err", w.ApplyErr)
		}
	}
	logger.Info("run complete",
		"run_id", rep.RunID,
		"workers", rep.Completed(),
		"realtime", realTime,
		"bursts", humanize.Comma(int64(rep.Completed()*rep.Bursts)),
		"pinned", rep.Pinned,
		"clock", rep.Clock.String(),
		"wall", rep.Wall().String())
}

// newHostCmd prints what the host offers for the experiment.
func newHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Show CPU count, affinity and real-time capability of this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(adapters.NewControlAdapter().Stats())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
