// File: internal/cli/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// sched_demo flag set and its resolution into a PoolConfig.

package cli

import (
	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/internal/config"
	"github.com/spf13/pflag"
)

// Options holds the flag values of one sched_demo invocation.
type Options struct {
	Threads       int
	Workload      float64
	Policies      string
	Priorities    string
	CPU           int
	Bursts        int
	Clock         string
	ConfigPath    string
	ThreadCeiling int

	Debug     bool
	LogLevel  string
	LogFormat string
}

// AddFlags registers the experiment flags. The short forms match the classic
// getopt surface: -n threads, -t seconds, -s policies, -p priorities.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.Threads, "threads", "n", 0, "Number of worker threads")
	fs.Float64VarP(&o.Workload, "time", "t", 0, "Busy-wait seconds per burst")
	fs.StringVarP(&o.Policies, "policies", "s", "", "Comma-separated policies (NORMAL or FIFO), one per thread")
	fs.StringVarP(&o.Priorities, "priorities", "p", "", "Comma-separated priorities, one per thread")
	fs.IntVar(&o.CPU, "cpu", config.DefaultCPU, "CPU core to pin the process to (-1 disables pinning)")
	fs.IntVar(&o.Bursts, "bursts", config.DefaultBursts, "Busy-wait bursts per thread")
	fs.StringVar(&o.Clock, "clock", api.ClockProcessCPU.String(), "Burst clock (process, thread, wall)")
	fs.StringVar(&o.ConfigPath, "config", "", "YAML experiment file; explicit flags override its values")
	fs.IntVar(&o.ThreadCeiling, "thread-ceiling", config.DefaultThreadCeiling, "Maximum worker threads to create")

	fs.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&o.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.LogFormat, "log-format", "text", "Log format (text, json)")
}

// Config resolves the flags, and the experiment file when one is given, into a
// validated PoolConfig. fs tells which flags were set explicitly.
func (o *Options) Config(fs *pflag.FlagSet) (*config.PoolConfig, error) {
	n := o.Threads
	workload := o.Workload
	policies := config.SplitList(o.Policies)
	priorities, err := config.ParsePriorities(o.Priorities)
	if err != nil {
		return nil, err
	}

	var opts []config.Option
	explicit := func(name string) bool { return o.ConfigPath == "" || fs.Changed(name) }

	if o.ConfigPath != "" {
		f, err := config.LoadFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		filePolicies, filePriorities := f.Lists()
		if !fs.Changed("threads") {
			n = len(f.Threads)
		}
		if !fs.Changed("time") {
			workload = f.Workload
		}
		if !fs.Changed("policies") {
			policies = filePolicies
		}
		if !fs.Changed("priorities") {
			priorities = filePriorities
		}
		if opts, err = f.Options(); err != nil {
			return nil, err
		}
	}

	if explicit("cpu") {
		opts = append(opts, config.WithCPU(o.CPU))
	}
	if explicit("bursts") {
		opts = append(opts, config.WithBursts(o.Bursts))
	}
	if explicit("thread-ceiling") {
		opts = append(opts, config.WithThreadCeiling(o.ThreadCeiling))
	}
	if explicit("clock") {
		src, err := api.ParseClockSource(o.Clock)
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithClock(src))
	}

	return config.Build(n, workload, policies, priorities, opts...)
}

// level returns the effective log level name.
func (o *Options) level() string {
	if o.Debug {
		return "debug"
	}
	return o.LogLevel
}
