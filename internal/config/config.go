// File: internal/config/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-thread configuration of a pool run and its validation.

// Package config builds the immutable per-thread configuration of a pool run.
package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/momentics/schedlab/api"
)

// Defaults applied by Build when no option overrides them.
const (
	DefaultBursts        = 3
	DefaultCPU           = 0
	DefaultThreadCeiling = 8192
	NoPin                = -1
)

// ThreadConfig holds one worker's parameters. It is a value type; every worker
// gets its own copy.
type ThreadConfig struct {
	ID       int
	Policy   api.Policy
	Priority int
	Workload time.Duration
}

// PoolConfig describes a whole run. It is not modified once built.
type PoolConfig struct {
	Threads       []ThreadConfig
	Bursts        int
	CPU           int
	Clock         api.ClockSource
	ThreadCeiling int
}

// Option adjusts a PoolConfig during Build.
type Option func(*PoolConfig)

// WithBursts sets the number of busy-wait bursts per worker.
func WithBursts(n int) Option {
	return func(c *PoolConfig) { c.Bursts = n }
}

// WithCPU sets the CPU the run is pinned to; NoPin disables pinning.
func WithCPU(cpu int) Option {
	return func(c *PoolConfig) { c.CPU = cpu }
}

// WithClock selects the burst clock.
func WithClock(src api.ClockSource) Option {
	return func(c *PoolConfig) { c.Clock = src }
}

// WithThreadCeiling caps the number of worker threads a run may create.
func WithThreadCeiling(n int) Option {
	return func(c *PoolConfig) { c.ThreadCeiling = n }
}

// Build constructs exactly n ThreadConfigs; entry i gets policies[i] and priorities[i].
// Lists whose length differs from n yield api.ErrConfigMismatch. Unrecognized
// policy names become api.PolicyUnknown; deciding what that means is left to
// the scheduler.
func Build(n int, workloadSeconds float64, policies []string, priorities []int, opts ...Option) (*PoolConfig, error) {
	if n < 1 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "thread count must be positive").
			WithContext("threads", n)
	}
	if len(policies) != n || len(priorities) != n {
		return nil, api.NewError(api.ErrCodeConfigMismatch, "policy/priority lists must match thread count").
			WithContext("threads", n).
			WithContext("policies", len(policies)).
			WithContext("priorities", len(priorities))
	}
	workload, err := Seconds(workloadSeconds)
	if err != nil {
		return nil, err
	}

	cfg := &PoolConfig{
		Threads:       make([]ThreadConfig, n),
		Bursts:        DefaultBursts,
		CPU:           DefaultCPU,
		Clock:         api.ClockProcessCPU,
		ThreadCeiling: DefaultThreadCeiling,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	for i := range cfg.Threads {
		cfg.Threads[i] = ThreadConfig{
			ID:       i,
			Policy:   ParsePolicy(policies[i]),
			Priority: priorities[i],
			Workload: workload,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate re-checks the invariants Build establishes.
func (c *PoolConfig) Validate() error {
	if c == nil || len(c.Threads) == 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "empty pool configuration")
	}
	for i, t := range c.Threads {
		if t.ID != i {
			return api.NewError(api.ErrCodeConfigMismatch, "thread ids must be index-aligned").
				WithContext("index", i).
				WithContext("id", t.ID)
		}
		if t.Workload < 0 {
			return api.NewError(api.ErrCodeInvalidArgument, "negative workload").
				WithContext("thread", i)
		}
		if t.Workload != c.Threads[0].Workload {
			return api.NewError(api.ErrCodeConfigMismatch, "workload must be uniform across threads").
				WithContext("thread", i)
		}
	}
	if c.Bursts < 1 {
		return api.NewError(api.ErrCodeInvalidArgument, "bursts must be positive").
			WithContext("bursts", c.Bursts)
	}
	if c.CPU < NoPin {
		return api.NewError(api.ErrCodeInvalidArgument, "cpu must be a core index or -1").
			WithContext("cpu", c.CPU)
	}
	if c.ThreadCeiling < 1 {
		return api.NewError(api.ErrCodeInvalidArgument, "thread ceiling must be positive").
			WithContext("ceiling", c.ThreadCeiling)
	}
	if c.Clock.String() == "invalid" {
		return api.NewError(api.ErrCodeInvalidArgument, "unknown clock source").
			WithContext("clock", int(c.Clock))
	}
	return nil
}

// Len returns the number of workers.
func (c *PoolConfig) Len() int {
	return len(c.Threads)
}

// Thread returns a copy of worker i's configuration.
func (c *PoolConfig) Thread(i int) ThreadConfig {
	return c.Threads[i]
}

// Pinned reports whether the run pins itself to a CPU.
func (c *PoolConfig) Pinned() bool {
	return c.CPU != NoPin
}

// ParsePolicy maps NORMAL and FIFO to their policies; anything else is PolicyUnknown.
func ParsePolicy(name string) api.Policy {
	switch strings.TrimSpace(name) {
	case "NORMAL":
		return api.PolicyNormal
	case "FIFO":
		return api.PolicyFIFO
	}
	return api.PolicyUnknown
}

// Seconds converts a non-negative, finite number of seconds to a Duration.
func Seconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 || s > math.MaxInt64/float64(time.Second) {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "workload must be a non-negative number of seconds").
			WithContext("workload", s)
	}
	return time.Duration(s * float64(time.Second)), nil
}

// SplitList splits a comma-separated list, dropping empty tokens.
func SplitList(csv string) []string {
	var out []string
	for _, tok := range strings.Split(csv, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParsePriorities parses a comma-separated list of integers, dropping empty tokens.
func ParsePriorities(csv string) ([]int, error) {
	toks := SplitList(csv)
	out := make([]int, 0, len(toks))
	for _, tok := range toks {
		p, err := strconv.Atoi(tok)
		if err != nil {
			return nil, api.NewError(api.ErrCodeInvalidArgument, "malformed priority").
				WithContext("token", tok).
				WithCause(err)
		}
		out = append(out, p)
	}
	return out, nil
}
