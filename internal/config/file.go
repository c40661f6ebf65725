// File: internal/config/file.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// YAML experiment files.

package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/momentics/schedlab/api"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of an experiment.
//
//	workload: 0.1
//	bursts: 3
//	cpu: 0
//	clock: process
//	threads:
//	  - {policy: NORMAL, priority: 0}
//	  - {policy: FIFO, priority: 10}
type File struct {
	Workload      float64      `yaml:"workload"`
	Bursts        *int         `yaml:"bursts,omitempty"`
	CPU           *int         `yaml:"cpu,omitempty"`
	Clock         string       `yaml:"clock,omitempty"`
	ThreadCeiling *int         `yaml:"thread_ceiling,omitempty"`
	Threads       []FileThread `yaml:"threads"`
}

// FileThread is one entry of File.Threads.
type FileThread struct {
	Policy   string `yaml:"policy"`
	Priority int    `yaml:"priority"`
}

// LoadFile reads and decodes an experiment file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment file: %w", err)
	}
	return Parse(data)
}

// Parse decodes an experiment document.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "parsing experiment file").WithCause(err)
	}
	return &f, nil
}

// Lists returns the parallel policy and priority lists described by f.
func (f *File) Lists() ([]string, []int) {
	policies := make([]string, len(f.Threads))
	priorities := make([]int, len(f.Threads))
	for i, t := range f.Threads {
		policies[i] = t.Policy
		priorities[i] = t.Priority
	}
	return policies, priorities
}

// Options returns the Build options for the fields set in f.
func (f *File) Options() ([]Option, error) {
	var opts []Option
	if f.Bursts != nil {
		opts = append(opts, WithBursts(*f.Bursts))
	}
	if f.CPU != nil {
		opts = append(opts, WithCPU(*f.CPU))
	}
	if f.ThreadCeiling != nil {
		opts = append(opts, WithThreadCeiling(*f.ThreadCeiling))
	}
	if f.Clock != "" {
		src, err := api.ParseClockSource(f.Clock)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithClock(src))
	}
	return opts, nil
}

// Build turns f into a validated PoolConfig.
func (f *File) Build() (*PoolConfig, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	policies, priorities := f.Lists()
	return Build(len(f.Threads), f.Workload, policies, priorities, opts...)
}
