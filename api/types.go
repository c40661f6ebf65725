// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

import "strings"

// Policy enumerates the OS scheduling classes a worker may request.
// The zero value is PolicyUnknown so an unparsed policy is never mistaken for NORMAL.
type Policy int

const (
	PolicyUnknown Policy = iota
	PolicyNormal
	PolicyFIFO
)

func (p Policy) String() string {
	switch p {
	case PolicyNormal:
		return "NORMAL"
	case PolicyFIFO:
		return "FIFO"
	default:
		return "UNKNOWN"
	}
}

// RealTime reports whether p is a real-time class.
func (p Policy) RealTime() bool {
	return p == PolicyFIFO
}

// ClockSource selects the clock used to time busy-wait bursts.
type ClockSource int

const (
	// ClockProcessCPU measures CPU time consumed by the whole process.
	ClockProcessCPU ClockSource = iota
	// ClockThreadCPU measures CPU time consumed by the calling thread.
	ClockThreadCPU
	// ClockWall measures elapsed wall-clock time.
	ClockWall
)

func (c ClockSource) String() string {
	switch c {
	case ClockProcessCPU:
		return "process"
	case ClockThreadCPU:
		return "thread"
	case ClockWall:
		return "wall"
	default:
		return "invalid"
	}
}

// ParseClockSource maps a clock name to its ClockSource.
func ParseClockSource(name string) (ClockSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "process":
		return ClockProcessCPU, nil
	case "thread":
		return ClockThreadCPU, nil
	case "wall":
		return ClockWall, nil
	}
	return 0, NewError(ErrCodeInvalidArgument, "unknown clock source").WithContext("clock", name)
}
