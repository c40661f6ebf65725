// Package api
// Author: momentics
//
// Launcher contract for starting and joining worker threads.

package api

// Launcher starts worker routines and joins them.
type Launcher interface {
	// Launch starts fn for worker id. An error means nothing was started for id.
	Launch(id int, fn func() error) error

	// Wait blocks until every launched routine has returned and
	// reports the first non-nil error among them.
	Wait() error
}
