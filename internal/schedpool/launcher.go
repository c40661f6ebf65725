// File: internal/schedpool/launcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package schedpool

import (
	"github.com/momentics/schedlab/api"
	"golang.org/x/sync/errgroup"
)

// threadLauncher starts each worker on its own goroutine and joins them through
// an errgroup. Workers lock themselves to an OS thread, so every launch costs
// one kernel thread; launches beyond the ceiling are refused instead of letting
// the runtime die on its thread limit.
//
// Launch is called from the orchestrating goroutine only.
type threadLauncher struct {
	g       errgroup.Group
	ceiling int
	started int
}

// NewThreadLauncher returns the default api.Launcher capped at ceiling threads.
func NewThreadLauncher(ceiling int) api.Launcher {
	return &threadLauncher{ceiling: ceiling}
}

func (l *threadLauncher) Launch(id int, fn func() error) error {
	if l.started >= l.ceiling {
		return api.NewError(api.ErrCodeThreadCreation, "thread ceiling reached").
			WithContext("worker", id).
			WithContext("ceiling", l.ceiling)
	}
	l.started++
	l.g.Go(fn)
	return nil
}

func (l *threadLauncher) Wait() error {
	return l.g.Wait()
}
