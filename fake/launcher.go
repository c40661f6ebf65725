// File: fake/launcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fake thread launcher with injectable launch failure.

package fake

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/schedlab/api"
)

// Launcher is a fake api.Launcher that can refuse the launch of a chosen worker.
type Launcher struct {
	failAt   int
	wg       sync.WaitGroup
	launched atomic.Int32
	mu       sync.Mutex
	firstErr error
}

// NewLauncher creates a launcher refusing worker failAt; a negative failAt never fails.
func NewLauncher(failAt int) *Launcher {
	return &Launcher{failAt: failAt}
}

func (l *Launcher) Launch(id int, fn func() error) error {
	if id == l.failAt {
		return api.NewError(api.ErrCodeThreadCreation, "fake: launch refused").WithContext("worker", id)
	}
	l.launched.Add(1)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := fn(); err != nil {
			l.mu.Lock()
			if l.firstErr == nil {
				l.firstErr = err
			}
			l.mu.Unlock()
		}
	}()
	return nil
}

func (l *Launcher) Wait() error {
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.firstErr
}

// Launched returns how many workers were started.
func (l *Launcher) Launched() int {
	return int(l.launched.Load())
}
