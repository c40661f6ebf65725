//go:build !linux
// +build !linux

// File: internal/concurrency/barrier_cond_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync"
	"sync/atomic"
)

// condParker parks on a sync.Cond where no futex is available.
type condParker struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func newParker() parker {
	p := &condParker{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *condParker) wait(word *uint32, old uint32) {
	p.mu.Lock()
	for atomic.LoadUint32(word) == old {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

func (p *condParker) wakeAll(word *uint32) {
	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()
}
