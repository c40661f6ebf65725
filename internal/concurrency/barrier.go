// File: internal/concurrency/barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Rendezvous barrier. Waiters park on a generation word so that, on Linux,
// the kernel rather than the Go scheduler decides who runs first on release.

package concurrency

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/schedlab/api"
)

// Barrier blocks a fixed number of participants until all of them have arrived,
// then releases them together. It resets itself after every release and can be
// reused for further rounds.
//
// There is no timeout: a participant that never arrives stalls the others forever.
// More than Capacity concurrent callers in one round is a caller bug.
type Barrier struct {
	mu       sync.Mutex
	capacity int
	arrived  int

	// gen is the generation word waiters park on. It only ever increases.
	gen    uint32
	broken atomic.Pointer[breakState]
	park   parker
}

// breakState records the generation a Break interrupted.
type breakState struct {
	gen uint32
	err error
}

// parker blocks callers until a word changes. wait may return spuriously;
// wakeAll releases every caller blocked on word.
type parker interface {
	wait(word *uint32, old uint32)
	wakeAll(word *uint32)
}

// NewBarrier creates a barrier for capacity participants.
func NewBarrier(capacity int) (*Barrier, error) {
	if capacity < 1 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "barrier capacity must be positive").
			WithContext("capacity", capacity)
	}
	return &Barrier{capacity: capacity, park: newParker()}, nil
}

// Wait registers the caller and blocks until the round is complete.
// Exactly one caller per round gets serial == true: the one whose arrival
// completed it. After Break every pending and future Wait returns an error
// wrapping api.ErrBarrierBroken.
//
// Once parked, a waiter touches no Go lock until it returns.
func (b *Barrier) Wait() (serial bool, err error) {
	b.mu.Lock()
	if s := b.broken.Load(); s != nil {
		b.mu.Unlock()
		return false, s.err
	}
	gen := atomic.LoadUint32(&b.gen)
	b.arrived++
	if b.arrived == b.capacity {
		b.arrived = 0
		atomic.AddUint32(&b.gen, 1)
		b.mu.Unlock()
		b.park.wakeAll(&b.gen)
		return true, nil
	}
	b.mu.Unlock()

	for atomic.LoadUint32(&b.gen) == gen {
		b.park.wait(&b.gen, gen)
	}
	if s := b.broken.Load(); s != nil && s.gen == gen {
		return false, s.err
	}
	return false, nil
}

// Break releases all current and future waiters with an error carrying cause.
// Only the barrier's owner calls it, when the full set of participants can never arrive.
func (b *Barrier) Break(cause error) {
	b.mu.Lock()
	if b.broken.Load() != nil {
		b.mu.Unlock()
		return
	}
	b.broken.Store(&breakState{
		gen: atomic.LoadUint32(&b.gen),
		err: fmt.Errorf("%w: %w", api.ErrBarrierBroken, cause),
	})
	b.arrived = 0
	atomic.AddUint32(&b.gen, 1)
	b.mu.Unlock()
	b.park.wakeAll(&b.gen)
}

// Capacity returns the number of participants per round.
func (b *Barrier) Capacity() int {
	return b.capacity
}

// Waiting returns how many participants are parked in the current round.
func (b *Barrier) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.arrived
}
