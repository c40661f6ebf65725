package concurrency

import (
	"runtime"
	"testing"

	"github.com/momentics/schedlab/api"
	"github.com/stretchr/testify/assert"
)

// onFreshThread runs fn on a dedicated OS thread that is discarded afterwards,
// so a policy change never leaks into the test binary's thread pool.
func onFreshThread(fn func()) {
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer close(done)
		fn()
	}()
	<-done
}

func TestApplyNormalIsNoop(t *testing.T) {
	onFreshThread(func() {
		assert.NoError(t, NewThreadScheduler().Apply(api.PolicyNormal, 0))
	})
}

func TestApplyUnknownPolicy(t *testing.T) {
	onFreshThread(func() {
		err := NewThreadScheduler().Apply(api.PolicyUnknown, 10)
		assert.ErrorIs(t, err, api.ErrInvalidPolicy)
	})
}

func TestApplyFIFOPriorityOutOfRange(t *testing.T) {
	s := NewThreadScheduler()
	_, hi, err := s.PriorityRange(api.PolicyFIFO)
	if err != nil {
		t.Skipf("priority range unavailable: %v", err)
	}
	onFreshThread(func() {
		assert.ErrorIs(t, s.Apply(api.PolicyFIFO, hi+1), api.ErrPriorityOutOfRange)
		assert.ErrorIs(t, s.Apply(api.PolicyFIFO, -5), api.ErrPriorityOutOfRange)
	})
}

func TestApplyFIFOSucceedsOrIsDenied(t *testing.T) {
	s := NewThreadScheduler()
	onFreshThread(func() {
		err := s.Apply(api.PolicyFIFO, 10)
		if err != nil {
			// Unprivileged runs are expected to be refused, never to panic.
			assert.True(t,
				api.CodeOf(err) == api.ErrCodePrivilegeDenied || api.CodeOf(err) == api.ErrCodeNotSupported,
				"unexpected error: %v", err)
			return
		}
		policy, prio, err := s.Current()
		assert.NoError(t, err)
		assert.Equal(t, api.PolicyFIFO, policy)
		assert.Equal(t, 10, prio)
	})
}
