package trace

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderPreservesOrder(t *testing.T) {
	r := NewRecorder()
	r.Record(0, KindArrive, 0)
	r.Record(1, KindArrive, 0)
	r.Record(1, KindRelease, 0)
	r.Record(1, KindBurst, 1)
	require.Equal(t, 4, r.Len())

	events := r.Drain()
	require.Len(t, events, 4)
	assert.Equal(t, KindArrive, events[0].Kind)
	assert.Equal(t, 0, events[0].Worker)
	assert.Equal(t, KindBurst, events[3].Kind)
	assert.Equal(t, 1, events[3].Burst)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Drain())
}

func TestRecorderConcurrentWriters(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for b := 1; b <= 100; b++ {
				r.Record(w, KindBurst, b)
			}
		}(w)
	}
	wg.Wait()

	events := r.Drain()
	assert.Len(t, events, 800)
	last := map[int]int{}
	for i, e := range events {
		assert.Greater(t, e.Burst, last[e.Worker], "worker %d out of order", e.Worker)
		last[e.Worker] = e.Burst
		if i > 0 {
			assert.False(t, e.At.Before(events[i-1].At))
		}
	}
}

func TestRendezvousHeld(t *testing.T) {
	base := time.Unix(1000, 0)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	ok := []Event{
		{Worker: 0, Kind: KindArrive, At: at(0)},
		{Worker: 1, Kind: KindArrive, At: at(5)},
		{Worker: 1, Kind: KindRelease, At: at(5)},
		{Worker: 0, Kind: KindRelease, At: at(6)},
	}
	assert.True(t, RendezvousHeld(ok))

	early := []Event{
		{Worker: 0, Kind: KindArrive, At: at(0)},
		{Worker: 0, Kind: KindRelease, At: at(1)},
		{Worker: 1, Kind: KindArrive, At: at(5)},
	}
	assert.False(t, RendezvousHeld(early))
	assert.True(t, RendezvousHeld(nil))
}

func TestFilterAndKindString(t *testing.T) {
	events := []Event{{Kind: KindBurst}, {Kind: KindDone}, {Kind: KindBurst}}
	assert.Len(t, Filter(events, KindBurst), 2)
	assert.Equal(t, "abort", KindAbort.String())
	assert.Equal(t, "unknown", Kind(77).String())
}
