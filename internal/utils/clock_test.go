package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonicStamper_StrictlyIncreasing(t *testing.T) {
	s := NewMonotonicStamper()

	prev := s.Next()
	for i := 0; i < 1000; i++ {
		next := s.Next()
		require.Greater(t, next, prev, "stamp %d did not advance", i)
		prev = next
	}
}

func TestMonotonicStamper_FrozenClockStillAdvances(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	s := &MonotonicStamper{now: func() time.Time { return frozen }}

	first := s.Next()
	second := s.Next()
	third := s.Next()

	assert.Equal(t, frozen.UnixMilli(), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestMonotonicStamper_BackwardClockStepIsAbsorbed(t *testing.T) {
	times := []time.Time{
		time.UnixMilli(2000),
		time.UnixMilli(1000), // clock stepped back
		time.UnixMilli(1500),
	}
	idx := 0
	s := &MonotonicStamper{now: func() time.Time {
		ts := times[idx]
		idx++
		return ts
	}}

	first := s.Next()
	second := s.Next()
	third := s.Next()

	assert.Equal(t, int64(2000), first)
	assert.Equal(t, int64(2001), second)
	assert.Equal(t, int64(2002), third)
}

func TestMonotonicStamper_ConcurrentCallersGetDistinctStamps(t *testing.T) {
	s := NewMonotonicStamper()

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	stamps := make(chan int64, goroutines*perGoroutine)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				stamps <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(stamps)

	seen := make(map[int64]bool, goroutines*perGoroutine)
	for ts := range stamps {
		require.False(t, seen[ts], "duplicate stamp %d", ts)
		seen[ts] = true
	}
}
