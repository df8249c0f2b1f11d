// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for UUID generation, monotonic write stamping,
// HTTP response writing, and HTTP client initialization.
package utils

import (
	"sync"
	"time"
)

// MonotonicStamper issues epoch-millisecond write stamps that are strictly
// increasing per process even when the wall clock stalls or steps backwards.
//
// Last-write-wins reconciliation orders records by these stamps, so two
// consecutive writes must never share one. When the wall clock has not
// advanced past the previous stamp, the stamper adds a millisecond instead
// of waiting.
type MonotonicStamper struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMonotonicStamper constructs a MonotonicStamper driven by time.Now.
func NewMonotonicStamper() *MonotonicStamper {
	return &MonotonicStamper{now: time.Now}
}

// Next returns the next write stamp.
func (s *MonotonicStamper) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UnixMilli()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts

	return ts
}
