// Package mtime provides modification stamps used to decide whether derived
// state is stale with respect to the objects it was derived from.
package mtime

import "sync/atomic"

// Time is a point on the process-wide modification counter. Zero means
// "never modified". A larger Time is always newer.
type Time uint64

var counter atomic.Uint64

// Now returns a fresh Time, strictly greater than every Time returned before.
func Now() Time {
	return Time(counter.Add(1))
}

// Stamp records when its owner was last modified.
type Stamp struct {
	t Time
}

// Modified moves the stamp to a fresh Time.
func (s *Stamp) Modified() {
	s.t = Now()
}

// Time returns the stamp's current value.
func (s Stamp) Time() Time {
	return s.t
}

// Newer reports whether the stamp was modified after t.
func (s Stamp) Newer(t Time) bool {
	return s.t > t
}
