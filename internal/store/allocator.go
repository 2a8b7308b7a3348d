package store

import "sync/atomic"

// IDAllocator hands out session-unique, strictly increasing identifiers for
// one entity kind. Safe for concurrent use.
type IDAllocator struct {
	next atomic.Int64
}

// NewIDAllocator seeds an allocator from the largest identity found among
// loaded entities; the first Next call returns maxID+1. IDs are unique only
// within a run unless re-seeded from file state on the next start.
func NewIDAllocator(maxID int64) *IDAllocator {
	a := &IDAllocator{}
	a.next.Store(maxID + 1)
	return a
}

// Next returns the current value and advances by one.
func (a *IDAllocator) Next() int64 {
	return a.next.Add(1) - 1
}

// Peek returns the value the next Next call would produce.
func (a *IDAllocator) Peek() int64 {
	return a.next.Load()
}
