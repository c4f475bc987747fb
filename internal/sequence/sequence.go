// Package sequence generates strictly monotonic IDs for callers that need
// a cheap, lock-free counter shared across goroutines — here, audit log
// sequence numbers per shard.
package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic sequence IDs.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer starting from start; pass 0 for a fresh shard.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
