package engine

import "sync/atomic"

// Epoch is the monotonic counter that detects stale asynchronous results.
//
// Every scope switch increments the epoch synchronously, before any
// asynchronous load or save for the new scope is issued. In-flight
// operations carry the epoch value they were started under; on completion
// they compare it against the current value and discard their result on
// mismatch. Cancellation is soft - requests are never aborted at the
// transport level, only their results are dropped.
//
// Thread-safety: safe for concurrent use (atomic operations), though the
// Coordinator's lock means only one goroutine typically calls Next().
type Epoch struct {
	seq atomic.Int64
}

// NewEpoch creates an epoch counter starting at 0.
func NewEpoch() *Epoch {
	return &Epoch{}
}

// Next increments the counter and returns the new value.
// Calls are linearizable - each call returns a unique, increasing value.
func (e *Epoch) Next() int64 {
	return e.seq.Add(1)
}

// Current returns the current value without incrementing.
func (e *Epoch) Current() int64 {
	return e.seq.Load()
}
