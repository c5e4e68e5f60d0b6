// Package engine owns the selection working set and keeps it in sync with
// the right backing store.
//
// The Coordinator is the single writer: every mutation, scope switch, and
// flush is serialized under its lock, so the selection set itself never
// needs one. Correctness across asynchronous loads and saves comes from the
// epoch counter, not from locking: the epoch is bumped synchronously on
// every scope switch, every in-flight operation carries the epoch it was
// started under, and a completion whose epoch no longer matches is
// discarded silently. Without that guard, a slow load for lead A resolving
// after the user switched to lead B would overwrite B's selections with
// A's.
//
// Persistence routing is scope-determined: anonymous mutations write
// through synchronously to the local adapter; lead-bound mutations are
// debounced and coalesced, and the eventual save carries the set's state at
// fire time, never an intermediate one.
//
// Persistence failures never escape this package. They are logged and the
// session degrades to in-memory-only operation; the next mutation's
// debounce cycle retries naturally.
package engine
