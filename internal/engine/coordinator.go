package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fllin1/global-franchises-sub001/internal/persist"
	"github.com/fllin1/global-franchises-sub001/internal/selection"
)

// DefaultDebounceWindow is how long a lead-bound mutation waits for
// follow-on mutations before its save fires. Rapid add/remove bursts
// coalesce into a single write.
const DefaultDebounceWindow = 1000 * time.Millisecond

// pendingWrite is the coordinator's "write scheduled but not yet fired"
// state. A later mutation in the same scope supersedes it (cancel and
// reschedule) rather than queueing a second write; the eventual flush
// always reads the set's state at fire time, not at schedule time.
type pendingWrite struct {
	scope selection.Scope
	epoch int64
	task  Task
}

// Coordinator owns the selection working set and persists it to the
// adapter the active scope determines.
//
// All mutations and scope switches are serialized under an internal lock;
// callers on any goroutine may use the Coordinator concurrently. The
// correctness-critical piece is the epoch guard (see package doc and
// Epoch): scope switches invalidate in-flight loads and saves by
// construction, so a slow response for an old scope can never leak into
// the current one.
type Coordinator struct {
	mu      sync.Mutex
	set     *selection.Set
	scope   selection.Scope
	epoch   *Epoch
	local   persist.Adapter
	remote  persist.Adapter
	sched   Scheduler
	window  time.Duration
	pending *pendingWrite
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup
	saves  sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounceWindow overrides the debounce window for lead-bound saves.
func WithDebounceWindow(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithMaxSelection overrides the selection set's capacity bound.
func WithMaxSelection(n int) Option {
	return func(c *Coordinator) {
		c.set = selection.NewSet(n)
	}
}

// WithScheduler overrides the debounce scheduler.
// Tests use testutil.ManualScheduler to fire flushes deterministically.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) {
		c.sched = s
	}
}

// New creates a Coordinator in the anonymous scope with an empty set.
//
// local persists the anonymous scope, remote persists lead-bound scopes.
// The Coordinator does not restore any persisted state on construction;
// call SetScope to activate (and load) a scope.
func New(local, remote persist.Adapter, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		set:    selection.NewSet(selection.DefaultMaxSize),
		epoch:  NewEpoch(),
		local:  local,
		remote: remote,
		sched:  TimerScheduler{},
		window: DefaultDebounceWindow,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	// The coordinator is itself a subscriber of the working set: every
	// effective mutation routes through onChangeLocked while the lock is
	// held by mutate.
	c.set.Subscribe(func(selection.Change) { c.onChangeLocked() })
	return c
}

// Subscribe registers fn for change notifications from the working set.
// Must be called before the Coordinator is shared across goroutines.
// fn runs synchronously under the Coordinator's lock and must not call
// back into the Coordinator.
func (c *Coordinator) Subscribe(fn func(selection.Change)) {
	c.set.Subscribe(fn)
}

// Add adds id to the working set and schedules persistence.
// Silently ignored when id is present or the set is at capacity.
func (c *Coordinator) Add(id string) {
	c.mutate(func() { c.set.Add(id) })
}

// Remove removes id from the working set and schedules persistence.
func (c *Coordinator) Remove(id string) {
	c.mutate(func() { c.set.Remove(id) })
}

// Toggle removes id if present, otherwise adds it.
func (c *Coordinator) Toggle(id string) {
	c.mutate(func() { c.set.Toggle(id) })
}

// Clear empties the working set and schedules persistence.
func (c *Coordinator) Clear() {
	c.mutate(func() { c.set.Clear() })
}

// mutate runs op under the lock. Persistence is driven by the change
// notification the set emits for effective mutations (see onChangeLocked);
// rejected mutations (duplicate add, add at capacity) emit nothing and
// schedule nothing.
func (c *Coordinator) mutate(op func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	op()
}

// onChangeLocked routes an effective mutation to the active scope's
// persistence path. Called synchronously from the set's notification while
// c.mu is held.
func (c *Coordinator) onChangeLocked() {
	if c.scope.Bound() {
		c.scheduleFlushLocked()
		return
	}
	c.writeThroughLocked()
}

// scheduleFlushLocked starts or extends the debounce window for the
// current lead-bound scope. Caller holds c.mu.
func (c *Coordinator) scheduleFlushLocked() {
	if c.pending != nil {
		// Coalesce: supersede the scheduled write rather than stacking a
		// second one.
		c.pending.task.Cancel()
	}

	epoch := c.epoch.Current()
	c.pending = &pendingWrite{
		scope: c.scope,
		epoch: epoch,
		task:  c.sched.Schedule(c.window, func() { c.flushScheduled(epoch) }),
	}
}

// writeThroughLocked saves the anonymous selection immediately.
// Local writes are cheap and must not be lost on abrupt navigation away,
// so there is no debounce on this path. Caller holds c.mu.
func (c *Coordinator) writeThroughLocked() {
	if err := c.local.Save(c.ctx, c.scope, c.set.IDs()); err != nil {
		slog.Warn("local selection save failed, continuing in memory",
			"scope", c.scope,
			"error", err,
		)
	}
}

// flushScheduled is the debounce timer callback.
func (c *Coordinator) flushScheduled(scheduledEpoch int64) {
	c.mu.Lock()
	if c.closed || c.pending == nil || c.pending.epoch != scheduledEpoch {
		// The scope changed (or the write was superseded) after this task
		// became unstoppable. Expected race, not a fault.
		c.mu.Unlock()
		slog.Debug("stale flush discarded", "epoch", scheduledEpoch)
		return
	}
	scope := c.pending.scope
	ids := c.set.IDs()
	c.pending = nil
	// Registered under the lock: a save that passed the closed check is
	// always joined by Close before it returns.
	c.saves.Add(1)
	c.mu.Unlock()

	defer c.saves.Done()
	c.save(scope, ids, scheduledEpoch)
}

// save writes ids for scope through the remote adapter, fire-and-forget.
// Failures are logged, never retried here; the next mutation's debounce
// cycle will attempt again naturally.
func (c *Coordinator) save(scope selection.Scope, ids []string, epoch int64) {
	err := c.remote.Save(c.ctx, scope, ids)
	if c.epoch.Current() != epoch {
		// Scope switched while the save was in flight. The write targeted
		// the scope it was scheduled under, so it is harmless; just don't
		// treat its outcome as current.
		slog.Debug("stale save response discarded", "scope", scope, "epoch", epoch)
		return
	}
	if err != nil {
		slog.Warn("selection save failed, continuing in memory",
			"scope", scope,
			"error", err,
		)
	}
}

// SetScope activates a scope: the epoch advances (invalidating every
// in-flight load and save from the old scope), any pending write is
// cancelled, the working set is replaced, and the new scope's persisted
// selection is loaded.
//
// Anonymous scopes load synchronously from the local adapter. Lead-bound
// scopes load asynchronously; the result populates the set only if the
// epoch still matches when it arrives, and populating never schedules a
// write-back.
func (c *Coordinator) SetScope(scope selection.Scope) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	epoch := c.epoch.Next()
	if c.pending != nil {
		c.pending.task.Cancel()
		c.pending = nil
	}
	c.scope = scope
	c.set.Load(nil)

	if !scope.Bound() {
		ids, err := c.local.Load(c.ctx, scope)
		if err != nil {
			slog.Warn("local selection load failed, starting empty",
				"scope", scope,
				"error", err,
			)
		} else {
			c.set.Load(ids)
		}
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	slog.Debug("loading selection", "scope", scope, "epoch", epoch)
	c.loads.Add(1)
	go c.loadScope(scope, epoch)
}

// loadScope resolves a lead-bound scope's persisted selection and applies
// it if the scope is still current.
func (c *Coordinator) loadScope(scope selection.Scope, epoch int64) {
	defer c.loads.Done()

	ids, err := c.remote.Load(c.ctx, scope)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.epoch.Current() != epoch {
		slog.Debug("stale load discarded", "scope", scope, "epoch", epoch)
		return
	}
	if err != nil {
		slog.Warn("selection load failed, starting empty",
			"scope", scope,
			"error", err,
		)
		return
	}
	// Load, not Add: populating from storage must not notify subscribers
	// or schedule a write-back.
	c.set.Load(ids)
}

// Flush forces a pending debounced write to fire now.
// No-op when nothing is pending. Used before process exit so a short-lived
// CLI invocation doesn't lose its last mutations to the debounce window.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending.task.Cancel()
	scope := c.pending.scope
	epoch := c.pending.epoch
	ids := c.set.IDs()
	c.pending = nil
	c.mu.Unlock()

	c.save(scope, ids, epoch)
}

// Close flushes any pending write, waits for saves already in flight, then
// cancels outstanding loads and waits for them too. The Coordinator is
// unusable afterwards; mutations become no-ops.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	var flush *pendingWrite
	var ids []string
	if c.pending != nil {
		c.pending.task.Cancel()
		flush = c.pending
		ids = c.set.IDs()
		c.pending = nil
	}
	c.closed = true
	c.mu.Unlock()

	if flush != nil {
		c.save(flush.scope, ids, flush.epoch)
	}
	// A debounce save that fired before closed was set may still be inside
	// the adapter; it must complete before the context is cancelled or the
	// write would be lost on process exit.
	c.saves.Wait()
	c.cancel()
	c.loads.Wait()
}

// Quiesce blocks until in-flight scope loads and debounced saves have
// completed. Intended for tests and for callers that need settled-state
// reads.
func (c *Coordinator) Quiesce() {
	c.loads.Wait()
	c.saves.Wait()
}

// IDs returns the working set's ids in insertion order.
func (c *Coordinator) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.IDs()
}

// Contains reports whether id is in the working set.
func (c *Coordinator) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Contains(id)
}

// Size returns the working set's size.
func (c *Coordinator) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Size()
}

// Scope returns the active scope.
func (c *Coordinator) Scope() selection.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

// PendingFlush reports whether a debounced write is scheduled.
// Useful for monitoring and testing.
func (c *Coordinator) PendingFlush() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// CurrentEpoch returns the epoch counter's current value.
// Used for testing and diagnostics.
func (c *Coordinator) CurrentEpoch() int64 {
	return c.epoch.Current()
}
