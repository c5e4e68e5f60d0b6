// Package testutil provides deterministic test doubles for the engine's
// time-dependent pieces.
package testutil

import (
	"sync"
	"time"

	"github.com/fllin1/global-franchises-sub001/internal/engine"
)

// ManualScheduler is an engine.Scheduler whose tasks fire only when the
// test says so. No wall-clock timers, no goroutines: Fire runs callbacks
// synchronously on the caller's goroutine, which makes debounce tests
// deterministic and leak-free.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type ManualScheduler struct {
	mu        sync.Mutex
	tasks     []*ManualTask
	scheduled int
}

// ManualTask is a task scheduled on a ManualScheduler.
type ManualTask struct {
	mu        sync.Mutex
	fn        func()
	delay     time.Duration
	cancelled bool
	fired     bool
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule records a task without starting any timer.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) engine.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &ManualTask{fn: fn, delay: d}
	s.tasks = append(s.tasks, task)
	s.scheduled++
	return task
}

// Cancel marks the task cancelled.
// Returns true if the task had neither fired nor been cancelled yet.
func (t *ManualTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// fire runs the task's callback unless it was cancelled or already fired.
// Returns whether the callback ran.
func (t *ManualTask) fire() bool {
	t.mu.Lock()
	if t.fired || t.cancelled {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()

	// Run outside the task lock: the callback re-enters the coordinator.
	fn()
	return true
}

// Fire runs every live (non-cancelled, non-fired) task, synchronously, in
// schedule order. Returns how many callbacks ran.
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	pending := make([]*ManualTask, len(s.tasks))
	copy(pending, s.tasks)
	s.tasks = s.tasks[:0]
	s.mu.Unlock()

	fired := 0
	for _, task := range pending {
		if task.fire() {
			fired++
		}
	}
	return fired
}

// Live returns how many recorded tasks are still waiting to fire.
func (s *ManualScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := 0
	for _, task := range s.tasks {
		task.mu.Lock()
		if !task.cancelled && !task.fired {
			live++
		}
		task.mu.Unlock()
	}
	return live
}

// Scheduled returns how many tasks were ever scheduled, including
// cancelled ones. Lets tests assert on coalescing behavior (N mutations,
// N schedules, one live task).
func (s *ManualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}
