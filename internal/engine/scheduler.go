package engine

import "time"

// Task is a scheduled callback that can be cancelled before it fires.
type Task interface {
	// Cancel stops the task if it has not fired yet.
	// Returns true if the task was stopped before firing.
	Cancel() bool
}

// Scheduler schedules the debounce flush callback.
// Implemented by TimerScheduler (production) and testutil.ManualScheduler
// (tests fire tasks deterministically, no wall-clock timers).
//
// The Coordinator never relies on timer identity: extending the debounce
// window is always cancel-then-reschedule, so a Scheduler only needs
// one-shot semantics.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// TimerScheduler schedules tasks on real wall-clock timers.
type TimerScheduler struct{}

type timerTask struct {
	timer *time.Timer
}

// Schedule runs fn after d on a timer goroutine.
func (TimerScheduler) Schedule(d time.Duration, fn func()) Task {
	return timerTask{timer: time.AfterFunc(d, fn)}
}

func (t timerTask) Cancel() bool {
	return t.timer.Stop()
}
