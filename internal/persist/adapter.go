// Package persist defines the storage capability used to durably keep a
// selection, and the two backends that implement it: a session-local JSON
// file for the anonymous scope and the SQLite store for lead-bound scopes.
//
// The engine routes to exactly one adapter per scope and never branches on
// which implementation is behind the interface.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/fllin1/global-franchises-sub001/internal/selection"
)

// Adapter is the capability contract for selection persistence.
//
// Load returns the persisted ids for a scope; a scope with nothing persisted
// yields an empty slice, not an error. Save replaces the persisted ids for a
// scope wholesale (last-write-wins, no merging).
//
// Both operations honor context cancellation at their own boundaries.
// Failures are reported as *Error so callers can log them uniformly.
type Adapter interface {
	Load(ctx context.Context, scope selection.Scope) ([]string, error)
	Save(ctx context.Context, scope selection.Scope, ids []string) error
}

// Error is a persistence failure against either adapter.
//
// Persistence failures are non-fatal by policy: the engine logs them and
// degrades to in-memory-only operation for the session. They are never
// surfaced to the user.
type Error struct {
	Op    string          // "load" or "save"
	Scope selection.Scope // scope the operation targeted
	Err   error           // underlying cause
}

func (e *Error) Error() string {
	return fmt.Sprintf("persist %s (%s): %v", e.Op, e.Scope, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err is (or wraps) a persistence failure.
func IsError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
