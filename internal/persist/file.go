package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/fllin1/global-franchises-sub001/internal/selection"
)

// FileAdapter persists the anonymous-scope selection in a single JSON file.
//
// Writes go through atomic.WriteFile (write to temp, fsync, rename) so an
// interrupted write can never leave a truncated file behind. Anonymous
// writes are write-through and synchronous in the engine, which keeps this
// path cheap and loss-free on abrupt process exit.
//
// Lead-bound scopes are rejected: routing them here is a wiring bug.
type FileAdapter struct {
	path string
}

// fileState is the on-disk shape. Versioned so the format can evolve
// without silently misreading old files.
type fileState struct {
	Version int      `json:"version"`
	IDs     []string `json:"ids"`
}

const fileStateVersion = 1

// NewFileAdapter creates an adapter persisting to path.
// The parent directory is created on first save, not here.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Load reads the persisted anonymous selection.
// A missing file is an empty selection, not an error.
func (a *FileAdapter) Load(ctx context.Context, scope selection.Scope) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "load", Scope: scope, Err: err}
	}
	if scope.Bound() {
		return nil, &Error{Op: "load", Scope: scope, Err: fmt.Errorf("file adapter serves the anonymous scope only")}
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, &Error{Op: "load", Scope: scope, Err: err}
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &Error{Op: "load", Scope: scope, Err: fmt.Errorf("decode %s: %w", a.path, err)}
	}
	if state.Version != fileStateVersion {
		return nil, &Error{Op: "load", Scope: scope, Err: fmt.Errorf("unsupported state version %d", state.Version)}
	}
	if state.IDs == nil {
		state.IDs = []string{}
	}
	return state.IDs, nil
}

// Save atomically replaces the persisted anonymous selection.
func (a *FileAdapter) Save(ctx context.Context, scope selection.Scope, ids []string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: "save", Scope: scope, Err: err}
	}
	if scope.Bound() {
		return &Error{Op: "save", Scope: scope, Err: fmt.Errorf("file adapter serves the anonymous scope only")}
	}

	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(fileState{Version: fileStateVersion, IDs: ids})
	if err != nil {
		return &Error{Op: "save", Scope: scope, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return &Error{Op: "save", Scope: scope, Err: err}
	}
	if err := atomic.WriteFile(a.path, bytes.NewReader(data)); err != nil {
		return &Error{Op: "save", Scope: scope, Err: err}
	}
	return nil
}
