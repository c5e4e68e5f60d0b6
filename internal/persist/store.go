package persist

import (
	"context"
	"fmt"

	"github.com/fllin1/global-franchises-sub001/internal/selection"
)

// LeadSelectionStore is the slice of the durable store the remote adapter
// needs. Implemented by store.Store.
type LeadSelectionStore interface {
	SaveSelection(ctx context.Context, leadID string, ids []string) error
	LoadSelection(ctx context.Context, leadID string) ([]string, error)
}

// StoreAdapter persists lead-bound selections through the durable store.
//
// Anonymous scopes are rejected: routing them here is a wiring bug, the
// same way lead scopes are a bug for FileAdapter.
type StoreAdapter struct {
	store LeadSelectionStore
}

// NewStoreAdapter creates an adapter over the given store.
func NewStoreAdapter(store LeadSelectionStore) *StoreAdapter {
	return &StoreAdapter{store: store}
}

// Load reads the persisted selection for the scope's lead.
func (a *StoreAdapter) Load(ctx context.Context, scope selection.Scope) ([]string, error) {
	if !scope.Bound() {
		return nil, &Error{Op: "load", Scope: scope, Err: fmt.Errorf("store adapter serves lead-bound scopes only")}
	}
	ids, err := a.store.LoadSelection(ctx, scope.LeadID())
	if err != nil {
		return nil, &Error{Op: "load", Scope: scope, Err: err}
	}
	return ids, nil
}

// Save replaces the persisted selection for the scope's lead.
func (a *StoreAdapter) Save(ctx context.Context, scope selection.Scope, ids []string) error {
	if !scope.Bound() {
		return &Error{Op: "save", Scope: scope, Err: fmt.Errorf("store adapter serves lead-bound scopes only")}
	}
	if err := a.store.SaveSelection(ctx, scope.LeadID(), ids); err != nil {
		return &Error{Op: "save", Scope: scope, Err: err}
	}
	return nil
}

// compile-time interface checks
var (
	_ Adapter = (*FileAdapter)(nil)
	_ Adapter = (*StoreAdapter)(nil)
)
