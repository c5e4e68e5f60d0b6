package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fllin1/global-franchises-sub001/internal/engine"
	"github.com/fllin1/global-franchises-sub001/internal/persist"
	"github.com/fllin1/global-franchises-sub001/internal/selection"
	"github.com/fllin1/global-franchises-sub001/internal/store"
)

// openStore opens the configured SQLite database, creating it on first use.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.cfg.Storage.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening database", err)
	}
	return st, nil
}

// newCoordinator wires a selection coordinator over the configured
// persistence backends: the selection file for the anonymous scope and the
// database for lead-bound scopes.
func newCoordinator(opts *RootOptions, st *store.Store) *engine.Coordinator {
	return engine.New(
		persist.NewFileAdapter(opts.cfg.Storage.SelectionFile),
		persist.NewStoreAdapter(st),
		engine.WithDebounceWindow(opts.cfg.Selection.DebounceWindow()),
		engine.WithMaxSelection(opts.cfg.Selection.MaxSize),
	)
}

// withStore opens the configured store, runs body with the command's
// context, and closes the store afterwards.
func withStore(opts *RootOptions, body func(context.Context, *store.Store) error, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return body(ctx, st)
}

// loadAnonymousSelection reads the anonymous selection straight from its
// file, without spinning up a coordinator.
func loadAnonymousSelection(ctx context.Context, opts *RootOptions) ([]string, error) {
	adapter := persist.NewFileAdapter(opts.cfg.Storage.SelectionFile)
	return adapter.Load(ctx, selection.Anonymous())
}

// scopeFor maps the --lead flag to a selection scope.
func scopeFor(leadID string) selection.Scope {
	if leadID == "" {
		return selection.Anonymous()
	}
	return selection.ForLead(leadID)
}

// formatter builds an OutputFormatter bound to the command's writers.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
