package store

import (
	"path/filepath"
	"testing"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
)

// createTestStore creates a temp-file store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestFranchise creates a catalog record with minimal required fields.
func createTestFranchise(id, name string, attrs map[string]string) analysis.Franchise {
	return analysis.Franchise{ID: id, Name: name, Attrs: attrs}
}
