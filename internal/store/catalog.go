package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
)

// UpsertFranchise inserts or replaces a catalog record.
func (s *Store) UpsertFranchise(ctx context.Context, f analysis.Franchise) error {
	if f.ID == "" {
		return fmt.Errorf("upsert franchise: empty id")
	}
	if f.Name == "" {
		return fmt.Errorf("upsert franchise %s: empty name", f.ID)
	}
	if f.Attrs == nil {
		f.Attrs = map[string]string{}
	}

	attrsJSON, err := json.Marshal(f.Attrs)
	if err != nil {
		return fmt.Errorf("upsert franchise %s: marshal attrs: %w", f.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO franchises (id, name, attrs)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name  = excluded.name,
			attrs = excluded.attrs
	`, f.ID, f.Name, string(attrsJSON))
	if err != nil {
		return fmt.Errorf("upsert franchise %s: %w", f.ID, err)
	}

	return nil
}

// ReadFranchises returns the catalog records for ids, in id order of the
// query result. Ids with no record are simply absent from the result - the
// generator decides whether that is an error. Implements analysis.Catalog.
func (s *Store) ReadFranchises(ctx context.Context, ids []string) ([]analysis.Franchise, error) {
	if len(ids) == 0 {
		return []analysis.Franchise{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, attrs FROM franchises
		WHERE id IN (%s)
		ORDER BY id COLLATE BINARY ASC
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("read franchises: %w", err)
	}
	defer rows.Close()

	var franchises []analysis.Franchise
	for rows.Next() {
		f, err := scanFranchise(rows)
		if err != nil {
			return nil, err
		}
		franchises = append(franchises, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate franchises: %w", err)
	}

	if franchises == nil {
		franchises = []analysis.Franchise{}
	}
	return franchises, nil
}

// ReadFranchise returns a single catalog record, or (nil, nil) if absent.
func (s *Store) ReadFranchise(ctx context.Context, id string) (*analysis.Franchise, error) {
	var (
		name      string
		attrsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, attrs FROM franchises WHERE id = ?
	`, id).Scan(&name, &attrsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read franchise %s: %w", id, err)
	}

	f := &analysis.Franchise{ID: id, Name: name}
	if err := json.Unmarshal([]byte(attrsJSON), &f.Attrs); err != nil {
		return nil, fmt.Errorf("read franchise %s: decode attrs: %w", id, err)
	}
	return f, nil
}

// ListFranchises returns the whole catalog ordered by id.
func (s *Store) ListFranchises(ctx context.Context) ([]analysis.Franchise, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, attrs FROM franchises
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list franchises: %w", err)
	}
	defer rows.Close()

	var franchises []analysis.Franchise
	for rows.Next() {
		f, err := scanFranchise(rows)
		if err != nil {
			return nil, err
		}
		franchises = append(franchises, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate franchises: %w", err)
	}

	if franchises == nil {
		franchises = []analysis.Franchise{}
	}
	return franchises, nil
}

func scanFranchise(rows *sql.Rows) (analysis.Franchise, error) {
	var (
		f         analysis.Franchise
		attrsJSON string
	)
	if err := rows.Scan(&f.ID, &f.Name, &attrsJSON); err != nil {
		return analysis.Franchise{}, fmt.Errorf("scan franchise: %w", err)
	}
	if err := json.Unmarshal([]byte(attrsJSON), &f.Attrs); err != nil {
		return analysis.Franchise{}, fmt.Errorf("scan franchise %s: decode attrs: %w", f.ID, err)
	}
	return f, nil
}
