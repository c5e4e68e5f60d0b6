package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SaveSelection replaces the persisted selection for a lead wholesale.
//
// Last-write-wins by design: the engine's debounce layer guarantees the ids
// passed here are the final state at flush time, so an upsert of the full
// array is the correct (and only) write shape.
func (s *Store) SaveSelection(ctx context.Context, leadID string, ids []string) error {
	if leadID == "" {
		return fmt.Errorf("save selection: empty lead id")
	}
	if ids == nil {
		ids = []string{}
	}

	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("save selection: marshal ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO selections (lead_id, ids, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(lead_id) DO UPDATE SET
			ids        = excluded.ids,
			updated_at = excluded.updated_at
	`,
		leadID,
		string(idsJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}

	return nil
}

// LoadSelection returns the persisted selection for a lead in insertion
// order. A lead with nothing persisted yields an empty slice, not an error.
func (s *Store) LoadSelection(ctx context.Context, leadID string) ([]string, error) {
	if leadID == "" {
		return nil, fmt.Errorf("load selection: empty lead id")
	}

	var idsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT ids FROM selections WHERE lead_id = ?
	`, leadID).Scan(&idsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(idsJSON), &ids); err != nil {
		return nil, fmt.Errorf("load selection: decode ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// DeleteSelection removes the persisted selection for a lead.
// No-op if nothing is persisted.
func (s *Store) DeleteSelection(ctx context.Context, leadID string) error {
	if leadID == "" {
		return fmt.Errorf("delete selection: empty lead id")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM selections WHERE lead_id = ?`, leadID); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}
