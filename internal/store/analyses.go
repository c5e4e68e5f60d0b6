package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
)

// ReadAnalysis returns the cached analysis for a lead, or (nil, nil) when
// none exists. Implements analysis.CacheSource.
func (s *Store) ReadAnalysis(ctx context.Context, leadID string) (*analysis.CachedAnalysis, error) {
	if leadID == "" {
		return nil, fmt.Errorf("read analysis: empty lead id")
	}

	var (
		idSetJSON    string
		documentJSON string
		generatedAt  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id_set, document, generated_at FROM analyses WHERE lead_id = ?
	`, leadID).Scan(&idSetJSON, &documentJSON, &generatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}

	rec := &analysis.CachedAnalysis{LeadID: leadID}
	if err := json.Unmarshal([]byte(idSetJSON), &rec.IDSet); err != nil {
		return nil, fmt.Errorf("read analysis: decode id_set: %w", err)
	}
	if err := json.Unmarshal([]byte(documentJSON), &rec.Document); err != nil {
		return nil, fmt.Errorf("read analysis: decode document: %w", err)
	}
	if rec.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
		return nil, fmt.Errorf("read analysis: parse generated_at: %w", err)
	}

	return rec, nil
}

// WriteAnalysis persists a generated document as the cached analysis for a
// lead, replacing any previous one.
//
// The reconciler never calls this: cache population is an explicit caller
// decision (the compare command's --save flag), not a side effect of
// generation.
func (s *Store) WriteAnalysis(ctx context.Context, rec analysis.CachedAnalysis) error {
	if rec.LeadID == "" {
		return fmt.Errorf("write analysis: empty lead id")
	}
	if rec.IDSet == nil {
		rec.IDSet = []string{}
	}
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now().UTC()
	}

	idSetJSON, err := json.Marshal(rec.IDSet)
	if err != nil {
		return fmt.Errorf("write analysis: marshal id_set: %w", err)
	}
	documentJSON, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("write analysis: marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (lead_id, id_set, document, generated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lead_id) DO UPDATE SET
			id_set       = excluded.id_set,
			document     = excluded.document,
			generated_at = excluded.generated_at
	`,
		rec.LeadID,
		string(idSetJSON),
		string(documentJSON),
		rec.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}

	return nil
}
