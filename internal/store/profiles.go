package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
)

// UpsertProfile inserts or replaces a lead profile.
func (s *Store) UpsertProfile(ctx context.Context, p analysis.Profile) error {
	if p.LeadID == "" {
		return fmt.Errorf("upsert profile: empty lead id")
	}
	if p.Priorities == nil {
		p.Priorities = []string{}
	}

	prioritiesJSON, err := json.Marshal(p.Priorities)
	if err != nil {
		return fmt.Errorf("upsert profile %s: marshal priorities: %w", p.LeadID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (lead_id, name, budget, priorities)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lead_id) DO UPDATE SET
			name       = excluded.name,
			budget     = excluded.budget,
			priorities = excluded.priorities
	`, p.LeadID, p.Name, p.Budget, string(prioritiesJSON))
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.LeadID, err)
	}

	return nil
}

// ReadProfile returns the profile for a lead, or (nil, nil) when the lead
// has no profile. Implements analysis.ProfileSource.
func (s *Store) ReadProfile(ctx context.Context, leadID string) (*analysis.Profile, error) {
	if leadID == "" {
		return nil, fmt.Errorf("read profile: empty lead id")
	}

	var (
		name           string
		budget         string
		prioritiesJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, budget, priorities FROM profiles WHERE lead_id = ?
	`, leadID).Scan(&name, &budget, &prioritiesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", leadID, err)
	}

	p := &analysis.Profile{LeadID: leadID, Name: name, Budget: budget}
	if err := json.Unmarshal([]byte(prioritiesJSON), &p.Priorities); err != nil {
		return nil, fmt.Errorf("read profile %s: decode priorities: %w", leadID, err)
	}
	return p, nil
}
