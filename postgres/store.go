package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meikuraledutech/daghealth"
)

// Save persists a check record and trims history to the retention limit.
// The record body is marshalled as one JSONB document; dag_id and checked_at
// are duplicated into columns for keying and ordering.
func (s *PGStore) Save(ctx context.Context, rec *daghealth.CheckRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("daghealth: marshal record: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("daghealth: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO health_checks (dag_id, record, checked_at) VALUES ($1, $2, $3)
		 ON CONFLICT (dag_id) DO UPDATE SET record = $2, checked_at = $3`,
		rec.DagID, doc, rec.CheckedAt,
	); err != nil {
		return fmt.Errorf("daghealth: insert record: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM health_checks WHERE dag_id IN (
		     SELECT dag_id FROM health_checks ORDER BY checked_at DESC OFFSET $1
		 )`,
		daghealth.RetentionLimit,
	); err != nil {
		return fmt.Errorf("daghealth: trim history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("daghealth: commit: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, most recent first.
func (s *PGStore) ListRecent(ctx context.Context, limit int) ([]daghealth.CheckRecord, error) {
	if limit <= 0 || limit > daghealth.RetentionLimit {
		limit = daghealth.RetentionLimit
	}

	rows, err := s.db.Query(ctx,
		`SELECT record FROM health_checks ORDER BY checked_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("daghealth: query records: %w", err)
	}
	defer rows.Close()

	var records []daghealth.CheckRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("daghealth: scan record: %w", err)
		}
		var rec daghealth.CheckRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("daghealth: decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daghealth: rows: %w", err)
	}

	return records, nil
}

// GetByDagID fetches a single record by its dag_id.
// Returns daghealth.ErrRecordNotFound if absent.
func (s *PGStore) GetByDagID(ctx context.Context, dagID string) (*daghealth.CheckRecord, error) {
	var doc []byte
	err := s.db.QueryRow(ctx,
		`SELECT record FROM health_checks WHERE dag_id = $1`, dagID,
	).Scan(&doc)

	if err != nil {
		if isNoRows(err) {
			return nil, daghealth.ErrRecordNotFound
		}
		return nil, fmt.Errorf("daghealth: get record: %w", err)
	}

	var rec daghealth.CheckRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("daghealth: decode record: %w", err)
	}
	return &rec, nil
}

func isNoRows(err error) bool {
	return err != nil && err.Error() == "no rows in result set"
}
