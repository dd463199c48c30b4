// Package memstore provides an in-memory daghealth.Store, used by tests and
// examples and usable as a standalone store for single-process deployments.
package memstore

import (
	"context"
	"sync"

	"github.com/meikuraledutech/daghealth"
)

// Store keeps check records in memory, newest first, bounded by the
// retention limit. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []daghealth.CheckRecord // descending checked_at
	byID    map[string]int          // dag_id -> index into records
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{byID: make(map[string]int)}
}

// Save inserts a copy of the record in checked_at order and drops the oldest
// entries beyond the retention limit.
func (s *Store) Save(_ context.Context, rec *daghealth.CheckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// records arrive in roughly chronological order; walk from the head to
	// find the insert position for the rare out-of-order save
	pos := len(s.records)
	for i, r := range s.records {
		if rec.CheckedAt.After(r.CheckedAt) {
			pos = i
			break
		}
	}

	s.records = append(s.records, daghealth.CheckRecord{})
	copy(s.records[pos+1:], s.records[pos:])
	s.records[pos] = *rec

	if len(s.records) > daghealth.RetentionLimit {
		s.records = s.records[:daghealth.RetentionLimit]
	}

	s.reindex()
	return nil
}

func (s *Store) reindex() {
	s.byID = make(map[string]int, len(s.records))
	for i, r := range s.records {
		s.byID[r.DagID] = i
	}
}

// ListRecent returns up to limit records, most recent first.
func (s *Store) ListRecent(_ context.Context, limit int) ([]daghealth.CheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > daghealth.RetentionLimit {
		limit = daghealth.RetentionLimit
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]daghealth.CheckRecord, limit)
	copy(out, s.records[:limit])
	return out, nil
}

// GetByDagID returns the record for dagID, or daghealth.ErrRecordNotFound.
func (s *Store) GetByDagID(_ context.Context, dagID string) (*daghealth.CheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[dagID]
	if !ok {
		return nil, daghealth.ErrRecordNotFound
	}
	rec := s.records[i]
	return &rec, nil
}
