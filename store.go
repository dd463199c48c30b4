package daghealth

import (
	"context"
	"errors"
)

var (
	ErrEmptyGraph        = errors.New("daghealth: graph has no nodes")
	ErrUnknownNode       = errors.New("daghealth: reference to undeclared node")
	ErrCycleDetected     = errors.New("daghealth: cycle detected, graph is not acyclic")
	ErrInconsistentGraph = errors.New("daghealth: node dependencies and edges disagree")
	ErrRecordNotFound    = errors.New("daghealth: check record not found")
)

// RetentionLimit caps the number of check records a store keeps; Save trims
// the oldest records beyond it.
const RetentionLimit = 100

// Store defines the contract for persisting and retrieving check records.
// Records are keyed by dag_id and stored as self-contained documents.
type Store interface {
	// Save persists a record and trims history to RetentionLimit.
	Save(ctx context.Context, rec *CheckRecord) error

	// ListRecent returns up to limit records in descending checked_at
	// order. Limit is capped at RetentionLimit; non-positive means the cap.
	ListRecent(ctx context.Context, limit int) ([]CheckRecord, error)

	// GetByDagID returns the record for dagID, or ErrRecordNotFound.
	GetByDagID(ctx context.Context, dagID string) (*CheckRecord, error)
}
