package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements daghealth.Store using PostgreSQL via pgx. Each check
// record is stored as one self-contained JSONB document keyed by dag_id.
type PGStore struct {
	db *pgxpool.Pool
}

// New creates a new PGStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}
