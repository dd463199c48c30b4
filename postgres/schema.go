package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS health_checks (
    dag_id     TEXT PRIMARY KEY,
    record     JSONB NOT NULL,
    checked_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_health_checks_checked_at ON health_checks(checked_at DESC);
`

// CreateSchema creates the health_checks table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the health_checks table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS health_checks CASCADE;`)
	return err
}
