package migration

import (
	"context"

	"factcheck/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the run history schema. Every statement is
// idempotent, so Run is safe on every startup.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

type step struct {
	name string
	sql  string
}

// Steps lists the migrations in execution order
func (r *MigrationRunner) Steps() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

var steps = []step{
	{
		name: "create fact_check_runs table",
		sql: `
		CREATE TABLE IF NOT EXISTS fact_check_runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL,
			fingerprint TEXT NOT NULL,
			strategy TEXT NOT NULL DEFAULT '',
			output_path TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			report JSONB NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			completed_at TIMESTAMP WITH TIME ZONE NOT NULL,
			runtime_ms BIGINT NOT NULL DEFAULT 0
		)`,
	},
	{
		name: "index fact_check_runs by completion",
		sql:  `CREATE INDEX IF NOT EXISTS idx_fact_check_runs_completed_at ON fact_check_runs (completed_at DESC)`,
	},
	{
		name: "index fact_check_runs by fingerprint",
		sql:  `CREATE INDEX IF NOT EXISTS idx_fact_check_runs_fingerprint ON fact_check_runs (fingerprint)`,
	},
}

// Run executes all database migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, s := range steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return errors.DatabaseError("failed to "+s.name, err)
		}
	}
	return nil
}
