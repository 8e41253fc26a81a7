package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"factcheck/domain/core"
	"factcheck/domain/run"
	"factcheck/internal/errors"
	"factcheck/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run history repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// runRow is the fact_check_runs row shape
type runRow struct {
	ID          string    `db:"id"`
	Source      string    `db:"source"`
	Rows        int       `db:"row_count"`
	Columns     int       `db:"column_count"`
	Fingerprint string    `db:"fingerprint"`
	Strategy    string    `db:"strategy"`
	OutputPath  string    `db:"output_path"`
	Message     string    `db:"message"`
	Report      []byte    `db:"report"`
	StartedAt   time.Time `db:"started_at"`
	CompletedAt time.Time `db:"completed_at"`
	RuntimeMs   int64     `db:"runtime_ms"`
}

func (row runRow) toRecord() run.Record {
	return run.Record{
		ID:          core.RunID(row.ID),
		Source:      row.Source,
		Rows:        row.Rows,
		Columns:     row.Columns,
		Fingerprint: core.ReportHash(row.Fingerprint),
		Strategy:    row.Strategy,
		OutputPath:  row.OutputPath,
		Message:     row.Message,
		Report:      row.Report,
		StartedAt:   core.NewTimestamp(row.StartedAt),
		CompletedAt: core.NewTimestamp(row.CompletedAt),
		RuntimeMs:   row.RuntimeMs,
	}
}

// Save inserts a run; saving the same run id twice is an error
func (r *runRepository) Save(ctx context.Context, record *run.Record) error {
	if err := record.Validate(); err != nil {
		return errors.ValidationError(err.Error())
	}

	query := `INSERT INTO fact_check_runs (
		id, source, row_count, column_count, fingerprint, strategy, output_path,
		message, report, started_at, completed_at, runtime_ms
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(), record.Source, record.Rows, record.Columns, record.Fingerprint.String(),
		record.Strategy, record.OutputPath, record.Message, []byte(record.Report),
		record.StartedAt.Time(), record.CompletedAt.Time(), record.RuntimeMs,
	)
	if err != nil {
		return errors.DatabaseError(fmt.Sprintf("failed to save run %s", record.ID), err)
	}
	return nil
}

// GetByID retrieves a run with its report
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.Record, error) {
	query := `SELECT id, source, row_count, column_count, fingerprint, strategy, output_path,
		message, report, started_at, completed_at, runtime_ms
	FROM fact_check_runs WHERE id = $1`

	var row runRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound(fmt.Sprintf("run %s", id))
		}
		return nil, errors.DatabaseError("failed to get run", err)
	}
	record := row.toRecord()
	return &record, nil
}

// ListRecent returns run summaries, newest first
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]run.Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `SELECT id, source, row_count, column_count, fingerprint, strategy, output_path,
		message, '{}'::jsonb AS report, started_at, completed_at, runtime_ms
	FROM fact_check_runs ORDER BY completed_at DESC, id LIMIT $1`

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, errors.DatabaseError("failed to list runs", err)
	}

	records := make([]run.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord().Summary()
	}
	return records, nil
}
