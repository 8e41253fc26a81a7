package ports

import (
	"context"

	"factcheck/domain/core"
	"factcheck/domain/run"
)

// RunRepository keeps the history of fact-check runs
type RunRepository interface {
	Save(ctx context.Context, record *run.Record) error
	GetByID(ctx context.Context, id core.RunID) (*run.Record, error)
	// ListRecent returns summaries (no report body), newest first
	ListRecent(ctx context.Context, limit int) ([]run.Record, error)
}
