package ports

import (
	"context"

	"factcheck/domain/table"
)

// TableSource loads a complete source table into memory
type TableSource interface {
	// ReadTable reads and types every column
	ReadTable(ctx context.Context) (*table.Table, error)

	// SourceName identifies the source in logs and default report names
	SourceName() string
}
