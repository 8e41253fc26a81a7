package testkit

import (
	"context"

	"factcheck/domain/table"
)

// StaticSource serves a fixed table, or a fixed error
type StaticSource struct {
	Name  string
	Table *table.Table
	Err   error
}

func (s *StaticSource) ReadTable(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Table, s.Err
}

func (s *StaticSource) SourceName() string { return s.Name }
