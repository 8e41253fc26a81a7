package ports

import (
	"context"

	"factcheck/domain/profile"
)

// ReportSink is one persistence strategy for a finished report. Strategies are
// tried in order by a chain; each must leave no partial file behind on failure.
type ReportSink interface {
	// Name is the strategy label used in status messages
	Name() string

	// Extension is the file extension this strategy writes, without the dot
	Extension() string

	// Persist writes the report to path
	Persist(ctx context.Context, report *profile.Report, path string) error
}
