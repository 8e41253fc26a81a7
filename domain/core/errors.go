package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Source table errors
	ErrInvalidTable      = errors.New("invalid source table")
	ErrDuplicateColumn   = fmt.Errorf("%w: duplicate column name", ErrInvalidTable)
	ErrRaggedColumns     = fmt.Errorf("%w: columns have different lengths", ErrInvalidTable)
	ErrValueTypeMismatch = fmt.Errorf("%w: value does not match column type", ErrInvalidTable)

	// Merge errors
	ErrSchemaColumnMissing = errors.New("merged table is missing a report column")
	ErrDuplicateJoinKey    = errors.New("partial statistic table has duplicate join key")

	// Source errors
	ErrUnsupportedSource = errors.New("unsupported source format")
	ErrEmptySource       = errors.New("source has no header row")

	// Sink errors
	ErrSinkFailed       = errors.New("report sink failed")
	ErrAllSinksFailed   = errors.New("all report sinks failed")
	ErrNoSinkStrategies = errors.New("no report sink strategies configured")
)

// NewDuplicateColumnError reports a column name that appears more than once
func NewDuplicateColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
}

// NewRaggedColumnError reports a column whose length differs from the first column
func NewRaggedColumnError(name string, got, want int) error {
	return fmt.Errorf("%w: column %q has %d values, expected %d", ErrRaggedColumns, name, got, want)
}

// NewSinkError wraps a failure of a single sink strategy
func NewSinkError(strategy string, err error) error {
	return fmt.Errorf("%w (%s): %v", ErrSinkFailed, strategy, err)
}

// IsInvalidTableError reports whether err is a source table precondition violation
func IsInvalidTableError(err error) bool {
	return errors.Is(err, ErrInvalidTable)
}

// IsSinkError reports whether err came from the persistence layer
func IsSinkError(err error) bool {
	return errors.Is(err, ErrSinkFailed) ||
		errors.Is(err, ErrAllSinksFailed) ||
		errors.Is(err, ErrNoSinkStrategies)
}
