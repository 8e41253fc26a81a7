// Package delimited writes a report as plain delimited text, the last resort
// when no workbook can be produced.
package delimited

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"factcheck/domain/profile"
)

// Strategy is the name reported in sink outcomes
const Strategy = "delimited-text"

// Sink writes the header and rows with NA rendered as text
type Sink struct {
	delimiter rune
}

// NewSink creates a sink; a zero delimiter means comma
func NewSink(delimiter rune) *Sink {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Sink{delimiter: delimiter}
}

func (s *Sink) Name() string { return Strategy }

// Extension is tsv for tab-delimited output and csv otherwise
func (s *Sink) Extension() string {
	if s.delimiter == '\t' {
		return "tsv"
	}
	return "csv"
}

// Persist writes the report to path
func (s *Sink) Persist(ctx context.Context, report *profile.Report, path string) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(out)
	w.Comma = s.delimiter
	if err := w.WriteAll(report.Records()); err != nil {
		out.Close()
		return fmt.Errorf("failed to write delimited report: %w", err)
	}
	return out.Close()
}
