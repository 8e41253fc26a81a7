// Package run describes a completed fact-check run as kept in run history.
package run

import (
	"encoding/json"
	"fmt"

	"factcheck/domain/core"
)

// Record is one fact-check run. Report holds the report JSON as produced at
// run time; it is stored and served verbatim, never re-derived.
type Record struct {
	ID          core.RunID      `json:"run_id"`
	Source      string          `json:"source"`
	Rows        int             `json:"rows"`
	Columns     int             `json:"columns"`
	Fingerprint core.ReportHash `json:"fingerprint"`
	Strategy    string          `json:"strategy,omitempty"`
	OutputPath  string          `json:"output_path,omitempty"`
	Message     string          `json:"message,omitempty"`
	Report      json.RawMessage `json:"report,omitempty"`
	StartedAt   core.Timestamp  `json:"started_at"`
	CompletedAt core.Timestamp  `json:"completed_at"`
	RuntimeMs   int64           `json:"runtime_ms"`
}

// Validate checks the fields every stored run must carry
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if r.Source == "" {
		return fmt.Errorf("run %s: source is required", r.ID)
	}
	if r.Fingerprint == "" {
		return fmt.Errorf("run %s: fingerprint is required", r.ID)
	}
	if len(r.Report) == 0 || !json.Valid(r.Report) {
		return fmt.Errorf("run %s: report must be valid JSON", r.ID)
	}
	return nil
}

// Saved reports whether any sink strategy wrote the report
func (r Record) Saved() bool {
	return r.OutputPath != ""
}

// Summary drops the report body for listings
func (r Record) Summary() Record {
	r.Report = nil
	return r
}
