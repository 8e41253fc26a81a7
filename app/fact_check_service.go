package app

import (
	"context"
	"encoding/json"

	"factcheck/adapters/sink"
	"factcheck/domain/core"
	"factcheck/domain/profile"
	"factcheck/domain/run"
	"factcheck/internal"
	"factcheck/internal/errors"
	"factcheck/ports"
)

// ReportPersister writes a finished report to a destination
type ReportPersister interface {
	Persist(ctx context.Context, report *profile.Report, dest sink.Destination) (sink.Outcome, error)
}

// FactCheckService reads a source, profiles it and persists the report
type FactCheckService struct {
	analyzer  ports.AnalyzerPort
	persister ReportPersister
	history   ports.RunRepository
	outputDir string
	logger    *internal.Logger
}

// FactCheckRequest defines one run. Name falls back to the source name and
// then to "data"; a false Persist skips the sink chain.
type FactCheckRequest struct {
	Source  ports.TableSource
	Name    string
	Dir     string
	Persist bool
}

// FactCheckResult holds the report and, when persisted, where it went
type FactCheckResult struct {
	RunID       core.RunID      `json:"run_id"`
	SourceName  string          `json:"source"`
	Rows        int             `json:"rows"`
	Columns     int             `json:"columns"`
	Report      *profile.Report `json:"report"`
	Fingerprint core.ReportHash `json:"fingerprint"`
	Outcome     *sink.Outcome   `json:"outcome,omitempty"`
	StartedAt   core.Timestamp  `json:"started_at"`
	CompletedAt core.Timestamp  `json:"completed_at"`
	RuntimeMs   int64           `json:"runtime_ms"`
}

// NewFactCheckService creates the service; persister may be nil when reports
// are only returned in memory.
func NewFactCheckService(analyzer ports.AnalyzerPort, persister ReportPersister, outputDir string, logger *internal.Logger) *FactCheckService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FactCheckService{
		analyzer:  analyzer,
		persister: persister,
		outputDir: outputDir,
		logger:    logger.WithComponent("FactCheck"),
	}
}

// WithRunRepository records every completed run in history
func (s *FactCheckService) WithRunRepository(history ports.RunRepository) *FactCheckService {
	s.history = history
	return s
}

// History returns the run repository, or nil when history is disabled
func (s *FactCheckService) History() ports.RunRepository {
	return s.history
}

// Run executes one fact check. When persistence fails the result still
// carries the computed report alongside the sink error.
func (s *FactCheckService) Run(ctx context.Context, req FactCheckRequest) (*FactCheckResult, error) {
	if req.Source == nil {
		return nil, errors.InvalidInput("source is required")
	}
	started := core.Now()
	runID := core.NewRunID()

	t, err := req.Source.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", req.Source.SourceName())
	}
	s.logger.Debug("run %s: read %s (%d rows x %d columns)", runID, req.Source.SourceName(), t.Height(), t.Width())

	report, err := s.analyzer.Analyze(t)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to analyze %s", req.Source.SourceName())
	}

	result := &FactCheckResult{
		RunID:       runID,
		SourceName:  req.Source.SourceName(),
		Rows:        t.Height(),
		Columns:     t.Width(),
		Report:      report,
		Fingerprint: report.Fingerprint(),
		StartedAt:   started,
	}

	if req.Persist {
		if s.persister == nil {
			return result, errors.InternalError("no report persister configured")
		}
		dest := sink.Destination{Dir: s.outputDir, Name: req.Name}
		if req.Dir != "" {
			dest.Dir = req.Dir
		}
		if dest.Name == "" {
			dest.Name = req.Source.SourceName()
		}

		outcome, err := s.persister.Persist(ctx, report, dest)
		result.Outcome = &outcome
		if err != nil {
			s.finish(ctx, result)
			return result, errors.SinkError(err)
		}
	}

	s.finish(ctx, result)
	s.logger.Info("run %s: %s profiled %d variables in %dms (fingerprint %s)",
		runID, result.SourceName, report.Len(), result.RuntimeMs, result.Fingerprint.Short())
	return result, nil
}

// finish stamps completion and records the run. A history failure is logged
// and never fails the run itself.
func (s *FactCheckService) finish(ctx context.Context, result *FactCheckResult) {
	result.CompletedAt = core.Now()
	result.RuntimeMs = result.CompletedAt.Time().Sub(result.StartedAt.Time()).Milliseconds()

	if s.history == nil {
		return
	}
	record, err := result.Record()
	if err == nil {
		err = s.history.Save(ctx, record)
	}
	if err != nil {
		s.logger.Warn("run %s: failed to record history: %v", result.RunID, err)
	}
}

// Record converts the result into a run history entry
func (r *FactCheckResult) Record() (*run.Record, error) {
	body, err := json.Marshal(r.Report)
	if err != nil {
		return nil, err
	}
	record := &run.Record{
		ID:          r.RunID,
		Source:      r.SourceName,
		Rows:        r.Rows,
		Columns:     r.Columns,
		Fingerprint: r.Fingerprint,
		Report:      body,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		RuntimeMs:   r.RuntimeMs,
	}
	if r.Outcome != nil {
		record.Strategy = r.Outcome.Strategy
		record.OutputPath = r.Outcome.Path
		record.Message = r.Outcome.Message
	}
	return record, nil
}
