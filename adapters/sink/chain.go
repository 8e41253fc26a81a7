// Package sink persists a finished report through an ordered list of
// strategies, falling back to the next one when a write fails.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"factcheck/domain/core"
	"factcheck/domain/profile"
	"factcheck/internal"
	"factcheck/ports"

	"github.com/google/uuid"
)

// DefaultName is used when the caller supplies no report name
const DefaultName = "data"

// Destination names the directory and base name of a report file
type Destination struct {
	Dir  string
	Name string
}

// BaseName returns the sanitized report name, or DefaultName
func (d Destination) BaseName() string {
	name := strings.TrimSpace(d.Name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return DefaultName
	}
	return name
}

// Path is <Dir>/<Name>_fact_checks.<ext>
func (d Destination) Path(ext string) string {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, d.BaseName()+"_fact_checks."+ext)
}

// Attempt records one strategy that was tried
type Attempt struct {
	Strategy string `json:"strategy"`
	Error    string `json:"error,omitempty"`
}

// Outcome describes which strategy saved the report, or that none did
type Outcome struct {
	Strategy string    `json:"strategy,omitempty"`
	Path     string    `json:"path,omitempty"`
	Attempts []Attempt `json:"attempts"`
	Message  string    `json:"message"`
}

// Succeeded reports whether any strategy saved the report
func (o Outcome) Succeeded() bool {
	return o.Path != ""
}

// Chain tries each strategy in order until one persists the report
type Chain struct {
	strategies []ports.ReportSink
	logger     *internal.Logger
}

// NewChain creates a chain over strategies, tried in the given order
func NewChain(logger *internal.Logger, strategies ...ports.ReportSink) *Chain {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Chain{strategies: strategies, logger: logger.WithComponent("SinkChain")}
}

// Strategies returns the strategy names in order
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Persist writes report to dest. Each strategy writes to a temporary file in
// the destination directory which is renamed into place only on success, so a
// failed strategy never leaves a partial report behind. The report itself is
// never modified, so every strategy receives identical content.
func (c *Chain) Persist(ctx context.Context, report *profile.Report, dest Destination) (Outcome, error) {
	var outcome Outcome
	if len(c.strategies) == 0 {
		outcome.Message = core.ErrNoSinkStrategies.Error()
		return outcome, core.ErrNoSinkStrategies
	}

	dir := dest.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		outcome.Message = fmt.Sprintf("failed to create output directory %s: %v", dir, err)
		return outcome, core.NewSinkError("mkdir", err)
	}

	var failures []string
	for _, strategy := range c.strategies {
		if err := ctx.Err(); err != nil {
			outcome.Message = "report persistence cancelled"
			return outcome, err
		}

		path := dest.Path(strategy.Extension())
		err := c.attempt(ctx, strategy, report, path)
		if err == nil {
			outcome.Attempts = append(outcome.Attempts, Attempt{Strategy: strategy.Name()})
			outcome.Strategy = strategy.Name()
			outcome.Path = path
			outcome.Message = fmt.Sprintf("saved report to %s using %s", path, strategy.Name())
			c.logger.Info("%s", outcome.Message)
			return outcome, nil
		}

		outcome.Attempts = append(outcome.Attempts, Attempt{Strategy: strategy.Name(), Error: err.Error()})
		failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name(), err))
		c.logger.Warn("%s failed, trying next strategy: %v", strategy.Name(), err)
	}

	outcome.Message = fmt.Sprintf("all %d sink strategies failed: %s", len(c.strategies), strings.Join(failures, "; "))
	c.logger.Error("%s", outcome.Message)
	return outcome, fmt.Errorf("%w: %s", core.ErrAllSinksFailed, strings.Join(failures, "; "))
}

func (c *Chain) attempt(ctx context.Context, strategy ports.ReportSink, report *profile.Report, path string) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp."+strategy.Extension())
	if err := strategy.Persist(ctx, report, tmp); err != nil {
		_ = os.Remove(tmp)
		return core.NewSinkError(strategy.Name(), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return core.NewSinkError(strategy.Name(), err)
	}
	return nil
}
