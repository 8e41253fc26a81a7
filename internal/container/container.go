package container

import (
	"context"
	"fmt"

	"factcheck/adapters/excel"
	"factcheck/adapters/postgres"
	"factcheck/adapters/sink"
	"factcheck/app"
	"factcheck/internal"
	"factcheck/internal/api"
	"factcheck/internal/config"
	"factcheck/internal/migration"
	"factcheck/internal/profiler"
	"factcheck/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB stays nil until a SQL source is requested
	DB *sqlx.DB

	Analyzer  *profiler.Analyzer
	SinkChain *sink.Chain
	Service   *app.FactCheckService
}

// New wires the analyzer, sink chain and service from cfg
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	strategies, err := sink.FromConfig(cfg.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to build sink chain: %w", err)
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Analyzer:  profiler.NewAnalyzer(logger),
		SinkChain: sink.NewChain(logger, strategies...),
	}
	c.Service = app.NewFactCheckService(c.Analyzer, c.SinkChain, cfg.Report.OutputDir, logger)

	logger.WithComponent("Container").Debug("sink strategies: %v", c.SinkChain.Strategies())
	return c, nil
}

// ExcelConfig returns the reader configuration for CSV and XLSX sources
func (c *Container) ExcelConfig() excel.ExcelConfig {
	return excel.FromAppConfig(c.Config)
}

// FileSource creates a reader for a CSV or XLSX path
func (c *Container) FileSource(path string) ports.TableSource {
	return excel.NewDataReader(path, c.ExcelConfig(), c.Logger)
}

// InitDatabase connects to DATABASE_URL once and reuses the pool afterwards
func (c *Container) InitDatabase(ctx context.Context) (*sqlx.DB, error) {
	if c.DB != nil {
		return c.DB, nil
	}
	if err := c.Config.RequireDatabase(); err != nil {
		return nil, err
	}
	db, err := postgres.Connect(ctx, c.Config.Database.URL)
	if err != nil {
		return nil, err
	}
	c.DB = db
	return db, nil
}

// QuerySource returns a SQL source over DATABASE_URL
func (c *Container) QuerySource(ctx context.Context, name, query string) (ports.TableSource, error) {
	db, err := c.InitDatabase(ctx)
	if err != nil {
		return nil, err
	}
	return postgres.NewQuerySource(db, name, query, c.Logger), nil
}

// EnableRunHistory migrates the history schema and records every run
func (c *Container) EnableRunHistory(ctx context.Context) (ports.RunRepository, error) {
	db, err := c.InitDatabase(ctx)
	if err != nil {
		return nil, err
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return nil, err
	}
	repo := postgres.NewRunRepository(db)
	c.Service.WithRunRepository(repo)
	return repo, nil
}

// Server builds the HTTP handler
func (c *Container) Server() *api.Server {
	return api.NewServer(c.Service, c.Config, c.Logger)
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
