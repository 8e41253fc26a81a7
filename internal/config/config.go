package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"factcheck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	LogLevel string
	Report   ReportConfig
	Source   SourceConfig
	Database DatabaseConfig
	Server   ServerConfig
	Runner   RunnerConfig
}

// ReportConfig controls where and how fact-check reports are written
type ReportConfig struct {
	OutputDir    string
	SheetName    string
	StartCell    string
	TableStyle   string
	Sinks        []string
	CSVDelimiter rune
}

// SourceConfig controls how source files are read
type SourceConfig struct {
	SheetName      string
	NullValues     []string
	LenientNumbers bool
}

// DatabaseConfig holds the optional database connection for SQL sources
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// RunnerConfig bounds concurrent profiling runs in the CLI
type RunnerConfig struct {
	MaxParallel int
}

// Sink strategy names accepted in FCOTD_SINKS
const (
	SinkStyled = "styled"
	SinkPlain  = "plain"
	SinkCSV    = "csv"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	delimiter, err := loadDelimiter()
	if err != nil {
		return nil, err
	}

	config := &Config{
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
		Report: ReportConfig{
			OutputDir:    getEnvOrDefault("FCOTD_OUTPUT_DIR", "."),
			SheetName:    getEnvOrDefault("FCOTD_SHEET_NAME", "FCOTD"),
			StartCell:    getEnvOrDefault("FCOTD_START_CELL", "B2"),
			TableStyle:   getEnvOrDefault("FCOTD_TABLE_STYLE", "Table Style Light 10"),
			Sinks:        getEnvListOrDefault("FCOTD_SINKS", []string{SinkStyled, SinkPlain, SinkCSV}),
			CSVDelimiter: delimiter,
		},
		Source: SourceConfig{
			SheetName:      getEnvOrDefault("FCOTD_SAMPLE_SHEET", "Sheet1"),
			NullValues:     loadNullValues(),
			LenientNumbers: getEnvBoolOrDefault("FCOTD_LENIENT_NUMBERS", false),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			MaxUploadBytes: int64(getEnvIntOrDefault("FCOTD_MAX_UPLOAD_MB", 50)) << 20,
			RequestTimeout: getEnvDurationOrDefault("FCOTD_REQUEST_TIMEOUT", 60*time.Second),
		},
		Runner: RunnerConfig{
			MaxParallel: getEnvIntOrDefault("FCOTD_MAX_PARALLEL", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// RequireDatabase fails when no DATABASE_URL was configured
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required for SQL sources and run history")
	}
	return nil
}

func loadDelimiter() (rune, error) {
	value := getEnvOrDefault("FCOTD_CSV_DELIMITER", ",")
	if value == `\t` || value == "tab" {
		return '\t', nil
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, errors.ConfigInvalid("FCOTD_CSV_DELIMITER must be a single character")
	}
	return runes[0], nil
}

// loadNullValues always treats the empty cell as missing and adds any extra
// tokens from FCOTD_NULL_VALUES.
func loadNullValues() []string {
	values := []string{""}
	for _, tok := range getEnvListOrDefault("FCOTD_NULL_VALUES", nil) {
		if tok != "" {
			values = append(values, tok)
		}
	}
	return values
}

func validateConfig(config *Config) error {
	if len(config.Report.Sinks) == 0 {
		return errors.ConfigInvalid("at least one sink strategy is required")
	}
	for _, name := range config.Report.Sinks {
		switch name {
		case SinkStyled, SinkPlain, SinkCSV:
		default:
			return errors.ConfigInvalid("unknown sink strategy: " + name)
		}
	}
	if config.Report.SheetName == "" {
		return errors.ConfigInvalid("sheet name is required")
	}
	if config.Runner.MaxParallel < 1 {
		return errors.ConfigInvalid("FCOTD_MAX_PARALLEL must be at least 1")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("FCOTD_MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		items = append(items, strings.TrimSpace(item))
	}
	return items
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
