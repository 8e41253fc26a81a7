package excel

import (
	"factcheck/adapters/coercer"
	"factcheck/internal/config"
)

// ExcelConfig holds configuration for reading Excel and CSV sources
type ExcelConfig struct {
	SheetName      string                 `json:"sheet_name"`
	Delimiter      rune                   `json:"delimiter"`
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig reads Sheet1 or comma-separated files with strict typing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		SheetName:      "Sheet1",
		Delimiter:      ',',
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}

// FromAppConfig builds the reader configuration from application settings
func FromAppConfig(cfg *config.Config) ExcelConfig {
	out := DefaultExcelConfig()
	out.SheetName = cfg.Source.SheetName
	out.Delimiter = cfg.Report.CSVDelimiter
	out.CoercionConfig.NullTokens = cfg.Source.NullValues
	out.CoercionConfig.LenientNumbers = cfg.Source.LenientNumbers
	return out
}

// WorkbookConfig controls the layout of written report workbooks
type WorkbookConfig struct {
	SheetName  string `json:"sheet_name"`
	StartCell  string `json:"start_cell"`
	TableStyle string `json:"table_style"`
}

// DefaultWorkbookConfig places the report table at B2 of sheet FCOTD
func DefaultWorkbookConfig() WorkbookConfig {
	return WorkbookConfig{
		SheetName:  "FCOTD",
		StartCell:  "B2",
		TableStyle: "Table Style Light 10",
	}
}

// WorkbookFromAppConfig builds the report workbook layout from application settings
func WorkbookFromAppConfig(cfg *config.Config) WorkbookConfig {
	return WorkbookConfig{
		SheetName:  cfg.Report.SheetName,
		StartCell:  cfg.Report.StartCell,
		TableStyle: cfg.Report.TableStyle,
	}
}
