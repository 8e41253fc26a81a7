package excel

import (
	"context"
	"fmt"
	"os"
	"strings"

	"factcheck/domain/profile"

	"github.com/xuri/excelize/v2"
)

// Strategy names reported in sink outcomes
const (
	StyledStrategy = "styled-workbook"
	PlainStrategy  = "plain-workbook"
)

// StyledWorkbookSink writes the report as an Excel table with a named table
// style, bold header and two-decimal Missing_% column.
type StyledWorkbookSink struct {
	config WorkbookConfig
}

// NewStyledWorkbookSink creates the primary report sink
func NewStyledWorkbookSink(config WorkbookConfig) *StyledWorkbookSink {
	return &StyledWorkbookSink{config: withDefaults(config)}
}

func (s *StyledWorkbookSink) Name() string      { return StyledStrategy }
func (s *StyledWorkbookSink) Extension() string { return "xlsx" }

// Persist writes the styled workbook to path
func (s *StyledWorkbookSink) Persist(ctx context.Context, report *profile.Report, path string) error {
	return writeWorkbook(ctx, report, path, s.config, true)
}

// PlainWorkbookSink writes the same cells and layout without any styling
type PlainWorkbookSink struct {
	config WorkbookConfig
}

// NewPlainWorkbookSink creates the unstyled workbook fallback
func NewPlainWorkbookSink(config WorkbookConfig) *PlainWorkbookSink {
	return &PlainWorkbookSink{config: withDefaults(config)}
}

func (s *PlainWorkbookSink) Name() string      { return PlainStrategy }
func (s *PlainWorkbookSink) Extension() string { return "xlsx" }

// Persist writes the plain workbook to path
func (s *PlainWorkbookSink) Persist(ctx context.Context, report *profile.Report, path string) error {
	return writeWorkbook(ctx, report, path, s.config, false)
}

func withDefaults(config WorkbookConfig) WorkbookConfig {
	def := DefaultWorkbookConfig()
	if config.SheetName == "" {
		config.SheetName = def.SheetName
	}
	if config.StartCell == "" {
		config.StartCell = def.StartCell
	}
	if config.TableStyle == "" {
		config.TableStyle = def.TableStyle
	}
	return config
}

// TableStyleName converts a display name such as "Table Style Light 10" to
// the identifier Excel stores ("TableStyleLight10").
func TableStyleName(display string) string {
	return strings.Join(strings.Fields(display), "")
}

func writeWorkbook(ctx context.Context, report *profile.Report, path string, config WorkbookConfig, styled bool) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	col, row, err := excelize.CellNameToCoordinates(config.StartCell)
	if err != nil {
		return fmt.Errorf("invalid start cell %q: %w", config.StartCell, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := config.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(report.Columns))
	for i, name := range report.Columns {
		header[i] = name
	}
	if err := setRow(f, sheet, col, row, header); err != nil {
		return err
	}
	for i, cells := range report.Rows {
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = c.Interface()
		}
		if err := setRow(f, sheet, col, row+1+i, values); err != nil {
			return err
		}
	}

	first, _ := excelize.CoordinatesToCellName(col, row)
	last, err := excelize.CoordinatesToCellName(col+len(report.Columns)-1, row+len(report.Rows))
	if err != nil {
		return fmt.Errorf("report does not fit the sheet: %w", err)
	}

	if styled {
		if err := styleTable(f, sheet, report, config, col, row, first, last); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return out.Close()
}

func setRow(f *excelize.File, sheet string, col, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func styleTable(f *excelize.File, sheet string, report *profile.Report, config WorkbookConfig, col, row int, first, last string) error {
	showStripes := true
	if err := f.AddTable(sheet, &excelize.Table{
		Range:          first + ":" + last,
		Name:           "FactChecks",
		StyleName:      TableStyleName(config.TableStyle),
		ShowRowStripes: &showStripes,
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	headerEnd, _ := excelize.CoordinatesToCellName(col+len(report.Columns)-1, row)
	if err := f.SetCellStyle(sheet, first, headerEnd, bold); err != nil {
		return err
	}

	if pct := report.ColumnIndex(profile.ColMissingPct); pct >= 0 && report.Len() > 0 {
		twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return err
		}
		top, _ := excelize.CoordinatesToCellName(col+pct, row+1)
		bottom, _ := excelize.CoordinatesToCellName(col+pct, row+report.Len())
		if err := f.SetCellStyle(sheet, top, bottom, twoDecimals); err != nil {
			return err
		}
	}

	startCol, _ := excelize.ColumnNumberToName(col)
	endCol, _ := excelize.ColumnNumberToName(col + len(report.Columns) - 1)
	return f.SetColWidth(sheet, startCol, endCol, 18)
}
