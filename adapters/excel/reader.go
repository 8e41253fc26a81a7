package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"factcheck/adapters/coercer"
	"factcheck/domain/core"
	"factcheck/domain/table"
	"factcheck/internal"
	"factcheck/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files into a typed source table
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ExcelConfig
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewDataReader creates a reader for filePath; the format follows the extension
func NewDataReader(filePath string, config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.SheetName == "" {
		config.SheetName = "Sheet1"
	}
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &DataReader{
		filePath: filePath,
		fileType: FileType(filePath),
		config:   config,
		coercer:  coercer.NewTypeCoercer(config.CoercionConfig),
		logger:   logger.WithComponent("DataReader"),
	}
}

// FileType maps a path to "csv", "xlsx" or "" when the extension is unsupported
func FileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return "csv"
	case ".xlsx", ".xlsm":
		return "xlsx"
	}
	return ""
}

// SourceName is the file name without directory or extension
func (r *DataReader) SourceName() string {
	base := filepath.Base(r.filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadTable reads the file and types every column
func (r *DataReader) ReadTable(ctx context.Context) (*table.Table, error) {
	raw, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return r.BuildTable(ctx, raw)
}

// ReadData reads the header row and data rows as raw text
func (r *DataReader) ReadData() (*RawData, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		file, err := os.Open(r.filePath)
		if err != nil {
			return nil, errors.SourceError(r.filePath, err)
		}
		defer file.Close()
		return r.ReadCSV(file)
	case "xlsx":
		return r.readExcelData()
	}
	return nil, errors.WithCode(errors.CodeUnsupportedMedia,
		fmt.Errorf("%w: %s", core.ErrUnsupportedSource, filepath.Ext(r.filePath)))
}

func (r *DataReader) readExcelData() (*RawData, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.SourceError(r.filePath, err)
	}
	defer f.Close()
	return r.readWorkbook(f, start)
}

// ReadWorkbook reads an already opened workbook stream, such as an upload
func (r *DataReader) ReadWorkbook(in io.Reader) (*RawData, error) {
	start := time.Now()
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, errors.SourceError(r.filePath, err)
	}
	defer f.Close()
	return r.readWorkbook(f, start)
}

func (r *DataReader) readWorkbook(f *excelize.File, start time.Time) (*RawData, error) {
	sheet := r.config.SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		// fall back to the first sheet when the configured one is absent
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.SourceError(r.filePath, core.ErrEmptySource)
		}
		r.logger.Warn("sheet %q not found, reading %q", sheet, sheets[0])
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.SourceError(r.filePath, fmt.Errorf("failed to read %s: %w", sheet, err))
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// ReadCSV reads delimited text from in
func (r *DataReader) ReadCSV(in io.Reader) (*RawData, error) {
	reader := csv.NewReader(in)
	reader.Comma = r.config.Delimiter
	reader.FieldsPerRecord = -1

	start := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.SourceError(r.filePath, err)
	}
	r.logger.Debug("CSV read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows splits off the header row. A file with a header and no data
// rows is a valid zero-row table.
func (r *DataReader) processRows(rows [][]string) (*RawData, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.SourceError(r.filePath, core.ErrEmptySource)
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimPrefix(strings.TrimSpace(header), "\ufeff")
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("Column_%d", i+1)
		}
	}

	data := &RawData{Headers: headers, Rows: rows[1:]}
	r.logger.Debug("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(data.Rows))
	return data, nil
}

// BuildTable infers each column's type and coerces its cells
func (r *DataReader) BuildTable(ctx context.Context, raw *RawData) (*table.Table, error) {
	columns := make([]table.Column, len(raw.Headers))
	for i, name := range raw.Headers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		columns[i] = r.coercer.CoerceColumn(name, raw.column(i))
		r.logger.Trace("column %q typed as %s", name, columns[i].Type)
	}

	t, err := table.New(columns...)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return t, nil
}
