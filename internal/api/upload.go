package api

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"factcheck/adapters/excel"
	"factcheck/domain/table"
	"factcheck/internal/errors"
)

// uploadSource serves a table from an uploaded CSV or XLSX body
type uploadSource struct {
	filename string
	data     []byte
	reader   *excel.DataReader
}

func newUploadSource(filename string, data []byte, reader *excel.DataReader) (*uploadSource, error) {
	if excel.FileType(filename) == "" {
		return nil, errors.UnsupportedMedia(filepath.Ext(filename))
	}
	return &uploadSource{filename: filename, data: data, reader: reader}, nil
}

func (s *uploadSource) SourceName() string {
	base := filepath.Base(s.filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *uploadSource) ReadTable(ctx context.Context) (*table.Table, error) {
	var (
		raw *excel.RawData
		err error
	)
	if excel.FileType(s.filename) == "xlsx" {
		raw, err = s.reader.ReadWorkbook(bytes.NewReader(s.data))
	} else {
		raw, err = s.reader.ReadCSV(bytes.NewReader(s.data))
	}
	if err != nil {
		return nil, err
	}
	return s.reader.BuildTable(ctx, raw)
}
