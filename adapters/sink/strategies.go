package sink

import (
	"fmt"

	"factcheck/adapters/delimited"
	"factcheck/adapters/excel"
	"factcheck/internal/config"
	"factcheck/ports"
)

// FromConfig builds the strategy list named by cfg.Sinks, in order
func FromConfig(cfg config.ReportConfig) ([]ports.ReportSink, error) {
	workbook := excel.WorkbookConfig{
		SheetName:  cfg.SheetName,
		StartCell:  cfg.StartCell,
		TableStyle: cfg.TableStyle,
	}

	strategies := make([]ports.ReportSink, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkStyled:
			strategies = append(strategies, excel.NewStyledWorkbookSink(workbook))
		case config.SinkPlain:
			strategies = append(strategies, excel.NewPlainWorkbookSink(workbook))
		case config.SinkCSV:
			strategies = append(strategies, delimited.NewSink(cfg.CSVDelimiter))
		default:
			return nil, fmt.Errorf("unknown sink strategy %q", name)
		}
	}
	return strategies, nil
}
