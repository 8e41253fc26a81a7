package excel

import (
	"context"
	"path/filepath"
	"testing"

	"factcheck/domain/profile"
	"factcheck/internal/profiler"
	"factcheck/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func scenarioReport(t *testing.T) *profile.Report {
	t.Helper()
	report, err := profiler.NewAnalyzer(quietLogger()).Analyze(testkit.ScenarioA())
	require.NoError(t, err)
	return report
}

func TestStyledWorkbookSink(t *testing.T) {
	report := scenarioReport(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	sink := NewStyledWorkbookSink(DefaultWorkbookConfig())
	require.NoError(t, sink.Persist(context.Background(), report, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"FCOTD"}, f.GetSheetList())

	header, err := f.GetCellValue("FCOTD", "B2")
	require.NoError(t, err)
	assert.Equal(t, profile.ColSNo, header)

	last, err := f.GetCellValue("FCOTD", "M2")
	require.NoError(t, err)
	assert.Equal(t, profile.ColMode, last)

	name, _ := f.GetCellValue("FCOTD", "C4")
	assert.Equal(t, "B", name)
	mean, _ := f.GetCellValue("FCOTD", "K4")
	assert.Equal(t, profile.NAText, mean)

	tables, err := f.GetTables("FCOTD")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "B2:M4", tables[0].Range)
	assert.Equal(t, "TableStyleLight10", tables[0].StyleName)
}

func TestPlainWorkbookSink(t *testing.T) {
	report := scenarioReport(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	sink := NewPlainWorkbookSink(WorkbookConfig{})
	require.NoError(t, sink.Persist(context.Background(), report, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	tables, err := f.GetTables("FCOTD")
	require.NoError(t, err)
	assert.Empty(t, tables)

	rows, err := f.GetRows("FCOTD")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "A", rows[2][2])
}

func TestWorkbookSinkZeroRowReport(t *testing.T) {
	report, err := profiler.NewAnalyzer(quietLogger()).Analyze(testkit.Table())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, NewStyledWorkbookSink(DefaultWorkbookConfig()).Persist(context.Background(), report, path))
}

func TestWorkbookSinkRejectsBadStartCell(t *testing.T) {
	sink := NewPlainWorkbookSink(WorkbookConfig{StartCell: "not-a-cell"})
	err := sink.Persist(context.Background(), scenarioReport(t), filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestTableStyleName(t *testing.T) {
	assert.Equal(t, "TableStyleLight10", TableStyleName("Table Style Light 10"))
	assert.Equal(t, "TableStyleMedium2", TableStyleName("TableStyleMedium2"))
}
