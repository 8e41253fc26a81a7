package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"factcheck/domain/core"
	"factcheck/domain/profile"
	"factcheck/internal"
	"factcheck/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSink struct {
	mock.Mock
	name string
	ext  string
}

func (m *MockSink) Name() string      { return m.name }
func (m *MockSink) Extension() string { return m.ext }

func (m *MockSink) Persist(ctx context.Context, report *profile.Report, path string) error {
	args := m.Called(ctx, report, path)
	return args.Error(0)
}

func newMockSink(name, ext string) *MockSink {
	return &MockSink{name: name, ext: ext}
}

// writes marks a successful persist by creating the temp file
func writes(content string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		_ = os.WriteFile(args.String(2), []byte(content), 0o644)
	}
}

func report() *profile.Report {
	return &profile.Report{Columns: profile.Schema()}
}

func TestDestinationPath(t *testing.T) {
	tests := []struct {
		dest Destination
		ext  string
		want string
	}{
		{Destination{Dir: "out", Name: "sales"}, "xlsx", filepath.Join("out", "sales_fact_checks.xlsx")},
		{Destination{Dir: "out"}, "csv", filepath.Join("out", "data_fact_checks.csv")},
		{Destination{Name: "  "}, "csv", filepath.Join(".", "data_fact_checks.csv")},
		{Destination{Dir: "o", Name: "../x/y"}, "csv", filepath.Join("o", ".._x_y_fact_checks.csv")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dest.Path(tt.ext))
	}
}

func TestChainFirstStrategySucceeds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	r := report()

	styled := newMockSink("styled", "xlsx")
	styled.On("Persist", mock.Anything, r, mock.AnythingOfType("string")).Run(writes("xlsx")).Return(nil)
	plain := newMockSink("plain", "xlsx")

	chain := NewChain(internal.Discard, styled, plain)
	outcome, err := chain.Persist(context.Background(), r, Destination{Dir: dir, Name: "sales"})
	require.NoError(t, err)

	assert.True(t, outcome.Succeeded())
	assert.Equal(t, "styled", outcome.Strategy)
	assert.Equal(t, filepath.Join(dir, "sales_fact_checks.xlsx"), outcome.Path)
	assert.Len(t, outcome.Attempts, 1)
	assert.Contains(t, outcome.Message, "using styled")

	data, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))

	styled.AssertExpectations(t)
	plain.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
}

func TestChainFallsBackAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	r := report()

	styled := newMockSink("styled", "xlsx")
	styled.On("Persist", mock.Anything, r, mock.AnythingOfType("string")).
		Run(writes("partial")).Return(errors.New("style engine exploded"))
	csv := newMockSink("csv", "csv")
	csv.On("Persist", mock.Anything, r, mock.AnythingOfType("string")).Run(writes("a,b\n")).Return(nil)

	outcome, err := NewChain(internal.Discard, styled, csv).Persist(context.Background(), r, Destination{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "csv", outcome.Strategy)
	assert.Equal(t, filepath.Join(dir, "data_fact_checks.csv"), outcome.Path)
	require.Len(t, outcome.Attempts, 2)
	assert.Contains(t, outcome.Attempts[0].Error, "style engine exploded")
	assert.Empty(t, outcome.Attempts[1].Error)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data_fact_checks.csv", entries[0].Name())
}

func TestChainAllFail(t *testing.T) {
	r := report()
	a := newMockSink("styled", "xlsx")
	a.On("Persist", mock.Anything, r, mock.Anything).Return(errors.New("disk full"))
	b := newMockSink("csv", "csv")
	b.On("Persist", mock.Anything, r, mock.Anything).Return(errors.New("disk still full"))

	outcome, err := NewChain(internal.Discard, a, b).Persist(context.Background(), r, Destination{Dir: t.TempDir()})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAllSinksFailed)
	assert.True(t, core.IsSinkError(err))
	assert.False(t, outcome.Succeeded())
	assert.Contains(t, outcome.Message, "all 2 sink strategies failed")
	assert.Contains(t, outcome.Message, "disk still full")
}

func TestChainWithoutStrategies(t *testing.T) {
	_, err := NewChain(internal.Discard).Persist(context.Background(), report(), Destination{Dir: t.TempDir()})
	assert.ErrorIs(t, err, core.ErrNoSinkStrategies)
}

func TestChainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newMockSink("styled", "xlsx")

	_, err := NewChain(internal.Discard, s).Persist(ctx, report(), Destination{Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	s.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
}

func TestFromConfigBuildsRealChain(t *testing.T) {
	cfg := config.ReportConfig{
		SheetName:    "FCOTD",
		StartCell:    "B2",
		TableStyle:   "Table Style Light 10",
		Sinks:        []string{config.SinkStyled, config.SinkPlain, config.SinkCSV},
		CSVDelimiter: ',',
	}
	strategies, err := FromConfig(cfg)
	require.NoError(t, err)

	chain := NewChain(internal.Discard, strategies...)
	assert.Equal(t, []string{"styled-workbook", "plain-workbook", "delimited-text"}, chain.Strategies())

	outcome, err := chain.Persist(context.Background(), report(), Destination{Dir: t.TempDir(), Name: "sales"})
	require.NoError(t, err)
	assert.Equal(t, "styled-workbook", outcome.Strategy)
	assert.FileExists(t, outcome.Path)

	_, err = FromConfig(config.ReportConfig{Sinks: []string{"pdf"}})
	assert.Error(t, err)
}
