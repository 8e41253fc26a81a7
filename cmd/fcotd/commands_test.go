package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"factcheck/domain/core"
	"factcheck/domain/run"
	"factcheck/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProfileCommandWritesReports(t *testing.T) {
	outDir := t.TempDir()
	a := writeInput(t, "members.csv", testkit.CSVFixture)
	b := writeInput(t, "scores.csv", "score\n1\n2\n\n")

	out, err := execute(t, "profile", a, b, "--out", outDir, "--parallel", "2")
	require.NoError(t, err, out)

	assert.Contains(t, out, "members: 5 variables")
	assert.Contains(t, out, "scores: 1 variables")
	assert.FileExists(t, filepath.Join(outDir, "members_fact_checks.xlsx"))
	assert.FileExists(t, filepath.Join(outDir, "scores_fact_checks.xlsx"))
}

func TestProfileCommandPrintAndJSON(t *testing.T) {
	in := writeInput(t, "members.csv", testkit.CSVFixture)

	out, err := execute(t, "profile", in, "--no-save", "--print", "--name", "club")
	require.NoError(t, err)
	assert.Contains(t, out, "# Fact checks: club")
	assert.Contains(t, out, "not saved")

	out, err = execute(t, "profile", in, "--no-save", "--json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "members", decoded["source"])
}

func TestProfileCommandReportsFailures(t *testing.T) {
	good := writeInput(t, "good.csv", "x\n1\n")
	missing := filepath.Join(t.TempDir(), "missing.csv")

	out, err := execute(t, "profile", good, missing, "--no-save")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 sources failed")
	assert.Contains(t, out, "good: 1 variables")
	assert.Contains(t, out, "missing:")
}

func TestProfileCommandNameNeedsSingleFile(t *testing.T) {
	_, err := execute(t, "profile", "a.csv", "b.csv", "--name", "x")
	assert.Error(t, err)
}

func TestProfileCommandRejectsCollidingReportNames(t *testing.T) {
	outDir := t.TempDir()
	a := writeInput(t, "members.csv", testkit.CSVFixture)
	b := writeInput(t, "Members.csv", "score\n1\n2\n")

	_, err := execute(t, "profile", a, b, "--out", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "members_fact_checks")
	assert.NoFileExists(t, filepath.Join(outDir, "members_fact_checks.xlsx"))

	out, err := execute(t, "profile", a, b, "--no-save")
	require.NoError(t, err, out)
}

func TestSchemaCommand(t *testing.T) {
	in := writeInput(t, "members.csv", testkit.CSVFixture)

	out, err := execute(t, "schema", in)
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows, 5 columns")
	assert.Contains(t, out, "numeric:     id, score")
	assert.Contains(t, out, "non-numeric: name, active, joined")
}

func TestSQLCommandRequiresDatabase(t *testing.T) {
	_, err := execute(t, "sql", "--query", "SELECT 1")
	assert.Error(t, err)

	_, err = execute(t, "sql")
	assert.Error(t, err)
}

func TestHistoryNeedsDatabase(t *testing.T) {
	_, err := execute(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestRecordFlagNeedsDatabase(t *testing.T) {
	in := writeInput(t, "members.csv", testkit.CSVFixture)
	_, err := execute(t, "profile", in, "--no-save", "--record")
	require.Error(t, err)
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printHistory(&out, nil, false))
	assert.Equal(t, "no runs recorded\n", out.String())

	out.Reset()
	runs := []run.Record{{
		ID:          "run-1",
		Source:      "members",
		Rows:        4,
		Columns:     5,
		Fingerprint: core.ReportHash("0123456789abcdef0123"),
		OutputPath:  "out/members_fact_checks.xlsx",
		CompletedAt: core.NewTimestamp(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)),
	}}
	require.NoError(t, printHistory(&out, runs, false))
	line := out.String()
	assert.Contains(t, line, "2024-03-01 09:30:00  run-1  members")
	assert.Contains(t, line, "0123456789ab")
	assert.Contains(t, line, "out/members_fact_checks.xlsx")
}
