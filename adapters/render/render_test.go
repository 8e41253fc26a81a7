package render

import (
	"strings"
	"testing"

	"factcheck/domain/profile"
	"factcheck/internal"
	"factcheck/internal/profiler"
	"factcheck/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioReport(t *testing.T) *profile.Report {
	t.Helper()
	report, err := profiler.NewAnalyzer(internal.Discard).Analyze(testkit.ScenarioA())
	require.NoError(t, err)
	return report
}

func TestMarkdown(t *testing.T) {
	out := Markdown("scenario", scenarioReport(t))
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Equal(t, "# Fact checks: scenario", lines[0])
	assert.Equal(t, "| S_No | Variable_Name | D_Type | No_of_Non_Missing_Values | No_of_Missing_Values | Missing_% | Distinct_Values | Min | Max | Mean | Median | Mode |", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "| --- |"))
	assert.True(t, strings.HasPrefix(lines[5], "| 2 | B | String | 3 | 1 | 25 | 3 | a | c | NA | NA |"), lines[5])
	assert.Contains(t, out, "2 variables profiled.")
}

func TestMarkdownEscapesPipesAndDiagnostics(t *testing.T) {
	report := &profile.Report{
		Columns: []string{profile.ColVariableName, profile.ColMode},
		Rows:    [][]profile.Cell{{profile.TextCell("a|b"), profile.TextCell("x\ny")}},
		Diagnostics: []profile.Diagnostic{
			{Variable: "a|b", Statistic: profile.ColMean, Message: "undefined"},
		},
	}
	out := Markdown("t", report)

	assert.Contains(t, out, `| a\|b | x y |`)
	assert.Contains(t, out, "## Diagnostics")
	assert.Contains(t, out, "- Mean of a|b: undefined")
}

func TestMarkdownNilReport(t *testing.T) {
	assert.Contains(t, Markdown("none", nil), "_empty report_")
}

func TestHTML(t *testing.T) {
	page := string(HTML("scenario", scenarioReport(t)))

	assert.Contains(t, page, "<title>Fact checks: scenario</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<th>Variable_Name</th>")
	assert.Contains(t, page, "<td>NA</td>")
}

func TestHTMLEscapesContent(t *testing.T) {
	report := &profile.Report{
		Columns: []string{profile.ColVariableName},
		Rows:    [][]profile.Cell{{profile.TextCell("<script>alert(1)</script>")}},
	}
	page := string(HTML("<b>", report))

	assert.NotContains(t, page, "<script>")
	assert.NotContains(t, page, "<b>")
}
