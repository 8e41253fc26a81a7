// Package render turns a report into human-readable views: a markdown table
// for terminals and an HTML page for the web service.
package render

import (
	"fmt"
	stdhtml "html"
	"strings"

	"factcheck/domain/profile"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the report as a pipe table titled with the source name
func Markdown(title string, report *profile.Report) string {
	return markdownDocument(title, report, func(s string) string { return s })
}

// HTML renders the report as a complete HTML page. Cell text is escaped
// before markdown conversion so report content cannot inject markup.
func HTML(title string, report *profile.Report) []byte {
	md := markdownDocument(title, report, stdhtml.EscapeString)

	// no smartypants or math: cell values must come out verbatim
	p := parser.NewWithExtensions(parser.NoIntraEmphasis | parser.Tables | parser.SpaceHeadings)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Fact checks: " + title,
		Flags: html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func markdownDocument(title string, report *profile.Report, escape func(string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Fact checks: %s\n\n", escape(title))

	if report == nil || len(report.Columns) == 0 {
		b.WriteString("_empty report_\n")
		return b.String()
	}

	writeRow(&b, report.Columns, escape)
	sep := make([]string, len(report.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep, func(s string) string { return s })

	for _, rec := range report.Records()[1:] {
		writeRow(&b, rec, escape)
	}
	fmt.Fprintf(&b, "\n%d variables profiled.\n", report.Len())

	if len(report.Diagnostics) > 0 {
		b.WriteString("\n## Diagnostics\n\n")
		for _, d := range report.Diagnostics {
			fmt.Fprintf(&b, "- %s of %s: %s\n", d.Statistic, escape(d.Variable), escape(d.Message))
		}
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, escape func(string) string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(cellText(escape(c)))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// cellText keeps a cell on one table row and its pipes literal
func cellText(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
