package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	m "github.com/mouse-blink/docgenie/internal/model"
)

// Report formats understood by WriteReport.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// NormalizeFormat maps format aliases to their canonical name.
func NormalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatTable:
		return FormatTable
	case "md":
		return FormatMarkdown
	default:
		return f
	}
}

// WriteReport encodes report to w in the json, markdown or html format.
// Tables are rendered by the UI implementations.
func WriteReport(w io.Writer, report m.CoverageReport, format string) error {
	switch NormalizeFormat(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case FormatMarkdown:
		_, err := io.WriteString(w, MarkdownReport(report))

		return err
	case FormatHTML:
		return writeHTMLReport(w, report)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// MarkdownReport renders report as a GitHub-flavoured markdown document.
func MarkdownReport(report m.CoverageReport) string {
	var b strings.Builder

	b.WriteString("# Documentation coverage\n\n")
	fmt.Fprintf(&b, "**%.2f%%** of functions documented (%d/%d in %d files).\n\n",
		report.CoveragePercent, report.DocumentedFunctions, report.TotalFunctions, report.TotalFiles)

	if len(report.PerFile) == 0 {
		return b.String()
	}

	b.WriteString("| File | Functions | Documented | Coverage |\n")
	b.WriteString("|---|---:|---:|---:|\n")

	for _, fc := range report.PerFile {
		fmt.Fprintf(&b, "| %s | %d | %d | %.2f%% |\n",
			escapeCell(string(fc.FilePath)), fc.TotalFunctions, fc.DocumentedFunctions, fc.CoveragePercent())
	}

	missing := false

	for _, fc := range report.PerFile {
		if len(fc.Undocumented) == 0 {
			continue
		}

		if !missing {
			b.WriteString("\n## Undocumented functions\n")

			missing = true
		}

		fmt.Fprintf(&b, "\n### %s\n\n", fc.FilePath)

		for _, rec := range fc.Undocumented {
			fmt.Fprintf(&b, "- `%s` (line %d)\n", rec.Name, rec.StartLine)
		}
	}

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Documentation coverage</title>
</head>
<body>
%s</body>
</html>
`

func writeHTMLReport(w io.Writer, report m.CoverageReport) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(MarkdownReport(report)), &body); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}

	_, err := fmt.Fprintf(w, htmlPage, body.String())

	return err
}
