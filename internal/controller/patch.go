package controller

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const previewContext = 3

// Preview renders the proposal as a unified diff against the file as it is
// now. Hunk ranges use real file line numbers.
func Preview(p Proposal) string {
	path := string(p.Finding.FilePath)

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(p.Lines, "\n")),
		B:        difflib.SplitLines(strings.Join(insertBefore(p.Lines, p.Line, p.Comment), "\n")),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  previewContext,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}

	return text
}

// insertBefore returns a copy of lines with block inserted before 1-based
// line at. Out of range positions are clamped.
func insertBefore(lines []string, at int, block []string) []string {
	idx := min(max(at-1, 0), len(lines))

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:idx]...)
	out = append(out, block...)
	out = append(out, lines[idx:]...)

	return out
}

// contextWindow returns the numbered lines within p.ContextLines of p.Line.
// The anchor line is marked with '>'.
func contextWindow(p Proposal) []string {
	radius := max(p.ContextLines, 0)
	from := max(p.Line-radius, 1)
	to := min(p.Line+radius, len(p.Lines))

	out := make([]string, 0, to-from+1)

	for n := from; n <= to; n++ {
		marker := " "
		if n == p.Line {
			marker = ">"
		}

		out = append(out, fmt.Sprintf("%s%5d | %s", marker, n, p.Lines[n-1]))
	}

	return out
}
