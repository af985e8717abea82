package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/docgenie/internal/model"
	"golang.org/x/term"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// TUI implements UI using Bubble Tea for the interactive review.
type TUI struct {
	input    io.Reader
	output   io.Writer
	progress progress
	width    int
	// run is swapped in tests to drive the picker without a terminal.
	run func(ctx context.Context, model tea.Model) (tea.Model, error)
}

// NewTUI creates a new TUI reading keys from input and drawing to output.
func NewTUI(input io.Reader, output io.Writer) *TUI {
	t := &TUI{
		input:    input,
		output:   output,
		progress: progress{out: output},
		width:    defaultWidth,
	}

	t.run = func(ctx context.Context, model tea.Model) (tea.Model, error) {
		program := tea.NewProgram(model,
			tea.WithContext(ctx),
			tea.WithInput(t.input),
			tea.WithOutput(t.output),
		)

		return program.Run()
	}

	return t
}

// Start initializes the UI.
func (t *TUI) Start(_ ...StartOption) error {
	if f, ok := t.output.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			t.width = width
		}
	}

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {
	t.progress.finish()
}

// DisplayMessage prints a single informational line.
func (t *TUI) DisplayMessage(format string, args ...any) {
	t.println(fmt.Sprintf(format, args...))
}

// DisplayFindings lists the functions that will get a doc comment.
func (t *TUI) DisplayFindings(findings []m.Finding) {
	files := make(map[m.Path]struct{})
	for _, f := range findings {
		files[f.FilePath] = struct{}{}
	}

	t.println(titleStyle.Render(fmt.Sprintf("%d undocumented functions in %d files", len(findings), len(files))))

	for _, f := range findings {
		t.println(fmt.Sprintf("  %s %s", f.FunctionName, dimStyle.Render(fmt.Sprintf("%s:%d", f.FilePath, f.StartLine))))
	}
}

// StartProgress shows a coloured progress bar.
func (t *TUI) StartProgress(total int, description string) {
	t.progress.start(total, description, true)
}

// AdvanceProgress moves the progress bar by one. Safe for concurrent use.
func (t *TUI) AdvanceProgress() {
	t.progress.advance()
}

// FinishProgress completes the progress bar.
func (t *TUI) FinishProgress() {
	t.progress.finish()
}

// DisplayProposal prints the proposed change as a coloured unified diff.
func (t *TUI) DisplayProposal(p Proposal) {
	t.println("")
	t.println(titleStyle.Render(fmt.Sprintf("[%d/%d] %s", p.Index, p.Total, p.Finding.FunctionName)) +
		" " + dimStyle.Render(fmt.Sprintf("%s:%d", p.Finding.FilePath, p.Line)))
	t.println(colorizeDiff(Preview(p)))
}

// PromptAction shows the action picker and returns the selected action.
func (t *TUI) PromptAction(ctx context.Context, p Proposal) (Action, error) {
	final, err := t.run(ctx, newReviewModel(p, t.width))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ActionQuit, ctxErr
	}

	if err != nil {
		return ActionQuit, err
	}

	rm, ok := final.(reviewModel)
	if !ok || !rm.chosen {
		return ActionQuit, nil
	}

	return rm.choice, nil
}

// DisplayContext prints the lines around the anchor with the anchor
// highlighted.
func (t *TUI) DisplayContext(p Proposal) {
	for _, line := range contextWindow(p) {
		if strings.HasPrefix(line, ">") {
			t.println(warnStyle.Render(line))
			continue
		}

		t.println(dimStyle.Render(line))
	}
}

// DisplayFailure reports a function whose doc comment could not be generated.
func (t *TUI) DisplayFailure(f m.Finding) {
	t.println(errorStyle.Render("✗ "+f.FunctionName) + " " +
		dimStyle.Render(fmt.Sprintf("%s:%d", f.FilePath, f.StartLine)) + " " + f.Err.Error())
}

// DisplayEditError reports an accepted doc comment that could not be applied.
func (t *TUI) DisplayEditError(f m.Finding, err error) {
	t.println(errorStyle.Render("✗ could not apply doc comment for "+f.FunctionName) + " " + err.Error())
}

// DisplayReviewSummary prints what the review did.
func (t *TUI) DisplayReviewSummary(summary m.ReviewSummary) {
	t.println("")

	if summary.Aborted {
		t.println(warnStyle.Render(fmt.Sprintf("Review stopped after %d of %d functions", summary.Processed, summary.Total)))
	} else {
		t.println(titleStyle.Render(fmt.Sprintf("Reviewed %d functions", summary.Processed)))
	}

	t.println(fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		addedStyle.Render("accepted"), summary.Accepted,
		dimStyle.Render("skipped"), summary.Skipped,
		removedStyle.Render("failed"), summary.Failed,
		hunkStyle.Render("files modified"), len(summary.ModifiedFiles)))
}

// DisplayCoverage prints the coverage table with a coloured headline, or
// the report encoded in one of the other formats.
func (t *TUI) DisplayCoverage(report m.CoverageReport, format string) error {
	if NormalizeFormat(format) != FormatTable {
		return WriteReport(t.output, report, format)
	}

	t.println(coverageStyle(report.CoveragePercent).Render(
		fmt.Sprintf("%.2f%% documented", report.CoveragePercent)) +
		dimStyle.Render(fmt.Sprintf(" (%d/%d functions, %d files)",
			report.DocumentedFunctions, report.TotalFunctions, report.TotalFiles)))
	t.println("")
	_, _ = fmt.Fprint(t.output, coverageTable(report))

	if missing := undocumentedTable(report); missing != "" {
		t.println("")
		t.println(titleStyle.Render("Undocumented functions"))
		_, _ = fmt.Fprint(t.output, missing)
	}

	return nil
}

func (t *TUI) println(s string) {
	_, _ = fmt.Fprintln(t.output, s)
}

func coverageStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return addedStyle.Bold(true)
	case pct >= 50:
		return warnStyle.Bold(true)
	default:
		return errorStyle
	}
}

func colorizeDiff(diff string) string {
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = dimStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}
