package controller

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	m "github.com/mouse-blink/docgenie/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const actionPrompt = "[a]ccept, [s]kip, [c]ontext, [q]uit? "

// SimpleUI implements UI using cobra Command's output and line prompts on its
// input.
type SimpleUI struct {
	cmd      *cobra.Command
	progress progress
	lines    chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, progress: progress{out: cmd.ErrOrStderr()}}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {
	s.progress.finish()
}

// DisplayMessage prints a single informational line.
func (s *SimpleUI) DisplayMessage(format string, args ...any) {
	s.printf(format+"\n", args...)
}

// DisplayFindings lists the functions that will get a doc comment.
func (s *SimpleUI) DisplayFindings(findings []m.Finding) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Function", "Line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	files := make(map[m.Path]struct{})

	for _, f := range findings {
		files[f.FilePath] = struct{}{}
		table.Append([]string{string(f.FilePath), f.FunctionName, fmt.Sprintf("%d", f.StartLine)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		fmt.Sprintf("%d", len(findings)),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
}

// StartProgress shows a progress bar on stderr.
func (s *SimpleUI) StartProgress(total int, description string) {
	s.progress.start(total, description, false)
}

// AdvanceProgress moves the progress bar by one. Safe for concurrent use.
func (s *SimpleUI) AdvanceProgress() {
	s.progress.advance()
}

// FinishProgress completes the progress bar.
func (s *SimpleUI) FinishProgress() {
	s.progress.finish()
}

// DisplayProposal prints the proposed change as a unified diff.
func (s *SimpleUI) DisplayProposal(p Proposal) {
	s.printf("\n[%d/%d] %s in %s:%d\n", p.Index, p.Total, p.Finding.FunctionName, p.Finding.FilePath, p.Line)
	s.printf("%s", Preview(p))
}

// PromptAction reads the operator's choice from the command input. End of
// input counts as quit.
func (s *SimpleUI) PromptAction(ctx context.Context, _ Proposal) (Action, error) {
	for {
		s.printf("%s", actionPrompt)

		text, err := s.readLine(ctx)
		if errors.Is(err, io.EOF) {
			s.printf("\n")

			return ActionQuit, nil
		}

		if err != nil {
			return ActionQuit, err
		}

		if action, ok := parseAction(text); ok {
			return action, nil
		}

		s.printf("unknown choice %q\n", strings.TrimSpace(text))
	}
}

// DisplayContext prints the lines around the anchor.
func (s *SimpleUI) DisplayContext(p Proposal) {
	s.printf("%s\n", strings.Join(contextWindow(p), "\n"))
}

// DisplayFailure reports a function whose doc comment could not be generated.
func (s *SimpleUI) DisplayFailure(f m.Finding) {
	s.printf("skipping %s in %s:%d: %v\n", f.FunctionName, f.FilePath, f.StartLine, f.Err)
}

// DisplayEditError reports an accepted doc comment that could not be applied.
func (s *SimpleUI) DisplayEditError(f m.Finding, err error) {
	s.printf("could not apply doc comment for %s: %v\n", f.FunctionName, err)
}

// DisplayReviewSummary prints what the review did.
func (s *SimpleUI) DisplayReviewSummary(summary m.ReviewSummary) {
	if summary.Aborted {
		s.printf("\nReview stopped after %d of %d functions.\n", summary.Processed, summary.Total)
	} else {
		s.printf("\nReviewed %d functions.\n", summary.Processed)
	}

	s.printf("Accepted %d, skipped %d, failed %d; %d files modified.\n",
		summary.Accepted, summary.Skipped, summary.Failed, len(summary.ModifiedFiles))
}

// DisplayCoverage prints the coverage report as a table, or encoded in one of
// the other report formats.
func (s *SimpleUI) DisplayCoverage(report m.CoverageReport, format string) error {
	if NormalizeFormat(format) != FormatTable {
		return WriteReport(s.cmd.OutOrStdout(), report, format)
	}

	s.printf("\n%s", coverageTable(report))

	if missing := undocumentedTable(report); missing != "" {
		s.printf("\nUndocumented functions:\n\n%s", missing)
	}

	return nil
}

func (s *SimpleUI) readLine(ctx context.Context) (string, error) {
	if s.lines == nil {
		s.lines = make(chan lineResult)

		go func(r *bufio.Reader) {
			for {
				text, err := r.ReadString('\n')
				if err != nil && text != "" {
					err = nil
				}

				s.lines <- lineResult{text: text, err: err}

				if err != nil {
					close(s.lines)

					return
				}
			}
		}(bufio.NewReader(s.cmd.InOrStdin()))
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}

		return res.text, res.err
	}
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func parseAction(text string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "a", "accept", "y", "yes":
		return ActionAccept, true
	case "s", "skip", "n", "no":
		return ActionSkip, true
	case "c", "context":
		return ActionContext, true
	case "q", "quit":
		return ActionQuit, true
	default:
		return 0, false
	}
}

func coverageTable(report m.CoverageReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Functions", "Documented", "Coverage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, fc := range report.PerFile {
		table.Append([]string{
			string(fc.FilePath),
			fmt.Sprintf("%d", fc.TotalFunctions),
			fmt.Sprintf("%d", fc.DocumentedFunctions),
			fmt.Sprintf("%.2f%%", fc.CoveragePercent()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", report.TotalFiles),
		fmt.Sprintf("%d", report.TotalFunctions),
		fmt.Sprintf("%d", report.DocumentedFunctions),
		fmt.Sprintf("%.2f%%", report.CoveragePercent),
	})

	table.Render()

	return tableBuffer.String()
}

func undocumentedTable(report m.CoverageReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Function", "Line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	rows := 0

	for _, fc := range report.PerFile {
		for _, rec := range fc.Undocumented {
			table.Append([]string{string(fc.FilePath), rec.Name, fmt.Sprintf("%d", rec.StartLine)})

			rows++
		}
	}

	if rows == 0 {
		return ""
	}

	table.Render()

	return tableBuffer.String()
}
