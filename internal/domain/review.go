package domain

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/mouse-blink/docgenie/internal/adapter"
	"github.com/mouse-blink/docgenie/internal/controller"
	m "github.com/mouse-blink/docgenie/internal/model"
)

const defaultReviewContext = 5

// ReviewOptions tunes a Reviewer.
type ReviewOptions struct {
	// AutoAccept applies every proposal without prompting.
	AutoAccept bool
	// DryRun shows proposals and never writes.
	DryRun bool
	// ContextLines is the number of lines shown around the anchor on request.
	ContextLines int
}

// Reviewer walks generated findings with the operator and applies the
// accepted doc comments.
type Reviewer struct {
	fs     adapter.SourceFSAdapter
	ui     controller.UI
	logger *slog.Logger
	opts   ReviewOptions
}

// NewReviewer creates a Reviewer.
func NewReviewer(fs adapter.SourceFSAdapter, ui controller.UI, logger *slog.Logger, opts ReviewOptions) *Reviewer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.ContextLines <= 0 {
		opts.ContextLines = defaultReviewContext
	}

	return &Reviewer{fs: fs, ui: ui, logger: logger, opts: opts}
}

// Review processes findings ordered by file and line. Edits applied before a
// quit or cancellation stay on disk.
func (r *Reviewer) Review(ctx context.Context, findings []m.Finding) m.ReviewSummary {
	queue := orderFindings(findings)
	tracker := NewLineTracker()
	summary := m.ReviewSummary{Total: len(queue), ModifiedFiles: []m.Path{}}

	for i, f := range queue {
		if ctx.Err() != nil {
			summary.Aborted = true

			break
		}

		if f.Failed() {
			r.ui.DisplayFailure(f)
			summary.Failed++
			summary.Processed++
			summary.Errors = append(summary.Errors, f.Err)

			continue
		}

		p, err := r.proposal(f, i+1, len(queue), tracker)
		if err != nil {
			r.fail(&summary, f, &m.EditApplyError{Path: f.FilePath, Line: tracker.Adjust(f.FilePath, f.AnchorLine), Err: err})

			continue
		}

		r.ui.DisplayProposal(p)

		action, err := r.decide(ctx, p)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				summary.Errors = append(summary.Errors, err)
			}

			summary.Aborted = true

			break
		}

		switch action {
		case controller.ActionQuit:
			summary.Aborted = true
		case controller.ActionAccept:
			r.apply(&summary, tracker, f, p.Line)
		default:
			summary.Skipped++
			summary.Processed++
		}

		if summary.Aborted {
			break
		}
	}

	return summary
}

func (r *Reviewer) decide(ctx context.Context, p controller.Proposal) (controller.Action, error) {
	if r.opts.DryRun {
		return controller.ActionSkip, nil
	}

	if r.opts.AutoAccept {
		return controller.ActionAccept, nil
	}

	for {
		action, err := r.ui.PromptAction(ctx, p)
		if err != nil {
			return controller.ActionQuit, err
		}

		if action != controller.ActionContext {
			return action, nil
		}

		r.ui.DisplayContext(p)
	}
}

func (r *Reviewer) proposal(f m.Finding, index, total int, tracker *LineTracker) (controller.Proposal, error) {
	lines, err := r.fs.ReadLines(f.FilePath)
	if err != nil {
		return controller.Proposal{}, err
	}

	line := tracker.Adjust(f.FilePath, f.AnchorLine)

	indent := ""
	if line >= 1 && line <= len(lines) {
		indent = leadingIndent(lines[line-1])
	}

	comment := commentLines(f.ProposedDocComment)
	indented := make([]string, len(comment))

	for i, c := range comment {
		indented[i] = indent + c
	}

	return controller.Proposal{
		Index:        index,
		Total:        total,
		Finding:      f,
		Line:         line,
		Lines:        lines,
		Comment:      indented,
		ContextLines: r.opts.ContextLines,
	}, nil
}

func (r *Reviewer) apply(summary *m.ReviewSummary, tracker *LineTracker, f m.Finding, line int) {
	comment := commentLines(f.ProposedDocComment)

	if err := r.fs.InsertLines(f.FilePath, line, f.AnchorText, comment); err != nil {
		r.fail(summary, f, &m.EditApplyError{Path: f.FilePath, Line: line, Err: err})

		return
	}

	tracker.Record(f.FilePath, len(comment))

	summary.Accepted++
	summary.Processed++

	if !slices.Contains(summary.ModifiedFiles, f.FilePath) {
		summary.ModifiedFiles = append(summary.ModifiedFiles, f.FilePath)
	}

	r.logger.Debug("doc comment inserted", "path", f.FilePath, "function", f.FunctionName, "line", line)
}

func (r *Reviewer) fail(summary *m.ReviewSummary, f m.Finding, err error) {
	r.logger.Warn("edit failed", "path", f.FilePath, "function", f.FunctionName, "error", err)
	r.ui.DisplayEditError(f, err)

	summary.Failed++
	summary.Processed++
	summary.Errors = append(summary.Errors, err)
}

// orderFindings groups findings by file in order of first appearance and
// sorts each group by ascending start line.
func orderFindings(findings []m.Finding) []m.Finding {
	rank := make(map[m.Path]int)

	for _, f := range findings {
		if _, ok := rank[f.FilePath]; !ok {
			rank[f.FilePath] = len(rank)
		}
	}

	out := slices.Clone(findings)
	slices.SortStableFunc(out, func(a, b m.Finding) int {
		if d := rank[a.FilePath] - rank[b.FilePath]; d != 0 {
			return d
		}

		if d := a.StartLine - b.StartLine; d != 0 {
			return d
		}

		return a.AnchorLine - b.AnchorLine
	})

	return out
}

func commentLines(comment string) []string {
	return strings.Split(strings.TrimRight(comment, "\n"), "\n")
}

func leadingIndent(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
