// Package domain holds docgenie's core logic: diff parsing, function
// location, diff correlation, coverage aggregation and the review flow that
// ties them to a documentation generator.
package domain

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mouse-blink/docgenie/internal/adapter"
	"github.com/mouse-blink/docgenie/internal/controller"
	m "github.com/mouse-blink/docgenie/internal/model"
)

// ScanArgs holds the inputs of a change set scan.
type ScanArgs struct {
	Dir          m.Path
	Staged       bool
	ContextLines int
	Paths        []string
	AutoAccept   bool
	DryRun       bool
	Concurrency  int
	// Excludes are doublestar globs matched against repository-relative
	// paths in the diff.
	Excludes []string
}

// CoverageArgs holds the inputs of a coverage run.
type CoverageArgs struct {
	Root      m.Path
	Threshold float64
	Format    string
	// Output, when set, receives the report instead of the UI.
	Output   m.Path
	Excludes []string
	Workers  int
}

// Workflow defines the operations behind the docgenie commands.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) (m.ReviewSummary, error)
	Coverage(ctx context.Context, args CoverageArgs) (m.CoverageReport, error)
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	parser    adapter.SourceParser
	git       adapter.GitAdapter
	generator adapter.DocGenerator
	ui        controller.UI
	logger    *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
// generator may be nil for coverage-only use.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	parser adapter.SourceParser,
	git adapter.GitAdapter,
	generator adapter.DocGenerator,
	ui controller.UI,
	logger *slog.Logger,
) Workflow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &workflow{
		fsAdapter: fsAdapter,
		parser:    parser,
		git:       git,
		generator: generator,
		ui:        ui,
		logger:    logger,
	}
}

// Scan finds undocumented functions touched by the working tree or staged
// diff, generates doc comments for them and reviews the proposals.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.ReviewSummary, error) {
	if err := w.ui.Start(controller.WithScanMode()); err != nil {
		return m.ReviewSummary{}, err
	}
	defer w.ui.Close()

	root, err := w.git.RepoRoot(ctx, args.Dir)
	if err != nil {
		return m.ReviewSummary{}, err
	}

	raw, err := w.git.Diff(ctx, root, adapter.DiffOptions{
		Staged:       args.Staged,
		ContextLines: args.ContextLines,
		Paths:        args.Paths,
	})
	if err != nil {
		return m.ReviewSummary{}, err
	}

	scanner := NewDiffScanner(w.fsAdapter, w.parser, w.logger, args.Excludes)

	records, err := scanner.Scan(ctx, root, raw)
	if err != nil {
		return m.ReviewSummary{}, err
	}

	if len(records) == 0 {
		w.ui.DisplayMessage("No undocumented functions in the change set.")

		return m.ReviewSummary{ModifiedFiles: []m.Path{}}, nil
	}

	if w.generator == nil {
		return m.ReviewSummary{}, errors.New("no documentation generator configured")
	}

	findings := w.buildFindings(records)
	w.ui.DisplayFindings(findings)

	w.ui.StartProgress(len(findings), "Generating")
	findings = GenerateDocs(ctx, w.generator, findings, args.Concurrency, w.logger, w.ui.AdvanceProgress)
	w.ui.FinishProgress()

	reviewer := NewReviewer(w.fsAdapter, w.ui, w.logger, ReviewOptions{
		AutoAccept: args.AutoAccept,
		DryRun:     args.DryRun,
	})

	summary := reviewer.Review(ctx, findings)
	w.ui.DisplayReviewSummary(summary)

	w.logger.Info("review finished",
		"total", summary.Total,
		"accepted", summary.Accepted,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"aborted", summary.Aborted)

	return summary, nil
}

// buildFindings pairs records with their anchor line text as it reads now.
func (w *workflow) buildFindings(records []m.FunctionRecord) []m.Finding {
	lines := make(map[m.Path][]string)
	findings := make([]m.Finding, 0, len(records))

	for _, rec := range records {
		content, ok := lines[rec.FilePath]
		if !ok {
			var err error

			content, err = w.fsAdapter.ReadLines(rec.FilePath)
			if err != nil {
				w.logger.Warn("cannot read file", "path", rec.FilePath, "error", err)
			}

			lines[rec.FilePath] = content
		}

		anchor := ""
		if rec.AnchorLine >= 1 && rec.AnchorLine <= len(content) {
			anchor = content[rec.AnchorLine-1]
		}

		findings = append(findings, m.Finding{
			FilePath:       rec.FilePath,
			FunctionName:   rec.Name,
			StartLine:      rec.StartLine,
			AnchorLine:     rec.AnchorLine,
			AnchorText:     anchor,
			OriginalSource: rec.SourceSpan,
		})
	}

	return findings
}

// Coverage computes documentation coverage for args.Root, presents or writes
// the report and then applies the threshold.
func (w *workflow) Coverage(ctx context.Context, args CoverageArgs) (m.CoverageReport, error) {
	if err := w.ui.Start(controller.WithCoverageMode()); err != nil {
		return m.CoverageReport{}, err
	}
	defer w.ui.Close()

	aggregator := NewCoverageAggregator(w.fsAdapter, w.parser, w.logger, CoverageOptions{
		Excludes: args.Excludes,
		Workers:  args.Workers,
	})

	report, err := aggregator.Aggregate(ctx, args.Root)
	if err != nil {
		return m.CoverageReport{}, err
	}

	w.logger.Info("coverage computed", "summary", coverageSummary(report))

	if args.Output != "" {
		if err := w.writeReport(report, args); err != nil {
			return report, err
		}

		w.ui.DisplayMessage("%s; report written to %s", coverageSummary(report), args.Output)
	} else if err := w.ui.DisplayCoverage(report, args.Format); err != nil {
		return report, err
	}

	return report, CheckThreshold(report, args.Threshold)
}

func (w *workflow) writeReport(report m.CoverageReport, args CoverageArgs) error {
	format := controller.NormalizeFormat(args.Format)
	if format == controller.FormatTable {
		format = formatFromExtension(string(args.Output))
	}

	var buf strings.Builder
	if err := controller.WriteReport(&buf, report, format); err != nil {
		return err
	}

	if err := w.fsAdapter.WriteFile(args.Output, []byte(buf.String()), 0o644); err != nil {
		return &m.FileSystemError{Op: "write", Path: args.Output, Err: err}
	}

	return nil
}

// formatFromExtension picks a file report format for a table request.
func formatFromExtension(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		return controller.FormatHTML
	case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".markdown"):
		return controller.FormatMarkdown
	default:
		return controller.FormatJSON
	}
}
