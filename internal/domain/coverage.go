package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/docgenie/internal/adapter"
	m "github.com/mouse-blink/docgenie/internal/model"
)

const defaultCoverageWorkers = 8

// CoverageOptions tunes CoverageAggregator.
type CoverageOptions struct {
	// Excludes are doublestar globs matched against slash-separated paths
	// relative to the walk root.
	Excludes []string
	// Workers bounds the number of files parsed at once.
	Workers int
}

// CoverageAggregator computes documentation coverage for a file or tree.
type CoverageAggregator struct {
	fs      adapter.SourceFSAdapter
	parser  adapter.SourceParser
	locator FunctionLocator
	logger  *slog.Logger
	opts    CoverageOptions
}

// NewCoverageAggregator creates a CoverageAggregator.
func NewCoverageAggregator(fs adapter.SourceFSAdapter, parser adapter.SourceParser, logger *slog.Logger, opts CoverageOptions) *CoverageAggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.Workers < 1 {
		opts.Workers = defaultCoverageWorkers
	}

	return &CoverageAggregator{
		fs:      fs,
		parser:  parser,
		locator: NewFunctionLocator(),
		logger:  logger,
		opts:    opts,
	}
}

type coverageTarget struct {
	path    m.Path // as read from disk
	display m.Path // as reported
}

// Aggregate walks root and reduces per-file coverage in walk order. Only a
// missing or unusable root is an error; unreadable or unparseable files are
// logged and left out of the report.
func (a *CoverageAggregator) Aggregate(ctx context.Context, root m.Path) (m.CoverageReport, error) {
	targets, err := a.collect(root)
	if err != nil {
		return m.CoverageReport{}, err
	}

	results := make([]*m.FileCoverage, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)

	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fc, err := a.analyze(gctx, target)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}

				a.logger.Warn("skipping file", "path", target.display, "error", err)

				return nil
			}

			results[i] = fc

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return m.CoverageReport{}, err
	}

	return reduceCoverage(results), nil
}

func (a *CoverageAggregator) collect(root m.Path) ([]coverageTarget, error) {
	info, err := a.fs.FileInfo(root)
	if err != nil {
		return nil, &m.FileSystemError{Op: "stat", Path: root, Err: err}
	}

	if info.Mode().IsRegular() {
		if !a.parser.Supports(root) {
			return []coverageTarget{}, nil
		}

		return []coverageTarget{{path: root, display: root}}, nil
	}

	if !info.IsDir() {
		return nil, &m.FileSystemError{Op: "stat", Path: root, Err: m.ErrInvalidPath}
	}

	targets := []coverageTarget{}

	err = a.fs.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == string(root) {
				return err
			}

			a.logger.Warn("cannot walk path", "path", path, "error", err)

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if path == string(root) {
			return nil
		}

		rel, err := a.fs.RelPath(root, m.Path(path))
		if err != nil {
			return err
		}

		relSlash := filepath.ToSlash(string(rel))

		if info.IsDir() {
			if skipDir(info.Name()) || a.excluded(relSlash+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() || a.excluded(relSlash) || !a.parser.Supports(m.Path(path)) {
			return nil
		}

		targets = append(targets, coverageTarget{path: m.Path(path), display: rel})

		return nil
	})
	if err != nil {
		return nil, &m.FileSystemError{Op: "walk", Path: root, Err: err}
	}

	return targets, nil
}

func (a *CoverageAggregator) analyze(ctx context.Context, target coverageTarget) (*m.FileCoverage, error) {
	src, err := a.fs.ReadFile(target.path)
	if err != nil {
		return nil, &m.FileSystemError{Op: "read", Path: target.path, Err: err}
	}

	tree, err := a.parser.Parse(ctx, target.path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	fc := &m.FileCoverage{FilePath: target.display, Undocumented: []m.FunctionRecord{}}

	for _, rec := range a.locator.Locate(tree) {
		fc.TotalFunctions++

		if rec.HasDocComment {
			fc.DocumentedFunctions++
			continue
		}

		rec.FilePath = target.display
		fc.Undocumented = append(fc.Undocumented, rec)
	}

	return fc, nil
}

func (a *CoverageAggregator) excluded(rel string) bool {
	return matchesAny(a.opts.Excludes, rel)
}

// matchesAny reports whether the slash-separated path rel matches one of the
// doublestar patterns. Malformed patterns never match.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err == nil && matched {
			return true
		}
	}

	return false
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// inSkippedDir reports whether any directory of the slash-separated path rel
// is one that tree walks skip.
func inSkippedDir(rel string) bool {
	dirs := strings.Split(rel, "/")

	for _, dir := range dirs[:len(dirs)-1] {
		if dir != "" && dir != "." && dir != ".." && skipDir(dir) {
			return true
		}
	}

	return false
}

func reduceCoverage(results []*m.FileCoverage) m.CoverageReport {
	report := m.CoverageReport{PerFile: []m.FileCoverage{}}

	for _, fc := range results {
		if fc == nil {
			continue
		}

		report.PerFile = append(report.PerFile, *fc)
		report.TotalFunctions += fc.TotalFunctions
		report.DocumentedFunctions += fc.DocumentedFunctions
	}

	report.TotalFiles = len(report.PerFile)
	report.CoveragePercent = m.CoveragePercent(report.DocumentedFunctions, report.TotalFunctions)

	return report
}

// CheckThreshold returns a *m.ThresholdError when report is below threshold.
// A threshold of zero or less disables the check.
func CheckThreshold(report m.CoverageReport, threshold float64) error {
	if threshold <= 0 || report.MeetsThreshold(threshold) {
		return nil
	}

	return &m.ThresholdError{Coverage: report.CoveragePercent, Threshold: threshold}
}

// coverageSummary renders a one-line summary of report.
func coverageSummary(report m.CoverageReport) string {
	return fmt.Sprintf("%d/%d functions documented (%.2f%%) in %d files",
		report.DocumentedFunctions, report.TotalFunctions, report.CoveragePercent, report.TotalFiles)
}
