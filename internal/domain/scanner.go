package domain

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/mouse-blink/docgenie/internal/adapter"
	m "github.com/mouse-blink/docgenie/internal/model"
)

// DiffScanner finds the undocumented functions touched by a diff.
type DiffScanner struct {
	fs       adapter.SourceFSAdapter
	parser   adapter.SourceParser
	diffs    DiffParser
	locator  FunctionLocator
	logger   *slog.Logger
	// excludes are doublestar globs matched against repository-relative
	// paths.
	excludes []string
}

// NewDiffScanner creates a DiffScanner. Files under node_modules or dot
// directories, and files matching one of excludes, are never scanned.
func NewDiffScanner(fs adapter.SourceFSAdapter, parser adapter.SourceParser, logger *slog.Logger, excludes []string) *DiffScanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DiffScanner{
		fs:      fs,
		parser:  parser,
		diffs:    NewDiffParser(),
		locator:  NewFunctionLocator(),
		logger:   logger,
		excludes: excludes,
	}
}

// Scan parses rawDiff and returns the matching records of every supported
// file, in diff order. Paths in the diff are resolved against repoRoot and
// the returned records carry the resolved path. Files that cannot be read or
// parsed are logged and skipped.
func (s *DiffScanner) Scan(ctx context.Context, repoRoot m.Path, rawDiff string) ([]m.FunctionRecord, error) {
	files, issues := s.diffs.Parse(rawDiff)
	for _, issue := range issues {
		s.logger.Warn("skipping diff hunk", "line", issue.Line, "reason", issue.Reason, "text", issue.Text)
	}

	found := []m.FunctionRecord{}

	for _, fd := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if fd.Binary || fd.Deleted || len(fd.Hunks) == 0 || !s.parser.Supports(fd.FilePath) {
			s.logger.Debug("skipping file", "path", fd.FilePath, "binary", fd.Binary, "deleted", fd.Deleted)
			continue
		}

		if s.excluded(fd.FilePath) {
			s.logger.Debug("skipping excluded file", "path", fd.FilePath)
			continue
		}

		records, err := s.scanFile(ctx, repoRoot, fd)
		if err != nil {
			s.logger.Warn("skipping file", "path", fd.FilePath, "error", err)
			continue
		}

		found = append(found, records...)
	}

	return found, nil
}

func (s *DiffScanner) scanFile(ctx context.Context, repoRoot m.Path, fd m.FileDiff) ([]m.FunctionRecord, error) {
	path := s.fs.JoinPath(string(repoRoot), string(fd.FilePath))

	src, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, &m.FileSystemError{Op: "read", Path: path, Err: err}
	}

	tree, err := s.parser.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Correlate(fd, s.locator.Locate(tree)), nil
}

func (s *DiffScanner) excluded(path m.Path) bool {
	rel := filepath.ToSlash(string(path))

	return inSkippedDir(rel) || matchesAny(s.excludes, rel)
}
