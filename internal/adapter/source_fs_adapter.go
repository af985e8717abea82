// Package adapter contains infrastructure adapters for the docgenie CLI:
// file system access, source parsing, git and documentation generators.
package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/docgenie/internal/model"
)

// ErrAnchorMismatch is returned by InsertLines when the target line no longer
// holds the expected text.
var ErrAnchorMismatch = errors.New("line changed since the file was scanned")

// ErrLineOutOfRange is returned by InsertLines for a line past the end of the
// file.
var ErrLineOutOfRange = errors.New("line out of range")

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning and editing user projects. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses root in lexical order. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// ReadLines returns the file split into lines without terminators.
	ReadLines(path m.Path) ([]string, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// InsertLines inserts lines before the 1-based line at, after checking
	// that the line currently reads expected. Inserted lines take the
	// indentation of the line at `at`.
	InsertLines(path m.Path, at int, expected string, lines []string) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// ReadLines loads a file and splits it into lines.
func (a *LocalSourceFSAdapter) ReadLines(path m.Path) ([]string, error) {
	content, err := a.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines, _ := splitLines(content)

	return lines, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// InsertLines inserts lines before line `at`, keeping the file's line
// endings and permissions.
func (a *LocalSourceFSAdapter) InsertLines(path m.Path, at int, expected string, lines []string) error {
	info, err := a.FileInfo(path)
	if err != nil {
		return err
	}

	content, err := a.ReadFile(path)
	if err != nil {
		return err
	}

	existing, eol := splitLines(content)
	if at < 1 || at > len(existing) {
		return fmt.Errorf("%w: %d of %d", ErrLineOutOfRange, at, len(existing))
	}

	current := existing[at-1]
	if strings.TrimRight(current, " \t") != strings.TrimRight(expected, " \t") {
		return fmt.Errorf("%w: want %q, have %q", ErrAnchorMismatch, expected, current)
	}

	indent := leadingWhitespace(current)

	var buf bytes.Buffer

	for i, line := range existing {
		if i == at-1 {
			for _, ins := range lines {
				if ins != "" {
					buf.WriteString(indent)
				}

				buf.WriteString(ins)
				buf.WriteString(eol)
			}
		}

		buf.WriteString(line)

		if i < len(existing)-1 || bytes.HasSuffix(content, []byte("\n")) {
			buf.WriteString(eol)
		}
	}

	return a.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// splitLines splits content on "\n", stripping a trailing "\r" from each
// line. The returned terminator is "\r\n" when the first line uses one.
func splitLines(content []byte) ([]string, string) {
	if len(content) == 0 {
		return []string{}, "\n"
	}

	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")

	eol := "\n"
	if strings.HasSuffix(lines[0], "\r") {
		eol = "\r\n"
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines, eol
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
