package model

import (
	"errors"
	"fmt"
)

// ErrInvalidPath is wrapped by FileSystemError when a path exists but is of
// the wrong kind for the requested operation.
var ErrInvalidPath = errors.New("path is neither a regular file nor a directory")

// ErrMalformedDocComment is wrapped by GenerationError when a generator
// response contains no /** ... */ block.
var ErrMalformedDocComment = errors.New("response does not contain a doc comment block")

// DiffParseError describes a hunk or header that could not be parsed. The
// parser records it and keeps going.
type DiffParseError struct {
	Line   int // 1-based line in the diff text
	Text   string
	Reason string
}

func (e *DiffParseError) Error() string {
	return fmt.Sprintf("diff line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// SourceParseError reports a file whose text is not valid syntax. The file is
// excluded from correlation and coverage.
type SourceParseError struct {
	Path   Path
	Line   int
	Column int
	Err    error
}

func (e *SourceParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}

	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *SourceParseError) Unwrap() error { return e.Err }

// FileSystemError reports a missing, unreadable or wrong-kind path.
type FileSystemError struct {
	Op   string
	Path Path
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// GenerationError reports a failed documentation request for one function.
type GenerationError struct {
	Function string
	Path     Path
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate doc for %s (%s): %v", e.Function, e.Path, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EditApplyError reports a doc comment insertion that failed.
type EditApplyError struct {
	Path Path
	Line int
	Err  error
}

func (e *EditApplyError) Error() string {
	return fmt.Sprintf("apply edit %s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *EditApplyError) Unwrap() error { return e.Err }

// ThresholdError is returned when project coverage is below the configured
// minimum.
type ThresholdError struct {
	Coverage  float64
	Threshold float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("documentation coverage %.2f%% is below threshold %.2f%%", e.Coverage, e.Threshold)
}
