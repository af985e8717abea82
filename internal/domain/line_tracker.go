package domain

import (
	m "github.com/mouse-blink/docgenie/internal/model"
)

// LineTracker maps scan-time line numbers to current ones while edits are
// applied during a single review run. Insertions must be recorded in
// ascending line order per file.
type LineTracker struct {
	offsets map[m.Path]int
}

// NewLineTracker creates a LineTracker with zero offsets.
func NewLineTracker() *LineTracker {
	return &LineTracker{offsets: make(map[m.Path]int)}
}

// Adjust returns line shifted by the lines inserted so far into path.
func (t *LineTracker) Adjust(path m.Path, line int) int {
	return line + t.offsets[path]
}

// Record notes that k lines were inserted into path.
func (t *LineTracker) Record(path m.Path, k int) {
	t.offsets[path] += k
}

// Offset returns the total number of lines inserted into path.
func (t *LineTracker) Offset(path m.Path) int {
	return t.offsets[path]
}
