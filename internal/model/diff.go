package model

// Hunk describes one contiguous region of the new version of a file that a
// diff touches. Hunks are immutable once parsed.
type Hunk struct {
	// FileStartLine is the first line of the new-side range (>= 1).
	FileStartLine int
	// FileLineCount is the new-side line count (1 when the header omits it).
	FileLineCount int
	// AddedText holds the added lines with the '+' prefix stripped, each
	// terminated by a newline.
	AddedText string

	OldStartLine int
	OldLineCount int
	// Section is the optional heading git prints after the closing "@@".
	Section string
}

// EndLine returns the inclusive upper bound of the correlation window.
func (h Hunk) EndLine() int {
	return h.FileStartLine + h.FileLineCount
}

// Contains reports whether line falls inside the correlation window
// [FileStartLine, FileStartLine+FileLineCount].
func (h Hunk) Contains(line int) bool {
	return line >= h.FileStartLine && line <= h.EndLine()
}

// FileDiff groups the hunks of one file touched by a diff.
type FileDiff struct {
	// FilePath is taken from the new side of the header.
	FilePath Path
	OldPath  Path
	Hunks    []Hunk
	New      bool
	Deleted  bool
	Binary   bool
}
