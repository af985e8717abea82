package domain

import (
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/docgenie/internal/model"
)

const (
	gitHeaderPrefix  = "diff --git "
	hunkHeaderPrefix = "@@"
	oldFileMarker    = "--- "
	newFileMarker    = "+++ "
	devNull          = "/dev/null"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

// DiffParser turns raw unified diff text into per-file hunks anchored to the
// new version of each file.
type DiffParser interface {
	// Parse never fails as a whole: malformed hunks are skipped and returned
	// alongside the files that did parse.
	Parse(raw string) ([]m.FileDiff, []*m.DiffParseError)
}

type diffParser struct{}

// NewDiffParser creates a DiffParser.
func NewDiffParser() DiffParser {
	return &diffParser{}
}

func (p *diffParser) Parse(raw string) ([]m.FileDiff, []*m.DiffParseError) {
	st := &diffState{files: []m.FileDiff{}}

	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return st.files, nil
	}

	for i, line := range strings.Split(raw, "\n") {
		st.feed(i+1, strings.TrimSuffix(line, "\r"))
	}

	st.flushFile()

	return st.files, st.issues
}

// diffState is the scanner state for a single Parse call.
type diffState struct {
	files  []m.FileDiff
	issues []*m.DiffParseError

	current *m.FileDiff
	// fromGit is true when current was opened by a "diff --git" line; it
	// controls a/ and b/ prefix stripping.
	fromGit bool
	// sawOldHeader is true once current has seen its "--- " line.
	sawOldHeader bool

	inBody  bool
	hunk    *m.Hunk // nil while discarding the body of a skipped hunk
	added   strings.Builder
	oldLeft int // remaining old-side lines; -1 when unknown
	newLeft int
}

func (st *diffState) feed(lineNo int, line string) {
	if st.inBody {
		if isHunkBodyLine(line) {
			st.consumeBody(line)
			return
		}

		st.closeHunk()
	}

	switch {
	case strings.HasPrefix(line, gitHeaderPrefix):
		st.flushFile()

		oldPath, newPath := parseGitHeader(strings.TrimPrefix(line, gitHeaderPrefix))
		st.current = &m.FileDiff{FilePath: m.Path(newPath), OldPath: m.Path(oldPath)}
		st.fromGit = true

	case strings.HasPrefix(line, hunkHeaderPrefix):
		st.openHunk(lineNo, line)

	case strings.HasPrefix(line, oldFileMarker):
		if st.current == nil || len(st.current.Hunks) > 0 || st.sawOldHeader {
			st.flushFile()
			st.current = &m.FileDiff{}
			st.fromGit = false
		}

		st.sawOldHeader = true

		path := headerPath(strings.TrimPrefix(line, oldFileMarker), "a/", st.fromGit)
		if path == devNull {
			st.current.New = true
			break
		}

		st.current.OldPath = m.Path(path)
		if st.current.FilePath == "" {
			st.current.FilePath = m.Path(path)
		}

	case strings.HasPrefix(line, newFileMarker):
		if st.current == nil || len(st.current.Hunks) > 0 {
			st.flushFile()
			st.current = &m.FileDiff{}
			st.fromGit = false
		}

		path := headerPath(strings.TrimPrefix(line, newFileMarker), "b/", st.fromGit)
		if path == devNull {
			st.current.Deleted = true
			break
		}

		st.current.FilePath = m.Path(path)

	case st.current == nil:
		// Preamble (commit message, stat lines) before the first file.

	case strings.HasPrefix(line, "Binary files ") || strings.HasPrefix(line, "GIT binary patch"):
		st.current.Binary = true

	case strings.HasPrefix(line, "new file mode"):
		st.current.New = true

	case strings.HasPrefix(line, "deleted file mode"):
		st.current.Deleted = true
	}
}

func (st *diffState) openHunk(lineNo int, line string) {
	// Body lines of a rejected hunk are discarded until the next header.
	st.inBody = true
	st.hunk = nil
	st.added.Reset()
	st.oldLeft, st.newLeft = -1, -1

	if st.current == nil {
		st.issue(lineNo, line, "hunk header outside of a file section")
		return
	}

	match := hunkHeaderRe.FindStringSubmatch(line)
	if match == nil {
		st.issue(lineNo, line, "malformed hunk header")
		return
	}

	oldStart, errOldStart := strconv.Atoi(match[1])
	oldCount, errOldCount := atoiDefault(match[2], 1)
	newStart, errNewStart := strconv.Atoi(match[3])
	newCount, errNewCount := atoiDefault(match[4], 1)

	if errOldStart != nil || errOldCount != nil || errNewStart != nil || errNewCount != nil {
		st.issue(lineNo, line, "hunk range out of bounds")
		return
	}

	if newStart < 1 {
		newStart = 1
	}

	if n := len(st.current.Hunks); n > 0 && newStart < st.current.Hunks[n-1].FileStartLine {
		st.issue(lineNo, line, "hunk out of line order")
		return
	}

	st.hunk = &m.Hunk{
		FileStartLine: newStart,
		FileLineCount: newCount,
		OldStartLine:  oldStart,
		OldLineCount:  oldCount,
		Section:       strings.TrimSpace(match[5]),
	}
	st.oldLeft, st.newLeft = oldCount, newCount

	if oldCount == 0 && newCount == 0 {
		st.closeHunk()
	}
}

func (st *diffState) consumeBody(line string) {
	if line == "" {
		// Some tools drop the leading space of empty context lines.
		line = " "
	}

	switch line[0] {
	case '+':
		st.added.WriteString(line[1:])
		st.added.WriteByte('\n')
		st.newLeft--
	case '-':
		st.oldLeft--
	case ' ':
		st.oldLeft--
		st.newLeft--
	case '\\':
		// "\ No newline at end of file"
		return
	}

	bounded := st.hunk != nil
	if bounded && st.oldLeft <= 0 && st.newLeft <= 0 {
		st.closeHunk()
	}
}

func (st *diffState) closeHunk() {
	if st.hunk != nil && st.current != nil {
		st.hunk.AddedText = st.added.String()
		st.current.Hunks = append(st.current.Hunks, *st.hunk)
	}

	st.inBody = false
	st.hunk = nil
	st.added.Reset()
}

func (st *diffState) flushFile() {
	st.closeHunk()

	if st.current != nil {
		if st.current.Hunks == nil {
			st.current.Hunks = []m.Hunk{}
		}

		st.files = append(st.files, *st.current)
	}

	st.current = nil
	st.fromGit = false
	st.sawOldHeader = false
}

func (st *diffState) issue(lineNo int, text, reason string) {
	st.issues = append(st.issues, &m.DiffParseError{Line: lineNo, Text: text, Reason: reason})
}

func isHunkBodyLine(line string) bool {
	if strings.HasPrefix(line, gitHeaderPrefix) || strings.HasPrefix(line, hunkHeaderPrefix) {
		return false
	}

	if line == "" {
		return true
	}

	switch line[0] {
	case '+', '-', ' ', '\\':
		return true
	default:
		return false
	}
}

// parseGitHeader splits the "a/<old> b/<new>" part of a "diff --git" line.
func parseGitHeader(rest string) (string, string) {
	if strings.HasPrefix(rest, `"`) {
		if parts := splitQuoted(rest); len(parts) == 2 {
			return strings.TrimPrefix(parts[0], "a/"), strings.TrimPrefix(parts[1], "b/")
		}
	}

	if idx := strings.LastIndex(rest, " b/"); idx >= 0 {
		return strings.TrimPrefix(rest[:idx], "a/"), rest[idx+len(" b/"):]
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", ""
	}

	return fields[0], fields[len(fields)-1]
}

// headerPath extracts the path from a "---"/"+++" header value.
func headerPath(value, prefix string, stripPrefix bool) string {
	if tab := strings.IndexByte(value, '\t'); tab >= 0 {
		value = value[:tab]
	}

	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, `"`) {
		if unquoted, err := strconv.Unquote(value); err == nil {
			value = unquoted
		}
	}

	if value == devNull {
		return value
	}

	if stripPrefix {
		value = strings.TrimPrefix(value, prefix)
	}

	return value
}

func splitQuoted(s string) []string {
	var parts []string

	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		if s[0] != '"' {
			end := strings.IndexByte(s, ' ')
			if end < 0 {
				end = len(s)
			}

			parts = append(parts, s[:end])
			s = s[end:]

			continue
		}

		prefix, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil
		}

		unquoted, err := strconv.Unquote(prefix)
		if err != nil {
			return nil
		}

		parts = append(parts, unquoted)
		s = s[len(prefix):]
	}

	return parts
}

func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}

	return strconv.Atoi(s)
}
