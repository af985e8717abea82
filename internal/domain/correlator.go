package domain

import (
	m "github.com/mouse-blink/docgenie/internal/model"
)

// Correlate returns the undocumented, non-ignored records of one file whose
// start line falls within a hunk window of fileDiff.
//
// A window is [FileStartLine, FileStartLine+FileLineCount], so a function
// that merely moved because of an edit above it is matched too, while
// deletions inside a hunk are not considered.
func Correlate(fileDiff m.FileDiff, records []m.FunctionRecord) []m.FunctionRecord {
	matched := []m.FunctionRecord{}

	if len(fileDiff.Hunks) == 0 {
		return matched
	}

	for _, rec := range records {
		if rec.HasDocComment || rec.Ignored {
			continue
		}

		for _, h := range fileDiff.Hunks {
			if h.Contains(rec.StartLine) {
				matched = append(matched, rec)
				break
			}
		}
	}

	return matched
}
