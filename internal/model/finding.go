package model

// Finding is an undocumented function from a change set together with the
// doc comment proposed for it.
type Finding struct {
	FilePath     Path
	FunctionName string
	StartLine    int
	// AnchorLine is where the doc comment is inserted.
	AnchorLine int
	// AnchorText is the content of AnchorLine when the file was scanned.
	AnchorText         string
	OriginalSource     string
	ProposedDocComment string
	// Err is set when documentation generation failed for this function.
	Err error
}

// Failed reports whether generation failed for this finding.
func (f Finding) Failed() bool {
	return f.Err != nil
}

// ReviewSummary reports what a review run did.
type ReviewSummary struct {
	Total         int
	Processed     int
	Accepted      int
	Skipped       int
	Failed        int
	ModifiedFiles []Path
	// Aborted is true when the operator quit or the run was cancelled
	// before every finding was processed.
	Aborted bool
	Errors  []error
}
