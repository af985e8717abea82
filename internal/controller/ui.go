// Package controller provides the terminal front ends for docgenie: plain
// text output for pipes and CI, and an interactive Bubble Tea review for
// terminals.
package controller

import (
	"context"

	m "github.com/mouse-blink/docgenie/internal/model"
)

// Action is an operator decision on a proposed doc comment.
type Action int

// Available Action values.
const (
	ActionAccept Action = iota
	ActionSkip
	ActionContext
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionSkip:
		return "skip"
	case ActionContext:
		return "context"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Proposal is a generated doc comment shown for review.
type Proposal struct {
	Index   int // 1-based position in the review queue
	Total   int
	Finding m.Finding
	// Line is the current (offset-adjusted) anchor line.
	Line int
	// Lines holds the file content as it is now.
	Lines []string
	// Comment is the doc comment indented like the anchor line.
	Comment []string
	// ContextLines is the number of lines shown around Line on request.
	ContextLines int
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeCoverage
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured start mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithScanMode sets the UI to change set review mode.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithCoverageMode sets the UI to coverage report mode.
func WithCoverageMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCoverage
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for presenting scan and coverage results.
// Implementations can use different output methods (simple text, TUI, etc).
//
//nolint:interfacebloat // One front end drives the whole review loop.
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayMessage(format string, args ...any)
	DisplayFindings(findings []m.Finding)
	StartProgress(total int, description string)
	AdvanceProgress()
	FinishProgress()
	DisplayProposal(p Proposal)
	PromptAction(ctx context.Context, p Proposal) (Action, error)
	DisplayContext(p Proposal)
	DisplayFailure(f m.Finding)
	DisplayEditError(f m.Finding, err error)
	DisplayReviewSummary(summary m.ReviewSummary)
	DisplayCoverage(report m.CoverageReport, format string) error
}
