package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/docgenie/internal/domain"
	domainmocks "github.com/mouse-blink/docgenie/internal/domain/mocks"
	m "github.com/mouse-blink/docgenie/internal/model"
)

func TestCoverageCmd_DefaultsToDir(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	dir := t.TempDir()

	mockWorkflow.On("Coverage", mock.Anything, mock.MatchedBy(func(args domain.CoverageArgs) bool {
		return args.Root == m.Path(dir) &&
			args.Format == "table" &&
			args.Threshold == 0 &&
			args.Output == "" &&
			args.Workers == 8 &&
			len(args.Excludes) == 2
	})).Return(m.CoverageReport{}, nil).Once()

	cmd, _, _ := newTestRootCmd()
	assert.Equal(t, exitOK, run(context.Background(), cmd, []string{"--dir", dir, "coverage"}))
}

func TestCoverageCmd_Flags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	dir := t.TempDir()
	target := filepath.Join(dir, "src") + "/"

	mockWorkflow.On("Coverage", mock.Anything, mock.MatchedBy(func(args domain.CoverageArgs) bool {
		return args.Root == m.Path(filepath.Join(dir, "src")) &&
			args.Format == "html" &&
			args.Threshold == 90 &&
			args.Output == "report.html"
	})).Return(m.CoverageReport{}, nil).Once()

	cmd, _, _ := newTestRootCmd()
	code := run(context.Background(), cmd, []string{"--dir", dir, "coverage", target, "-f", "html", "-t", "90", "-o", "report.html"})
	assert.Equal(t, exitOK, code)
}

func TestCoverageCmd_TooManyArgs(t *testing.T) {
	withWorkflow(t, domainmocks.NewMockWorkflow(t))

	cmd, _, _ := newTestRootCmd()
	assert.Equal(t, exitError, run(context.Background(), cmd, []string{"coverage", "a", "b"}))
}

func TestCoverageCmd_ThresholdOutOfRange(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	for _, value := range []string{"150", "-5"} {
		cmd, _, errOut := newTestRootCmd()
		code := run(context.Background(), cmd, []string{"--dir", t.TempDir(), "coverage", "--threshold=" + value})

		assert.Equal(t, exitError, code)
		assert.Contains(t, errOut.String(), "--threshold must be within [0, 100]")
	}

	mockWorkflow.AssertNotCalled(t, "Coverage", mock.Anything, mock.Anything)
}
