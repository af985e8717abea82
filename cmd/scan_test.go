package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/docgenie/internal/domain"
	domainmocks "github.com/mouse-blink/docgenie/internal/domain/mocks"
	m "github.com/mouse-blink/docgenie/internal/model"
)

func TestScanCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	dir := t.TempDir()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Dir == m.Path(dir) &&
			!args.Staged &&
			args.ContextLines == 1 &&
			len(args.Paths) == 0 &&
			!args.AutoAccept &&
			!args.DryRun &&
			args.Concurrency == 4 &&
			len(args.Excludes) == 2
	})).Return(m.ReviewSummary{}, nil).Once()

	cmd, _, _ := newTestRootCmd()
	assert.Equal(t, exitOK, run(context.Background(), cmd, []string{"--dir", dir, "scan"}))
}

func TestScanCmd_Flags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	dir := t.TempDir()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Staged &&
			args.ContextLines == 3 &&
			args.AutoAccept &&
			args.DryRun &&
			len(args.Paths) == 1 && args.Paths[0] == "src"
	})).Return(m.ReviewSummary{}, nil).Once()

	cmd, _, _ := newTestRootCmd()
	code := run(context.Background(), cmd, []string{"--dir", dir, "scan", "--staged", "-U", "3", "--yes", "--dry-run", "src"})
	assert.Equal(t, exitOK, code)
}

func TestScanCmd_FlagsOverrideConfig(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docgenie.yaml"),
		[]byte("scan:\n  staged: true\n  context_lines: 5\ngenerator:\n  concurrency: 2\n"), 0o644))

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Staged && args.ContextLines == 0 && args.Concurrency == 2
	})).Return(m.ReviewSummary{}, nil).Once()

	cmd, _, _ := newTestRootCmd()
	assert.Equal(t, exitOK, run(context.Background(), cmd, []string{"--dir", dir, "scan", "--context", "0"}))
}
