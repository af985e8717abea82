package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/docgenie/internal/config"
	"github.com/mouse-blink/docgenie/internal/domain"
	domainmocks "github.com/mouse-blink/docgenie/internal/domain/mocks"
	m "github.com/mouse-blink/docgenie/internal/model"
)

func newTestRootCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd(), newCoverageCmd())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func withWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	originalWorkflow := workflow
	workflow = wf

	t.Cleanup(func() { workflow = originalWorkflow })
}

func TestRun_ExitCodes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockWorkflow := domainmocks.NewMockWorkflow(t)
		withWorkflow(t, mockWorkflow)

		mockWorkflow.On("Coverage", mock.Anything, mock.Anything).Return(m.CoverageReport{}, nil).Once()

		cmd, _, _ := newTestRootCmd()
		assert.Equal(t, exitOK, run(context.Background(), cmd, []string{"--dir", t.TempDir(), "coverage"}))
	})

	t.Run("threshold not met", func(t *testing.T) {
		mockWorkflow := domainmocks.NewMockWorkflow(t)
		withWorkflow(t, mockWorkflow)

		thErr := &m.ThresholdError{Coverage: 40, Threshold: 80}
		mockWorkflow.On("Coverage", mock.Anything, mock.Anything).Return(m.CoverageReport{CoveragePercent: 40}, thErr).Once()

		cmd, _, errOut := newTestRootCmd()
		assert.Equal(t, exitThreshold, run(context.Background(), cmd, []string{"--dir", t.TempDir(), "coverage", "--threshold", "80"}))
		assert.Contains(t, errOut.String(), "documentation coverage 40.00% is below threshold 80.00%")
	})

	t.Run("other error", func(t *testing.T) {
		mockWorkflow := domainmocks.NewMockWorkflow(t)
		withWorkflow(t, mockWorkflow)

		mockWorkflow.On("Scan", mock.Anything, mock.Anything).Return(m.ReviewSummary{}, errors.New("git diff: exit status 128")).Once()

		cmd, _, errOut := newTestRootCmd()
		assert.Equal(t, exitError, run(context.Background(), cmd, []string{"--dir", t.TempDir(), "scan"}))
		assert.Contains(t, errOut.String(), "Error: git diff: exit status 128")
	})

	t.Run("invalid log level", func(t *testing.T) {
		withWorkflow(t, domainmocks.NewMockWorkflow(t))

		cmd, _, errOut := newTestRootCmd()
		assert.Equal(t, exitError, run(context.Background(), cmd, []string{"--dir", t.TempDir(), "--log-level", "loud", "coverage"}))
		assert.Contains(t, errOut.String(), `invalid log level "loud"`)
	})
}

func TestRootCmd_ConfigFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coverage:\n  threshold: 55\n  format: markdown\n"), 0o644))

	mockWorkflow.On("Coverage", mock.Anything, mock.MatchedBy(func(args domain.CoverageArgs) bool {
		return args.Threshold == 55 && args.Format == "markdown"
	})).Return(m.CoverageReport{}, nil).Once()

	cmd, _, _ := newTestRootCmd()
	assert.Equal(t, exitOK, run(context.Background(), cmd, []string{"--config", path, "--dir", t.TempDir(), "coverage"}))
}

func TestRootCmd_BadConfig(t *testing.T) {
	withWorkflow(t, domainmocks.NewMockWorkflow(t))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docgenie.yaml"), []byte("generator:\n  provider: telepathy\n"), 0o644))

	cmd, _, errOut := newTestRootCmd()
	assert.Equal(t, exitError, run(context.Background(), cmd, []string{"--dir", dir, "coverage"}))
	assert.Contains(t, errOut.String(), `generator.provider "telepathy" is not supported`)
}

func TestNewLogger(t *testing.T) {
	originalLevel := logLevelFlag
	t.Cleanup(func() { logLevelFlag = originalLevel })

	var buf bytes.Buffer

	logLevelFlag = ""
	logger, err := newLogger(&buf, config.LoggingConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()

	logLevelFlag = "debug"
	logger, err = newLogger(&buf, config.LoggingConfig{Level: "error"})
	require.NoError(t, err)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestRootCmd_CoverageEndToEnd(t *testing.T) {
	withWorkflow(t, nil)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("/** Doc. */\nfunction a() {}\nfunction b() {}\n"), 0o644))

	cmd, out, _ := newTestRootCmd()
	code := run(context.Background(), cmd, []string{"--dir", dir, "coverage", "--format", "json"})
	require.Equal(t, exitOK, code)

	assert.Contains(t, out.String(), `"coveragePercent": 50`)
	assert.Contains(t, out.String(), `"name": "b"`)

	cmd, _, _ = newTestRootCmd()
	assert.Equal(t, exitThreshold, run(context.Background(), cmd, []string{"--dir", dir, "coverage", "--format", "json", "-t", "75"}))
}

func TestRootCmd_ScanRequiresAPIKey(t *testing.T) {
	withWorkflow(t, nil)
	t.Setenv("OPENAI_API_KEY", "")

	cmd, _, errOut := newTestRootCmd()
	assert.Equal(t, exitError, run(context.Background(), cmd, []string{"--dir", t.TempDir(), "scan"}))
	assert.Contains(t, errOut.String(), "openai API key is not set")
}
