// Package cmd provides the root command and CLI setup for docgenie.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/docgenie/internal/adapter"
	"github.com/mouse-blink/docgenie/internal/config"
	"github.com/mouse-blink/docgenie/internal/controller"
	"github.com/mouse-blink/docgenie/internal/domain"
	m "github.com/mouse-blink/docgenie/internal/model"
)

// Exit codes returned by Execute.
const (
	exitOK        = 0
	exitError     = 1
	exitThreshold = 2
)

var configFlag string
var dirFlag string
var logLevelFlag string

// workflow is assembled per run from configuration unless a test sets it.
var workflow domain.Workflow

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docgenie",
		Short: "Documentation assistant for JavaScript and TypeScript",
		Long: `Docgenie finds undocumented functions in JavaScript and TypeScript code.

It reviews the functions touched by your current git change set, proposes
JSDoc comments generated by a language model and inserts the ones you accept.
It also reports documentation coverage for a whole tree.

Examples:
  docgenie scan               review unstaged changes
  docgenie scan --staged      review staged changes
  docgenie coverage src       coverage table for src
  docgenie coverage --format html --output coverage.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default .docgenie.yaml in --dir)")
	cmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", ".", "project directory")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, rootCmd, os.Args[1:])

	stop()
	os.Exit(code)
}

func run(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)

	var thErr *m.ThresholdError
	if errors.As(err, &thErr) {
		return exitThreshold
	}

	return exitError
}

func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}

	return config.LoadFromDir(dirFlag)
}

func newLogger(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, error) {
	level := cfg.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// session holds what one command run needs.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	workflow domain.Workflow
	closers  []func() error
}

func (s *session) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("close failed", "error", err)
		}
	}
}

// newSession loads configuration and assembles the workflow for cmd. The
// generator is only built when withGenerator is set.
func newSession(cmd *cobra.Command, withGenerator bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Logging)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, workflow: workflow}
	if s.workflow != nil {
		return s, nil
	}

	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))
	fsAdapter := adapter.NewLocalSourceFSAdapter()
	parser := adapter.NewTreeSitterParser(
		adapter.WithMaxBytes(cfg.Scan.MaxFileBytes),
		adapter.WithExtensions(cfg.Scan.Extensions),
	)

	var gen adapter.DocGenerator
	if withGenerator {
		gen, err = newGenerator(s, cfg)
		if err != nil {
			s.Close()

			return nil, err
		}
	}

	s.workflow = domain.NewWorkflow(fsAdapter, parser, adapter.NewLocalGitAdapter(), gen, ui, logger)

	return s, nil
}

func newGenerator(s *session, cfg *config.Config) (adapter.DocGenerator, error) {
	gen, err := adapter.NewDocGenerator(adapter.GeneratorOptions{
		Provider:    cfg.Generator.Provider,
		Model:       cfg.Generator.Model,
		Temperature: cfg.Generator.Temperature,
		MaxTokens:   cfg.Generator.MaxTokens,
		APIKey:      cfg.APIKey(),
		BaseURL:     cfg.Generator.BaseURL,
		Timeout:     cfg.Generator.Timeout,
		MaxRetries:  cfg.Generator.MaxRetries,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.Cache.Enabled {
		return gen, nil
	}

	cache, err := adapter.NewBoltDocCache(cfg.CachePath(dirFlag))
	if err != nil {
		s.logger.Warn("generation cache disabled", "error", err)

		return gen, nil
	}

	s.closers = append(s.closers, cache.Close)

	return adapter.NewCachedGenerator(gen, cache, cfg.Generator.Provider, cfg.Generator.Model), nil
}
