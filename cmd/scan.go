package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/docgenie/internal/domain"
	m "github.com/mouse-blink/docgenie/internal/model"
)

var scanStagedFlag bool
var scanContextFlag int
var scanYesFlag bool
var scanDryRunFlag bool

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Document undocumented functions in the current change set",
		Long: `Scan reads the git diff of the working tree (or the index with --staged),
finds the JavaScript and TypeScript functions touched by added lines that have
no doc comment, generates a JSDoc comment for each and lets you accept, skip
or inspect every proposal before it is written.

Optional paths limit the diff to those files or directories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			scanArgs := domain.ScanArgs{
				Dir:          m.Path(dirFlag),
				Staged:       s.cfg.Scan.Staged,
				ContextLines: s.cfg.Scan.ContextLines,
				Paths:        args,
				AutoAccept:   scanYesFlag,
				DryRun:       scanDryRunFlag,
				Concurrency:  s.cfg.Generator.Concurrency,
				Excludes:     s.cfg.Scan.Excludes,
			}

			if cmd.Flags().Changed("staged") {
				scanArgs.Staged = scanStagedFlag
			}

			if cmd.Flags().Changed("context") {
				scanArgs.ContextLines = scanContextFlag
			}

			_, err = s.workflow.Scan(cmd.Context(), scanArgs)

			return err
		},
	}
	cmd.Flags().BoolVar(&scanStagedFlag, "staged", false, "scan staged changes instead of the working tree")
	cmd.Flags().IntVarP(&scanContextFlag, "context", "U", 1, "context lines requested from git diff")
	cmd.Flags().BoolVarP(&scanYesFlag, "yes", "y", false, "accept every proposal without prompting")
	cmd.Flags().BoolVar(&scanDryRunFlag, "dry-run", false, "show proposals without writing files")

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
