package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/docgenie/internal/config"
	"github.com/mouse-blink/docgenie/internal/domain"
	m "github.com/mouse-blink/docgenie/internal/model"
)

var coverageThresholdFlag float64
var coverageFormatFlag string
var coverageOutputFlag string

// coverageCmd represents the coverage command.
var coverageCmd = newCoverageCmd()

func newCoverageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage [path]",
		Short: "Report documentation coverage",
		Long: `Coverage walks a file or directory (default: --dir), counts the JavaScript
and TypeScript functions that carry a /** ... */ doc comment and prints a
per-file report.

With --threshold the command exits with status 2 when coverage is below the
given percentage.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			root := dirFlag
			if len(args) == 1 {
				root = args[0]
			}

			covArgs := domain.CoverageArgs{
				Root:      m.Path(filepath.Clean(root)),
				Threshold: s.cfg.Coverage.Threshold,
				Format:    s.cfg.Coverage.Format,
				Output:    m.Path(s.cfg.Coverage.Output),
				Excludes:  s.cfg.Scan.Excludes,
				Workers:   s.cfg.Coverage.Workers,
			}

			if cmd.Flags().Changed("threshold") {
				if err := config.ValidateThreshold(coverageThresholdFlag); err != nil {
					return fmt.Errorf("--%w", err)
				}

				covArgs.Threshold = coverageThresholdFlag
			}

			if cmd.Flags().Changed("format") {
				covArgs.Format = coverageFormatFlag
			}

			if cmd.Flags().Changed("output") {
				covArgs.Output = m.Path(coverageOutputFlag)
			}

			_, err = s.workflow.Coverage(cmd.Context(), covArgs)

			return err
		},
	}
	cmd.Flags().Float64VarP(&coverageThresholdFlag, "threshold", "t", 0, "minimum coverage percentage; exit 2 when not met")
	cmd.Flags().StringVarP(&coverageFormatFlag, "format", "f", "table", "report format: table, json, markdown or html")
	cmd.Flags().StringVarP(&coverageOutputFlag, "output", "o", "", "write the report to a file")

	return cmd
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}
