package main

import (
	"fmt"

	"github.com/spf13/cobra"

	webstyle "github.com/0kibob/webstyle-framework"
	"github.com/0kibob/webstyle-framework/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [source_folder]",
	Short: "Validate every project without writing output",
	Long: `Run the whole build pipeline, report manifest, generator and
duplicate-class issues, and write nothing.`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return usageError{err: fmt.Errorf("check accepts at most one source folder, got %d arguments", len(args))}
		}
		return nil
	},
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.String("output-format", "issues", "Output format: issues|json")
	f.Bool("strict", false, "Exit 1 on any warning (CI mode)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := buildOptions(args)

	switch opts.OutputFormat {
	case "issues", "json":
	default:
		return usageError{err: fmt.Errorf("unknown output format %q (want issues or json)", opts.OutputFormat)}
	}

	logger, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := webstyle.Check(opts.libraryConfig(logger))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if !opts.Quiet {
		w := cmd.OutOrStdout()
		if opts.OutputFormat == "json" {
			if err := report.WriteJSON(w, len(result.Projects), result.FailedCount(), result.Issues); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		} else {
			r := report.NewReporter(w, opts.Color)
			r.PrintIssues(result.Issues)
			if len(result.Issues) > 0 {
				r.PrintSummary(result.Issues)
			} else {
				fmt.Fprintf(w, "%s %d project(s) checked, no issues\n",
					report.RenderStyle(report.StyleGreen, "✓", r.UseColors()), len(result.Projects))
			}
		}
	}

	return buildStatus(result, opts.Strict)
}
