package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	webstyle "github.com/0kibob/webstyle-framework"
	"github.com/0kibob/webstyle-framework/internal/report"
)

var buildCmd = &cobra.Command{
	Use:   "build [source_folder output_folder]",
	Short: "Build every project into one CSS file",
	Long: `Discover the projects of the source folder and write one
{name}.webstyle_framework.css per project into the output folder.
A project is a subfolder carrying a manifest named after it ({folder}.json).`,
	Args: sourceOutputArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("jobs", "j", 1, "Number of projects built in parallel")
	f.Bool("strict", false, "Exit 1 on any warning (CI mode)")
}

// runBuild is shared between `webstyle` and `webstyle build`.
func runBuild(cmd *cobra.Command, args []string) error {
	opts := buildOptions(args)

	logger, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := webstyle.Build(opts.libraryConfig(logger))
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if !opts.Quiet {
		printBuildResult(cmd.OutOrStdout(), result, opts)
	}

	return buildStatus(result, opts.Strict)
}

// buildStatus decides whether a finished build counts as a failure.
func buildStatus(result *webstyle.BuildResult, strict bool) error {
	if result.FailedCount() > 0 {
		return errBuildFailed
	}
	if strict {
		if _, warnings := report.Count(result.Issues); warnings > 0 {
			return errBuildFailed
		}
	}
	return nil
}

// printBuildResult writes issues, one line per project and a summary.
func printBuildResult(w io.Writer, result *webstyle.BuildResult, opts cliOptions) {
	r := report.NewReporter(w, opts.Color)
	useColors := r.UseColors()

	r.PrintIssues(result.Issues)
	if len(result.Issues) > 0 {
		fmt.Fprintln(w)
	}

	for _, p := range result.Projects {
		label := p.Name
		if label == "" {
			label = p.Dir
		}

		switch {
		case p.Failed():
			fmt.Fprintf(w, "%s %s: %v\n",
				report.RenderStyle(report.StyleRed, "✗", useColors), label, p.Err)
		case p.Output == "":
			fmt.Fprintf(w, "%s %s %s\n",
				report.RenderStyle(report.StyleGreen, "✓", useColors), label,
				report.RenderStyle(report.StyleGray, fmt.Sprintf("(%d rules, not written)", p.Rules), useColors))
		default:
			fmt.Fprintf(w, "%s %s → %s %s\n",
				report.RenderStyle(report.StyleGreen, "✓", useColors), label,
				report.RenderStyle(report.StyleCyan, p.Output, useColors),
				report.RenderStyle(report.StyleGray, fmt.Sprintf("(%d rules)", p.Rules), useColors))
		}
	}

	built := len(result.Projects) - result.FailedCount()
	fmt.Fprintf(w, "\nProjects built: %d/%d", built, len(result.Projects))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, ", skipped: %d", len(result.Skipped))
	}
	fmt.Fprintf(w, ", rules generated: %d\n", result.RuleCount())

	if len(result.Issues) > 0 {
		r.PrintSummary(result.Issues)
	}
}
