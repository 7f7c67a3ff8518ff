package report

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Reporter prints issues in a compiler-like "file: message (source)" format
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. forceColors enables styling even when
// stdout is not a terminal.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(forceColors),
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	// NO_COLOR disables, FORCE_COLOR enables (https://no-color.org)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues outputs issues grouped by file. Issues of one file keep
// the order they were found in.
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].File < sorted[j].File
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := issue.File + ":"
	if issue.File == "" {
		location = issue.Project + ":"
	}

	severity := RenderStyle(StyleYellow, issue.Severity, r.useColors)
	if issue.Severity == SeverityError {
		severity = RenderStyle(StyleRed, issue.Severity, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s: %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		severity,
		issue.Text,
		RenderStyle(StyleGray, " ("+issue.Source+")", r.useColors))
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(issues []Issue) {
	errors, warnings := Count(issues)

	fmt.Fprintln(r.w, "")
	if errors > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(len(issues), "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(len(issues), "issue", "issues"))
	}

	sourceCounts := make(map[string]int)
	for _, issue := range issues {
		sourceCounts[issue.Source]++
	}

	sources := make([]string, 0, len(sourceCounts))
	for source := range sourceCounts {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		fmt.Fprintf(r.w, "* %s: %d\n", source, sourceCounts[source])
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
