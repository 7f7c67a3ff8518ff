// Package report formats build issues for terminals and tools.
package report

// Issue is a single problem found while building a project
type Issue struct {
	Project  string `json:"project"`  // "aurora"
	File     string `json:"file"`     // "src/aurora/aurora.json"
	Source   string `json:"source"`   // "generator"
	Severity string `json:"severity"` // "error", "warning"
	Text     string `json:"text"`     // "generator \"margin\": missing required field \"prefix\""
}

// Severity levels
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue sources
const (
	SourceDiscovery = "discovery"
	SourceManifest  = "manifest"
	SourceGenerator = "generator"
	SourceDuplicate = "duplicate"
	SourceIO        = "io"
)

// Count splits issues by severity.
func Count(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
