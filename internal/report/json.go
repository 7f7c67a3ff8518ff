package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []Issue     `json:"issues"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	Projects    int `json:"projects"`
	Failed      int `json:"failed"`
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
}

// WriteJSON writes issues and project counts as indented JSON
func WriteJSON(w io.Writer, projects, failed int, issues []Issue) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(projects, failed, issues))
}

func buildJSONOutput(projects, failed int, issues []Issue) JSONOutput {
	errors, warnings := Count(issues)
	if issues == nil {
		issues = []Issue{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			Projects:    projects,
			Failed:      failed,
			TotalIssues: len(issues),
			Errors:      errors,
			Warnings:    warnings,
		},
		Issues: issues,
	}
}
