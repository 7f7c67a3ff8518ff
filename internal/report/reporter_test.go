package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleIssues = []Issue{
	{Project: "beta", File: "src/beta/beta.json", Source: SourceGenerator, Severity: SeverityWarning, Text: `generator "m": missing required field "prefix"`},
	{Project: "alpha", File: "src/alpha/alpha.json", Source: SourceManifest, Severity: SeverityError, Text: "missing required field(s) author"},
	{Project: "beta", File: "src/beta/beta.json", Source: SourceDuplicate, Severity: SeverityWarning, Text: `class ".m-1" emitted twice`},
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}
	r.PrintIssues(sampleIssues)

	want := "src/alpha/alpha.json: error: missing required field(s) author (manifest)\n" +
		"src/beta/beta.json: warning: generator \"m\": missing required field \"prefix\" (generator)\n" +
		"src/beta/beta.json: warning: class \".m-1\" emitted twice (duplicate)\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, "beta", sampleIssues[0].Project, "input slice not reordered")
}

func TestPrintIssuesFallsBackToProject(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}
	r.PrintIssues([]Issue{{Project: "gamma", Source: SourceDiscovery, Severity: SeverityWarning, Text: "no manifest"}})
	assert.Equal(t, "gamma: warning: no manifest (discovery)\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   string
	}{
		{
			name:   "mixed severities",
			issues: sampleIssues,
			want:   "\n3 issues (1 error, 2 warnings):\n* duplicate: 1\n* generator: 1\n* manifest: 1\n",
		},
		{
			name:   "single warning",
			issues: sampleIssues[:1],
			want:   "\n1 issue:\n* generator: 1\n",
		},
		{
			name: "no issues",
			want: "\n0 issues:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := &Reporter{w: &buf}
			r.PrintSummary(tt.issues)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, 3, 1, sampleIssues))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "1.0", out.Version)
	assert.NotEmpty(t, out.Timestamp)
	assert.Equal(t, JSONSummary{Projects: 3, Failed: 1, TotalIssues: 3, Errors: 1, Warnings: 2}, out.Summary)
	assert.Equal(t, sampleIssues, out.Issues)
}

func TestWriteJSONEmptyIssuesIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, 0, 0, nil))
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestRenderStyle(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleRed, "plain", false))
}

func TestShouldUseColorsForced(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, ShouldUseColors(true))
	assert.False(t, ShouldUseColors(false))
}
