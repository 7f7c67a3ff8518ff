// Package webstyle builds one CSS framework file per project from CSS
// fragments and a JSON manifest of design tokens and utility generators.
//
// # Source layout
//
// Every immediate subdirectory of the source root holding a manifest named
// after the directory is a project:
//
//	src/
//	  aurora/
//	    aurora.json        // name, author, roots, colors, generators, ...
//	    reset.css
//	    components/button.css
//
// # Building
//
//	result, err := webstyle.Build(webstyle.Config{
//		SourceDir: "src",
//		OutputDir: "build",
//	})
//
// Each project is written to "{lower(name)}.webstyle_framework.css" in the
// output directory. A failing project never stops the others; inspect
// result.Projects and result.Issues.
//
// # CLI Tool
//
//	go install github.com/0kibob/webstyle-framework/cmd/webstyle@latest
package webstyle

import (
	"errors"

	"go.uber.org/zap"

	"github.com/0kibob/webstyle-framework/internal/report"
)

// Issue is re-exported for callers of Build and Check.
type Issue = report.Issue

var (
	// ErrMissingManifest marks a source subdirectory without "{dir}.json".
	ErrMissingManifest = errors.New("missing manifest")
	// ErrOutputCollision marks a project whose output file name is already
	// taken by an earlier project in the same run.
	ErrOutputCollision = errors.New("output file already produced by another project")
)

// Config holds build configuration
type Config struct {
	SourceDir string      // "src"
	OutputDir string      // "build"
	Jobs      int         // projects built concurrently; <= 1 builds sequentially
	DryRun    bool        // run the full pipeline without writing files
	Logger    *zap.Logger // nil disables logging
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ProjectResult describes one discovered project
type ProjectResult struct {
	Dir       string // project directory
	Manifest  string // manifest path
	Name      string // manifest name, empty if the manifest did not load
	Output    string // output file path, empty if nothing was written
	Fragments int
	Tokens    int
	Rules     int
	Issues    []Issue
	Err       error
}

// Failed reports whether the project produced no output.
func (p ProjectResult) Failed() bool {
	return p.Err != nil
}

// BuildResult contains the outcome of a whole run
type BuildResult struct {
	Projects []ProjectResult // projects with a manifest, in discovery order
	Skipped  []string        // subdirectories without a manifest
	Issues   []Issue         // every issue of the run, in discovery order
}

// FailedCount returns the number of projects that produced no output.
func (r *BuildResult) FailedCount() int {
	n := 0
	for _, p := range r.Projects {
		if p.Failed() {
			n++
		}
	}
	return n
}

// RuleCount returns the number of generated rules across all projects.
func (r *BuildResult) RuleCount() int {
	n := 0
	for _, p := range r.Projects {
		n += p.Rules
	}
	return n
}
