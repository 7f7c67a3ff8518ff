package webstyle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0kibob/webstyle-framework/internal/manifest"
	"github.com/0kibob/webstyle-framework/internal/report"
)

// Default source and destination used by the CLI when no arguments are given.
const (
	DefaultSourceDir = "src/"
	DefaultOutputDir = "build/"
)

// Build discovers every project under config.SourceDir and writes one CSS
// file per valid project into config.OutputDir.
//
// The returned error is reserved for failures that stop the whole run
// (unreadable source root, uncreatable output directory). Per-project
// failures are reported in the result.
func Build(config Config) (*BuildResult, error) {
	log := config.logger()
	result := &BuildResult{}

	// 1. Discover project directories
	candidates, err := discoverProjects(config.SourceDir, result, log)
	if err != nil {
		return nil, err
	}

	// 2. Load manifests and reserve output paths
	plans := planProjects(candidates, config.OutputDir, log)

	// 3. Make sure the destination exists before any worker writes
	if !config.DryRun {
		if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	// 4. Build
	result.Projects = make([]ProjectResult, len(plans))
	// With a limit of one, g.Go blocks until the previous project is done,
	// so projects build strictly in discovery order.
	var g errgroup.Group
	g.SetLimit(max(config.Jobs, 1))
	for i, plan := range plans {
		if plan.result.Err != nil {
			result.Projects[i] = plan.result
			continue
		}
		g.Go(func() error {
			result.Projects[i] = buildProject(plan, config, log)
			return nil
		})
	}
	_ = g.Wait()

	for _, p := range result.Projects {
		result.Issues = append(result.Issues, p.Issues...)
	}

	return result, nil
}

// Check runs the full build pipeline without writing any file.
func Check(config Config) (*BuildResult, error) {
	config.DryRun = true
	return Build(config)
}

type candidate struct {
	dir      string
	manifest string
}

// discoverProjects lists the subdirectories of sourceDir that carry a
// "{dir}.json" manifest. Others are recorded as skipped.
func discoverProjects(sourceDir string, result *BuildResult, log *zap.Logger) ([]candidate, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(sourceDir, entry.Name())
		manifestPath := filepath.Join(dir, entry.Name()+manifest.Extension)

		info, err := os.Stat(manifestPath)
		if err != nil || info.IsDir() {
			text := fmt.Sprintf("%v: %s not found, project skipped", ErrMissingManifest, entry.Name()+manifest.Extension)
			log.Warn("skipping directory", zap.String("dir", dir), zap.String("reason", text))
			result.Skipped = append(result.Skipped, dir)
			result.Issues = append(result.Issues, Issue{
				Project:  entry.Name(),
				File:     dir,
				Source:   report.SourceDiscovery,
				Severity: report.SeverityWarning,
				Text:     text,
			})
			continue
		}

		candidates = append(candidates, candidate{dir: dir, manifest: manifestPath})
	}

	return candidates, nil
}

type projectPlan struct {
	manifest *manifest.Manifest
	output   string
	result   ProjectResult
}

// planProjects loads every manifest and assigns output paths. Invalid
// manifests and output collisions are marked failed up front so that no
// two workers ever target the same file.
func planProjects(candidates []candidate, outputDir string, log *zap.Logger) []projectPlan {
	plans := make([]projectPlan, len(candidates))
	claimed := make(map[string]string)

	for i, c := range candidates {
		plan := projectPlan{result: ProjectResult{Dir: c.dir, Manifest: c.manifest}}

		m, err := manifest.Load(c.manifest)
		if err != nil {
			source := report.SourceManifest
			if !errors.Is(err, manifest.ErrInvalidManifest) {
				source = report.SourceIO
			}
			plan.result.fail(source, err)
			log.Error("invalid manifest", zap.String("manifest", c.manifest), zap.Error(err))
			plans[i] = plan
			continue
		}

		plan.manifest = m
		plan.result.Name = m.Name
		plan.output = filepath.Join(outputDir, m.OutputName())

		if owner, taken := claimed[plan.output]; taken {
			err := fmt.Errorf("%w: %s (also produced by %s)", ErrOutputCollision, m.OutputName(), owner)
			plan.result.fail(report.SourceManifest, err)
			log.Error("output collision", zap.String("project", m.Name), zap.String("output", plan.output), zap.String("owner", owner))
		} else {
			claimed[plan.output] = c.dir
		}

		plans[i] = plan
	}

	return plans
}

// fail records err as the project's terminal error and as an error issue.
func (p *ProjectResult) fail(source string, err error) {
	p.Err = err
	p.Issues = append(p.Issues, Issue{
		Project:  projectLabel(*p),
		File:     p.Manifest,
		Source:   source,
		Severity: report.SeverityError,
		Text:     err.Error(),
	})
}

func projectLabel(p ProjectResult) string {
	if p.Name != "" {
		return p.Name
	}
	return filepath.Base(p.Dir)
}
