package webstyle

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/0kibob/webstyle-framework/internal/engine"
	"github.com/0kibob/webstyle-framework/internal/fragment"
	"github.com/0kibob/webstyle-framework/internal/ordered"
	"github.com/0kibob/webstyle-framework/internal/report"
)

// buildProject assembles and writes a single project. Generator failures
// are recorded as issues; only I/O failures make the project fail.
func buildProject(plan projectPlan, config Config, log *zap.Logger) ProjectResult {
	res := plan.result
	m := plan.manifest
	log = log.With(zap.String("project", m.Name))
	log.Debug("building project", zap.String("dir", res.Dir))

	// 1. Fragments
	files, err := fragment.Discover(res.Dir, m.FilesPriorityOrder)
	if err != nil {
		res.fail(report.SourceIO, err)
		log.Error("fragment discovery failed", zap.Error(err))
		return res
	}

	fragments := make([]fragment.Fragment, 0, len(files))
	fragmentTokens := &ordered.Map{}
	for _, file := range files {
		frag, err := fragment.Read(file)
		if err != nil {
			res.fail(report.SourceIO, err)
			log.Error("fragment unreadable", zap.String("file", file), zap.Error(err))
			return res
		}
		fragmentTokens.Merge(frag.Tokens)
		fragments = append(fragments, frag)
	}
	res.Fragments = len(fragments)

	// 2. Tokens
	tokens := engine.BuildTokens(m.Roots, m.Colors, fragmentTokens)
	res.Tokens = tokens.Len()

	// 3. Generators
	ctx := engine.Context{
		Tokens:   tokens,
		Palette:  m.Colors,
		Defaults: m.Defaults(),
	}

	var baseBlocks, colorBlocks []string
	dups := newDuplicateTracker()
	for _, g := range m.AllGenerators() {
		rules, err := g.Expand(ctx)

		var diag *engine.Diagnostic
		switch {
		case errors.As(err, &diag):
			log.Warn("generator failed", zap.String("generator", g.Name()), zap.Strings("problems", diag.Problems))
			for _, problem := range diag.Problems {
				res.Issues = append(res.Issues, Issue{
					Project:  m.Name,
					File:     res.Manifest,
					Source:   report.SourceGenerator,
					Severity: report.SeverityWarning,
					Text:     fmt.Sprintf("generator %q: %s", diag.Generator, problem),
				})
			}
			baseBlocks = append(baseBlocks, diag.Comment())
			continue
		case err != nil:
			res.fail(report.SourceGenerator, err)
			return res
		case len(rules) == 0:
			log.Debug("generator produced no rules", zap.String("generator", g.Name()))
			continue
		}

		dups.add(g.Name(), rules)
		res.Rules += len(rules)

		if g.Kind() == engine.KindColor {
			colorBlocks = append(colorBlocks, engine.Render(rules))
		} else {
			baseBlocks = append(baseBlocks, engine.Render(rules))
		}
	}

	for _, text := range dups.warnings() {
		log.Warn("duplicate classes", zap.String("detail", text))
		res.Issues = append(res.Issues, Issue{
			Project:  m.Name,
			File:     res.Manifest,
			Source:   report.SourceDuplicate,
			Severity: report.SeverityWarning,
			Text:     text,
		})
	}

	// 4. Assemble
	bodies := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		if frag.Body != "" {
			bodies = append(bodies, frag.Body)
		}
	}

	content := assemble(
		strings.TrimSuffix(m.Credits(), "\n"),
		tokens.RootBlock(),
		strings.Join(baseBlocks, "\n\n"),
		strings.Join(colorBlocks, "\n\n"),
		strings.Join(bodies, "\n\n"),
	)

	// 5. Write
	if config.DryRun {
		log.Debug("dry run, output not written", zap.String("output", plan.output))
		return res
	}

	if err := writeFileAtomic(plan.output, []byte(content)); err != nil {
		res.fail(report.SourceIO, err)
		log.Error("write failed", zap.String("output", plan.output), zap.Error(err))
		return res
	}
	res.Output = plan.output

	log.Info("project built",
		zap.String("output", plan.output),
		zap.Int("fragments", res.Fragments),
		zap.Int("tokens", res.Tokens),
		zap.Int("rules", res.Rules))

	return res
}

// assemble joins the non-empty sections with one blank line between them.
func assemble(sections ...string) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// duplicateTracker remembers which generator first emitted each selector.
type duplicateTracker struct {
	owner map[string]string
	pairs []duplicatePair
}

type duplicatePair struct {
	later, earlier string
	first          string
	count          int
}

func newDuplicateTracker() *duplicateTracker {
	return &duplicateTracker{owner: make(map[string]string)}
}

func (d *duplicateTracker) add(generator string, rules []engine.Rule) {
	for _, r := range rules {
		earlier, seen := d.owner[r.Selector]
		if !seen {
			d.owner[r.Selector] = generator
			continue
		}
		d.record(generator, earlier, r.Selector)
	}
}

func (d *duplicateTracker) record(later, earlier, selector string) {
	for i := range d.pairs {
		if d.pairs[i].later == later && d.pairs[i].earlier == earlier {
			d.pairs[i].count++
			return
		}
	}
	d.pairs = append(d.pairs, duplicatePair{later: later, earlier: earlier, first: selector, count: 1})
}

func (d *duplicateTracker) warnings() []string {
	out := make([]string, 0, len(d.pairs))
	for _, p := range d.pairs {
		if p.later == p.earlier {
			out = append(out, fmt.Sprintf("generator %q emits %d class(es) more than once (first: %q)", p.later, p.count, p.first))
			continue
		}
		out = append(out, fmt.Sprintf("generator %q re-emits %d class(es) of generator %q (first: %q)", p.later, p.count, p.earlier, p.first))
	}
	return out
}
