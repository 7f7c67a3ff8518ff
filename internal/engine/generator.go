package engine

import (
	"fmt"
	"strings"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// Kind identifies one of the closed set of generator kinds.
type Kind string

// Generator kinds
const (
	KindBase  Kind = "base"
	KindColor Kind = "color"
)

// Generator expands one manifest entry into rules. A failure is reported
// as a *Diagnostic and never affects other generators.
type Generator interface {
	Name() string
	Kind() Kind
	Expand(ctx Context) ([]Rule, error)
}

// Context is everything a generator may read while expanding.
type Context struct {
	Tokens   *TokenStore
	Palette  *ordered.Map
	Defaults Defaults
}

// Defaults are the project-wide fallbacks for generators that omit
// their own step or scales.
type Defaults struct {
	Step   *int
	Scales *ordered.Map
}

// resolveStep returns the generator's own step, else the project default.
func resolveStep(own, project *int) (int, bool) {
	if own != nil {
		return *own, true
	}
	if project != nil {
		return *project, true
	}
	return 0, false
}

// resolveScales returns the generator's own scales, else the project default.
func resolveScales(own, project *ordered.Map) *ordered.Map {
	if own != nil {
		return own
	}
	return project
}

// Rule is a single-declaration CSS class rule.
type Rule struct {
	Selector string // ".m-1" or ".bg-red:hover"
	Property string
	Value    string
}

func (r Rule) String() string {
	return fmt.Sprintf("%s { %s: %s; }", r.Selector, r.Property, r.Value)
}

// Render joins rules one per line.
func Render(rules []Rule) string {
	lines := make([]string, len(rules))
	for i, r := range rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// Diagnostic describes why a generator produced no rules.
type Diagnostic struct {
	Generator string
	Problems  []string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("generator %q: %s", d.Generator, strings.Join(d.Problems, "; "))
}

// Comment renders the diagnostic as CSS comment lines, one per problem,
// to be emitted in place of the generator's rules.
func (d *Diagnostic) Comment() string {
	lines := make([]string, len(d.Problems))
	for i, p := range d.Problems {
		msg := fmt.Sprintf("generator %q: %s", d.Generator, p)
		lines[i] = "/* webstyle: " + strings.ReplaceAll(msg, "*/", "* /") + " */"
	}
	return strings.Join(lines, "\n")
}
