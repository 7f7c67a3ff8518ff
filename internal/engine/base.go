package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// Direction repeats a base expansion against "{css-key}-{css-subkey}"
// under its own class prefix.
type Direction struct {
	Prefix    string
	CSSSubkey string
}

// BaseGenerator expands a token into a family of multiplier classes.
//
// Step and Scales are nil when the manifest omits them; Expand then falls
// back to Context.Defaults.
type BaseGenerator struct {
	ID         string
	Prefix     string
	ValueKey   string
	CSSKey     string
	Step       *int
	Auto       bool
	Scales     *ordered.Map
	Directions []Direction

	decoded fieldProblems
}

// UnmarshalJSON reads a manifest entry field by field. Wrongly typed fields
// never fail decoding; Expand reports them.
func (g *BaseGenerator) UnmarshalJSON(data []byte) error {
	*g = BaseGenerator{}
	d := &g.decoded
	err := ordered.EachMember(data, func(key string, raw json.RawMessage) error {
		switch key {
		case "prefix":
			d.str("prefix", raw, &g.Prefix)
		case "value-key":
			d.str("value-key", raw, &g.ValueKey)
		case "css-key":
			d.str("css-key", raw, &g.CSSKey)
		case "step":
			d.integer("step", raw, &g.Step)
		case "auto":
			d.boolean("auto", raw, &g.Auto)
		case "scales":
			d.scales("scales", raw, &g.Scales)
		case "directions":
			g.Directions = d.directions(raw)
		}
		return nil
	})
	if err != nil {
		d.fail("generator", "generator must be an object, got %s", rawText(data))
	}
	return nil
}

// Name returns the generator's key in the manifest.
func (g BaseGenerator) Name() string { return g.ID }

// Kind returns KindBase.
func (g BaseGenerator) Kind() Kind { return KindBase }

// Expand emits, in order: the -auto rule, one rule per scale, one rule
// per step 0..step, then the same sequence for every direction.
func (g BaseGenerator) Expand(ctx Context) ([]Rule, error) {
	d := &g.decoded
	problems := d.list()
	if d.has("generator") {
		return nil, &Diagnostic{Generator: g.ID, Problems: problems}
	}

	if g.Prefix == "" && !d.has("prefix") {
		problems = append(problems, missingField("prefix"))
	}

	value, problem := g.resolveValue(ctx.Tokens)
	if problem != "" && !d.has("value-key") {
		problems = append(problems, problem)
	}

	if g.CSSKey == "" && !d.has("css-key") {
		problems = append(problems, missingField("css-key"))
	}

	step, ok := resolveStep(g.Step, ctx.Defaults.Step)
	switch {
	case d.has("step"):
	case !ok:
		problems = append(problems, missingField("step"))
	case step < 0:
		problems = append(problems, fmt.Sprintf("step must not be negative, got %d", step))
	}

	for i, dir := range g.Directions {
		label := directionLabel(i)
		if d.has(label) {
			continue
		}
		if dir.Prefix == "" && !d.has(label+": prefix") {
			problems = append(problems, fmt.Sprintf("%s: %s", label, missingField("prefix")))
		}
		if dir.CSSSubkey == "" && !d.has(label+": css-subkey") {
			problems = append(problems, fmt.Sprintf("%s: %s", label, missingField("css-subkey")))
		}
	}

	if len(problems) > 0 {
		return nil, &Diagnostic{Generator: g.ID, Problems: problems}
	}

	scales := resolveScales(g.Scales, ctx.Defaults.Scales)
	perFamily := step + 1 + scales.Len()
	if g.Auto {
		perFamily++
	}

	rules := make([]Rule, 0, perFamily*(1+len(g.Directions)))
	rules = g.appendFamily(rules, g.Prefix, g.CSSKey, value, step, scales)
	for _, dir := range g.Directions {
		rules = g.appendFamily(rules, dir.Prefix, g.CSSKey+"-"+dir.CSSSubkey, value, step, scales)
	}

	return rules, nil
}

// resolveValue turns value-key into the expression used inside calc().
// Custom properties must exist in tokens and become var() references.
func (g BaseGenerator) resolveValue(tokens *TokenStore) (string, string) {
	if g.ValueKey == "" {
		return "", missingField("value-key")
	}
	if !strings.HasPrefix(g.ValueKey, "--") {
		return g.ValueKey, ""
	}
	if _, ok := tokens.Lookup(g.ValueKey); !ok {
		return "", fmt.Sprintf("value-key %q does not name a known token", g.ValueKey)
	}
	return "var(" + g.ValueKey + ")", ""
}

func (g BaseGenerator) appendFamily(rules []Rule, prefix, property, value string, step int, scales *ordered.Map) []Rule {
	if g.Auto {
		rules = append(rules, Rule{
			Selector: classSelector(prefix, "auto"),
			Property: property,
			Value:    "auto",
		})
	}

	for name, multiplier := range scales.All() {
		rules = append(rules, Rule{
			Selector: classSelector(prefix, name),
			Property: property,
			Value:    calc(value, multiplier),
		})
	}

	// i = 0 stays calc(value * 0); the unit must survive.
	for i := 0; i <= step; i++ {
		n := strconv.Itoa(i)
		rules = append(rules, Rule{
			Selector: classSelector(prefix, n),
			Property: property,
			Value:    calc(value, n),
		})
	}

	return rules
}

func classSelector(prefix, suffix string) string {
	return "." + prefix + "-" + suffix
}

func calc(value, multiplier string) string {
	return "calc(" + value + " * " + multiplier + ")"
}

func missingField(name string) string {
	return fmt.Sprintf("missing required field %q", name)
}
