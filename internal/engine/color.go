package engine

import (
	"encoding/json"
	"strings"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// ColorGenerator expands the project palette into one class per color.
type ColorGenerator struct {
	ID      string
	Prefix  string
	CSSKey  string
	IsHover bool

	decoded fieldProblems
}

// UnmarshalJSON reads a manifest entry field by field. Wrongly typed fields
// never fail decoding; Expand reports them.
func (g *ColorGenerator) UnmarshalJSON(data []byte) error {
	*g = ColorGenerator{}
	d := &g.decoded
	err := ordered.EachMember(data, func(key string, raw json.RawMessage) error {
		switch key {
		case "prefix":
			d.str("prefix", raw, &g.Prefix)
		case "css-key":
			d.str("css-key", raw, &g.CSSKey)
		case "is-hover":
			d.boolean("is-hover", raw, &g.IsHover)
		}
		return nil
	})
	if err != nil {
		d.fail("generator", "generator must be an object, got %s", rawText(data))
	}
	return nil
}

// Name returns the generator's label.
func (g ColorGenerator) Name() string { return g.ID }

// Kind returns KindColor.
func (g ColorGenerator) Kind() Kind { return KindColor }

// Expand emits a -none rule followed by one rule per palette entry.
// An entry without prefix or css-key yields nothing and no error; a
// wrongly typed field is a Diagnostic.
func (g ColorGenerator) Expand(ctx Context) ([]Rule, error) {
	if problems := g.decoded.list(); len(problems) > 0 {
		return nil, &Diagnostic{Generator: g.ID, Problems: problems}
	}
	if g.Prefix == "" || g.CSSKey == "" {
		return nil, nil
	}

	pseudo := ""
	if g.IsHover {
		pseudo = ":hover"
	}

	rules := make([]Rule, 0, 1+ctx.Palette.Len())
	rules = append(rules, Rule{
		Selector: classSelector(g.Prefix, "none") + pseudo,
		Property: g.CSSKey,
		Value:    "transparent",
	})

	for key := range ctx.Palette.All() {
		suffix := strings.TrimLeft(key, "-")
		rules = append(rules, Rule{
			Selector: classSelector(g.Prefix, suffix) + pseudo,
			Property: g.CSSKey,
			Value:    "var(" + key + ")",
		})
	}

	return rules, nil
}
