package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// fieldProblems collects type problems found while decoding one generator
// entry. A wrongly typed field fails that generator only, never the manifest.
type fieldProblems struct {
	problems []string
	invalid  map[string]bool // labels of fields that failed to decode
}

func (d *fieldProblems) fail(label, format string, args ...any) {
	if d.invalid == nil {
		d.invalid = make(map[string]bool)
	}
	d.invalid[label] = true
	d.problems = append(d.problems, fmt.Sprintf(format, args...))
}

// has reports whether the field was present but unusable.
func (d *fieldProblems) has(label string) bool {
	return d.invalid[label]
}

// list returns a copy of the problems in decoding order.
func (d *fieldProblems) list() []string {
	if len(d.problems) == 0 {
		return nil
	}
	return append([]string(nil), d.problems...)
}

func (d *fieldProblems) str(label string, raw json.RawMessage, into *string) {
	if isNull(raw) {
		return
	}
	if err := json.Unmarshal(raw, into); err != nil {
		d.fail(label, "%s must be a string, got %s", label, rawText(raw))
	}
}

func (d *fieldProblems) integer(label string, raw json.RawMessage, into **int) {
	if isNull(raw) {
		return
	}
	n, err := strconv.Atoi(rawText(raw))
	if err != nil {
		d.fail(label, "%s must be an integer, got %s", label, rawText(raw))
		return
	}
	*into = &n
}

func (d *fieldProblems) boolean(label string, raw json.RawMessage, into *bool) {
	if isNull(raw) {
		return
	}
	if err := json.Unmarshal(raw, into); err != nil {
		d.fail(label, "%s must be a boolean, got %s", label, rawText(raw))
	}
}

func (d *fieldProblems) scales(label string, raw json.RawMessage, into **ordered.Map) {
	if isNull(raw) {
		return
	}
	m := &ordered.Map{}
	err := ordered.EachMember(raw, func(key string, value json.RawMessage) error {
		s, err := ordered.Scalar(value)
		if err != nil {
			d.fail(label, "%s: key %q: %v", label, key, err)
			return nil
		}
		m.Set(key, s)
		return nil
	})
	if err != nil {
		d.fail(label, "%s must be an object, got %s", label, rawText(raw))
		return
	}
	*into = m
}

func (d *fieldProblems) directions(raw json.RawMessage) []Direction {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.fail("directions", "directions must be a list, got %s", rawText(raw))
		return nil
	}

	out := make([]Direction, len(items))
	for i, item := range items {
		label := directionLabel(i)
		err := ordered.EachMember(item, func(key string, value json.RawMessage) error {
			switch key {
			case "prefix":
				d.str(label+": prefix", value, &out[i].Prefix)
			case "css-subkey":
				d.str(label+": css-subkey", value, &out[i].CSSSubkey)
			}
			return nil
		})
		if err != nil {
			d.fail(label, "%s must be an object, got %s", label, rawText(item))
		}
	}
	return out
}

func directionLabel(i int) string {
	return fmt.Sprintf("direction %d", i+1)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func rawText(raw json.RawMessage) string {
	return string(bytes.TrimSpace(raw))
}
