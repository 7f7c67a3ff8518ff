// Package ordered provides an insertion-ordered string map with JSON
// decoding that keeps the declaration order of object members.
package ordered

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

// Map is an insertion-ordered mapping from string keys to string values.
// Overwriting a key keeps its original position. The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]string
}

// New builds a Map from alternating key/value pairs.
func New(pairs ...string) *Map {
	m := &Map{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set stores value under key. The last writer wins.
func (m *Map) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys. A nil Map is empty.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m.Len() == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Merge copies every entry of other into m, overwriting existing keys.
func (m *Map) Merge(other *Map) {
	for k, v := range other.All() {
		m.Set(k, v)
	}
}

// UnmarshalJSON decodes a JSON object whose members are strings or numbers.
// Numbers keep their literal text ("0.5" stays "0.5").
func (m *Map) UnmarshalJSON(data []byte) error {
	*m = Map{}
	return EachMember(data, func(key string, raw json.RawMessage) error {
		value, err := Scalar(raw)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, value)
		return nil
	})
}

var errNotObject = errors.New("expected a JSON object")

// EachMember walks the members of a JSON object in document order and calls
// fn with each key and its raw value. A JSON null is treated as an empty object.
func EachMember(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Scalar renders a JSON string or number as plain text. Numbers keep
// their literal form.
func Scalar(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", errors.New("empty value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", fmt.Errorf("value must be a string or a number, got %s", trimmed)
	}
}
