// Package engine expands declarative generator definitions into CSS
// utility-class rules.
//
// The engine is pure: every Expand call depends only on the generator
// definition and the Context it receives, so it is safe to call from
// several goroutines at once.
package engine

import (
	"strings"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// TokenStore maps custom-property names to raw CSS value expressions.
// Values are never evaluated or validated.
type TokenStore struct {
	m ordered.Map
}

// BuildTokens merges roots, colors and fragment tokens, in that order.
// Later sources overwrite earlier ones on key collision. Any argument may be nil.
func BuildTokens(roots, colors, fragments *ordered.Map) *TokenStore {
	s := &TokenStore{}
	s.m.Merge(roots)
	s.m.Merge(colors)
	s.m.Merge(fragments)
	return s
}

// Lookup returns the raw value of a custom property.
func (s *TokenStore) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.m.Get(name)
}

// Len returns the number of tokens.
func (s *TokenStore) Len() int {
	if s == nil {
		return 0
	}
	return s.m.Len()
}

// Names returns the token names in emission order.
func (s *TokenStore) Names() []string {
	if s == nil {
		return nil
	}
	return s.m.Keys()
}

// RootBlock renders the store as a :root rule with one declaration per line.
func (s *TokenStore) RootBlock() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	if s != nil {
		for name, value := range s.m.All() {
			b.WriteString("    ")
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString(";\n")
		}
	}
	b.WriteString("}")
	return b.String()
}
