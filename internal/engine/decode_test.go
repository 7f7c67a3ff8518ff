package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

func TestBaseGeneratorDecodesManifestEntry(t *testing.T) {
	var g BaseGenerator
	require.NoError(t, json.Unmarshal([]byte(`{
		"prefix": "m", "value-key": "--spacing", "css-key": "margin",
		"step": 1, "auto": true, "scales": {"half": 0.5},
		"directions": [{"prefix": "mt", "css-subkey": "top"}],
		"unknown": [1, 2]
	}`), &g))
	g.ID = "margin"

	rules, err := g.Expand(Context{Tokens: BuildTokens(ordered.New("--spacing", "4px"), nil, nil)})
	require.NoError(t, err)
	assert.Equal(t, []string{
		".m-auto", ".m-half", ".m-0", ".m-1",
		".mt-auto", ".mt-half", ".mt-0", ".mt-1",
	}, selectors(rules))
	assert.Equal(t, "margin-top", rules[4].Property)
	assert.Equal(t, "calc(var(--spacing) * 0.5)", rules[1].Value)
}

func TestBaseGeneratorWrongFieldTypes(t *testing.T) {
	tokens := BuildTokens(ordered.New("--spacing", "4px"), nil, nil)
	valid := `"value-key": "--spacing", "css-key": "margin"`

	tests := []struct {
		name         string
		input        string
		wantProblems []string
	}{
		{
			name:         "step as string",
			input:        `{"prefix": "m", ` + valid + `, "step": "2"}`,
			wantProblems: []string{`step must be an integer, got "2"`},
		},
		{
			name:         "step as float literal",
			input:        `{"prefix": "m", ` + valid + `, "step": 2.0}`,
			wantProblems: []string{`step must be an integer, got 2.0`},
		},
		{
			name:         "auto as string",
			input:        `{"prefix": "m", ` + valid + `, "step": 1, "auto": "yes"}`,
			wantProblems: []string{`auto must be a boolean, got "yes"`},
		},
		{
			name:         "boolean scale",
			input:        `{"prefix": "m", ` + valid + `, "step": 1, "scales": {"half": true}}`,
			wantProblems: []string{`scales: key "half": value must be a string or a number, got true`},
		},
		{
			name:         "scales not an object",
			input:        `{"prefix": "m", ` + valid + `, "step": 1, "scales": [1]}`,
			wantProblems: []string{`scales must be an object, got [1]`},
		},
		{
			name:         "wrongly typed prefix is not also reported missing",
			input:        `{"prefix": 5, ` + valid + `, "step": 1}`,
			wantProblems: []string{`prefix must be a string, got 5`},
		},
		{
			name:  "type problems come before missing fields",
			input: `{"prefix": "m", "css-key": "margin", "step": "x"}`,
			wantProblems: []string{
				`step must be an integer, got "x"`,
				`missing required field "value-key"`,
			},
		},
		{
			name:  "bad directions",
			input: `{"prefix": "m", ` + valid + `, "step": 1, "directions": [{"prefix": "mt", "css-subkey": 1}, "x", {"prefix": "mb"}]}`,
			wantProblems: []string{
				`direction 1: css-subkey must be a string, got 1`,
				`direction 2 must be an object, got "x"`,
				`direction 3: missing required field "css-subkey"`,
			},
		},
		{
			name:         "directions not a list",
			input:        `{"prefix": "m", ` + valid + `, "step": 1, "directions": "top"}`,
			wantProblems: []string{`directions must be a list, got "top"`},
		},
		{
			name:         "entry not an object",
			input:        `"margin"`,
			wantProblems: []string{`generator must be an object, got "margin"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g BaseGenerator
			require.NoError(t, json.Unmarshal([]byte(tt.input), &g))
			g.ID = "m"

			rules, err := g.Expand(Context{Tokens: tokens})
			assert.Empty(t, rules)

			var diag *Diagnostic
			require.True(t, errors.As(err, &diag))
			assert.Equal(t, "m", diag.Generator)
			assert.Equal(t, tt.wantProblems, diag.Problems)
		})
	}
}

func TestBaseGeneratorNullFieldsAreAbsent(t *testing.T) {
	var g BaseGenerator
	require.NoError(t, json.Unmarshal([]byte(`{"prefix": "m", "value-key": "--s", "css-key": "margin", "step": null, "scales": null}`), &g))
	g.ID = "m"

	rules, err := g.Expand(Context{
		Tokens:   BuildTokens(ordered.New("--s", "1px"), nil, nil),
		Defaults: Defaults{Step: intp(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".m-0"}, selectors(rules))
}

func TestColorGeneratorWrongFieldTypes(t *testing.T) {
	palette := ordered.New("--red", "red")

	tests := []struct {
		name         string
		input        string
		wantProblems []string
	}{
		{
			name:         "is-hover as string",
			input:        `{"prefix": "bg", "css-key": "background", "is-hover": "yes"}`,
			wantProblems: []string{`is-hover must be a boolean, got "yes"`},
		},
		{
			name:         "numeric prefix",
			input:        `{"prefix": 1, "css-key": "color"}`,
			wantProblems: []string{`prefix must be a string, got 1`},
		},
		{
			name:         "entry not an object",
			input:        `[]`,
			wantProblems: []string{`generator must be an object, got []`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g ColorGenerator
			require.NoError(t, json.Unmarshal([]byte(tt.input), &g))
			g.ID = "colors-generators[0]"

			rules, err := g.Expand(Context{Palette: palette})
			assert.Empty(t, rules)

			var diag *Diagnostic
			require.True(t, errors.As(err, &diag))
			assert.Equal(t, tt.wantProblems, diag.Problems)
		})
	}
}
