// Package manifest loads the per-project JSON manifest that declares
// tokens, palettes and generators.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/0kibob/webstyle-framework/internal/engine"
	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// Extension is the manifest file extension. A project directory "foo"
// is described by "foo/foo.json".
const Extension = ".json"

// OutputSuffix is appended to the lower-cased project name to form the
// output file name.
const OutputSuffix = ".webstyle_framework.css"

var (
	// ErrInvalidManifest is returned for manifests that decode but miss
	// required project fields.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Setting holds project-wide generator defaults.
type Setting struct {
	Step   *int         `json:"step"`
	Scales *ordered.Map `json:"scales"`
}

// Manifest is the decoded project description.
type Manifest struct {
	Name               string
	Author             string
	Setting            Setting
	Roots              *ordered.Map
	Colors             *ordered.Map
	Generators         []engine.BaseGenerator // declaration order
	ColorGenerators    []engine.ColorGenerator
	FilesPriorityOrder []string
}

type rawManifest struct {
	Name               string                  `json:"name"`
	Author             string                  `json:"author"`
	Setting            Setting                 `json:"setting"`
	Roots              *ordered.Map            `json:"roots"`
	Colors             *ordered.Map            `json:"colors"`
	Generators         json.RawMessage         `json:"generators"`
	ColorGenerators    []engine.ColorGenerator `json:"colors-generators"`
	FilesPriorityOrder []string                `json:"files-priority-order"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	// #nosec G304 - path is derived from the configured source root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	m := &Manifest{
		Name:               raw.Name,
		Author:             raw.Author,
		Setting:            raw.Setting,
		Roots:              raw.Roots,
		Colors:             raw.Colors,
		ColorGenerators:    raw.ColorGenerators,
		FilesPriorityOrder: raw.FilesPriorityOrder,
	}

	if len(raw.Generators) > 0 {
		err := ordered.EachMember(raw.Generators, func(key string, msg json.RawMessage) error {
			var g engine.BaseGenerator
			if err := json.Unmarshal(msg, &g); err != nil {
				return fmt.Errorf("generator %q: %w", key, err)
			}
			g.ID = key
			m.Generators = append(m.Generators, g)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: generators: %v", ErrInvalidManifest, err)
		}
	}

	for i := range m.ColorGenerators {
		m.ColorGenerators[i].ID = fmt.Sprintf("colors-generators[%d]", i)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the project-level required fields.
func (m *Manifest) Validate() error {
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(m.Author) == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required field(s) %s", ErrInvalidManifest, strings.Join(missing, ", "))
	}

	if strings.ContainsAny(m.Name, `/\`) || m.Name == "." || m.Name == ".." {
		return fmt.Errorf("%w: name %q must be a plain file name without path separators", ErrInvalidManifest, m.Name)
	}
	return nil
}

// OutputName is the file name the project is written to.
func (m *Manifest) OutputName() string {
	return strings.ToLower(m.Name) + OutputSuffix
}

// Defaults returns the project-wide generator fallbacks.
func (m *Manifest) Defaults() engine.Defaults {
	return engine.Defaults{
		Step:   m.Setting.Step,
		Scales: m.Setting.Scales,
	}
}

// AllGenerators returns every generator in emission order: base
// generators first, then color generators.
func (m *Manifest) AllGenerators() []engine.Generator {
	out := make([]engine.Generator, 0, len(m.Generators)+len(m.ColorGenerators))
	for _, g := range m.Generators {
		out = append(out, g)
	}
	for _, g := range m.ColorGenerators {
		out = append(out, g)
	}
	return out
}

// Credits renders the attribution comment placed at the top of every
// output file.
func (m *Manifest) Credits() string {
	const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	return "/*\n" +
		" ┏" + rule + "\n" +
		" ┃ " + m.Name + ", by " + m.Author + "\n" +
		" ┃ Build using WebStyle Framework\n" +
		" ┃ Copyright (c) 2025 LAURET Timéo\n" +
		" ┃ https://github.com/0kibob/webstyle-framework\n" +
		" ┗" + rule + "\n" +
		"*/\n"
}
