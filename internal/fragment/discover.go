// Package fragment finds a project's CSS fragment files and separates
// their :root token declarations from the rest of their content.
package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile lists fragment paths (gitignore syntax, relative to the
// project directory) that are left out of the build.
const IgnoreFile = ".webstyleignore"

// Discover returns every .css file under dir, recursively. Files whose base
// name appears in priority come first, in priority order; the rest follow
// in discovery order.
func Discover(dir string, priority []string) ([]string, error) {
	// Globbing inside an fs.FS keeps meta characters in dir itself literal.
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.css", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}

	gi, err := loadIgnore(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, rel := range matches {
		if gi != nil && gi.MatchesPath(rel) {
			continue
		}
		files = append(files, filepath.Join(dir, filepath.FromSlash(rel)))
	}

	return Prioritize(files, priority), nil
}

// Prioritize reorders files so that base names listed in priority come
// first in list order. The relative order of everything else is kept.
func Prioritize(files []string, priority []string) []string {
	rank := make(map[string]int, len(priority))
	for i, name := range priority {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}

	out := slices.Clone(files)
	slices.SortStableFunc(out, func(a, b string) int {
		ra, okA := rank[filepath.Base(a)]
		rb, okB := rank[filepath.Base(b)]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return out
}

// loadIgnore compiles the project's ignore file. A missing file is fine.
func loadIgnore(dir string) (*ignore.GitIgnore, error) {
	path := filepath.Join(dir, IgnoreFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return gi, nil
}
