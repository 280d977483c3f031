package stamp

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Excluder hides matching entries from the walker.
// Patterns support:
//   - Base name globs: *.tmp, .DS_Store
//   - Directory patterns: .git/, node_modules/ (match directories only, at any depth)
//   - Path patterns relative to the root: build/*, **/cache/**
type Excluder struct {
	patterns []pattern
}

type pattern struct {
	glob    string
	dirOnly bool
	onPath  bool
}

// NewExcluder validates and compiles the patterns
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{}
	for _, raw := range patterns {
		if raw == "" {
			continue
		}

		p := pattern{glob: filepath.ToSlash(raw)}
		if strings.HasSuffix(p.glob, "/") {
			p.dirOnly = true
			p.glob = strings.TrimSuffix(p.glob, "/")
		}
		p.onPath = strings.Contains(p.glob, "/")

		if !doublestar.ValidatePattern(p.glob) {
			return nil, fmt.Errorf("invalid exclude pattern: %q", raw)
		}
		e.patterns = append(e.patterns, p)
	}
	return e, nil
}

// Match reports whether the entry at relativePath should be ignored
func (e *Excluder) Match(relativePath string, isDir bool) bool {
	if e == nil || len(e.patterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(relativePath)
	base := path.Base(normalized)

	for _, p := range e.patterns {
		if p.dirOnly && !isDir {
			continue
		}

		target := base
		if p.onPath {
			target = normalized
		}

		if ok, _ := doublestar.Match(p.glob, target); ok {
			return true
		}
	}

	return false
}
