package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternFilter applies the --pattern basename-glob filter from spec.md
// section 4.1: when any patterns are configured, a file's basename must
// match at least one to be a candidate. Adapted from the teacher's
// discovery.PatternFilter, trimmed to the single OR-of-globs rule the spec
// names (no separate include/exclude/extension axes -- --exclude already
// covers exclusion).
type PatternFilter struct {
	patterns []string
}

// NewPatternFilter builds a PatternFilter from the configured --pattern
// globs. A filter with no patterns is a pass-through.
func NewPatternFilter(patterns []string) *PatternFilter {
	cp := make([]string, len(patterns))
	copy(cp, patterns)
	return &PatternFilter{patterns: cp}
}

// HasPatterns reports whether any patterns were configured.
func (f *PatternFilter) HasPatterns() bool {
	return len(f.patterns) > 0
}

// Matches reports whether basename matches at least one configured glob.
func (f *PatternFilter) Matches(basename string) bool {
	if len(f.patterns) == 0 {
		return true
	}
	for _, pattern := range f.patterns {
		if ok, err := doublestar.Match(pattern, basename); err == nil && ok {
			return true
		}
	}
	return false
}

// isHidden reports whether any path component is dot-prefixed, used by the
// --all flag's inverse (hidden files are skipped unless --all is set).
func isHidden(relPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
