package walker

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// ExcludeListMatcher wraps a single gitignore-syntax file (spec.md's
// --exclude-list=F) of additional exclusion patterns. Unlike the teacher's
// GitignoreMatcher, this is flat -- one file applying to the whole scan,
// not a per-directory hierarchy -- since spec.md names a single exclude
// list file rather than nested .gitignore discovery.
type ExcludeListMatcher struct {
	matcher *gitignore.GitIgnore
}

// NewExcludeListMatcher compiles the gitignore-syntax file at path.
func NewExcludeListMatcher(path string) (*ExcludeListMatcher, error) {
	compiled, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, runerr.Wrap(runerr.CodeConfigInvalid, "compile exclude list "+path, err)
	}
	return &ExcludeListMatcher{matcher: compiled}, nil
}

func (m *ExcludeListMatcher) IsIgnored(path string, isDir bool) bool {
	normalized := filepath.ToSlash(path)
	normalized = strings.TrimPrefix(normalized, "./")
	if normalized == "" || normalized == "." {
		return false
	}
	matchPath := normalized
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}
	return m.matcher.MatchesPath(matchPath)
}

var _ Ignorer = (*ExcludeListMatcher)(nil)

// PathExcluder matches a path against the --exclude list of literal paths
// (which also exclude everything below them) or filepath.Match glob
// patterns (spec.md C1), pruning a matched directory without descent.
type PathExcluder struct {
	patterns []string
}

// NewPathExcluder builds a PathExcluder from the raw --exclude values,
// which may be literal absolute paths or filepath.Match glob patterns.
func NewPathExcluder(patterns []string) *PathExcluder {
	cp := make([]string, len(patterns))
	copy(cp, patterns)
	return &PathExcluder{patterns: cp}
}

func (p *PathExcluder) IsIgnored(path string, isDir bool) bool {
	normalized := filepath.ToSlash(path)
	for _, pattern := range p.patterns {
		pattern = filepath.ToSlash(pattern)
		if normalized == pattern || strings.HasPrefix(normalized, pattern+"/") {
			return true
		}
		if ok, _ := filepath.Match(pattern, normalized); ok {
			return true
		}
	}
	return false
}

var _ Ignorer = (*PathExcluder)(nil)
