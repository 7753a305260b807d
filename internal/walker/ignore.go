package walker

import "log/slog"

// Ignorer evaluates whether a path should be excluded from the walk. path
// is the canonicalized absolute path of the entry (symlinks resolved, so a
// symlink alias cannot be used to evade an exclude rule that names the
// real location); isDir indicates whether it names a directory (needed for
// directory-only patterns). This mirrors the teacher's discovery.Ignorer
// contract but canonicalizes to an absolute path, since spec.md's
// --exclude names canonical absolute paths, not root-relative ones.
type Ignorer interface {
	IsIgnored(path string, isDir bool) bool
}

// CompositeIgnorer chains multiple Ignorer sources and reports a path as
// ignored if any one of them matches it, adapted from the teacher's
// discovery.CompositeIgnorer.
type CompositeIgnorer struct {
	ignorers []Ignorer
	logger   *slog.Logger
}

// NewCompositeIgnorer builds a CompositeIgnorer from the given sources,
// silently dropping any nil entries.
func NewCompositeIgnorer(ignorers ...Ignorer) *CompositeIgnorer {
	filtered := make([]Ignorer, 0, len(ignorers))
	for _, ig := range ignorers {
		if ig != nil {
			filtered = append(filtered, ig)
		}
	}
	return &CompositeIgnorer{
		ignorers: filtered,
		logger:   slog.Default().With("component", "walker.ignore"),
	}
}

func (c *CompositeIgnorer) IsIgnored(path string, isDir bool) bool {
	for _, ig := range c.ignorers {
		if ig.IsIgnored(path, isDir) {
			return true
		}
	}
	return false
}

var _ Ignorer = (*CompositeIgnorer)(nil)
