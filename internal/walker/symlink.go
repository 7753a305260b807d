package walker

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// SymlinkResolver tracks visited real paths to detect symlink cycles while
// following symlinked directories (--follow-symlinks), adapted from the
// teacher's discovery.SymlinkResolver.
type SymlinkResolver struct {
	mu      sync.RWMutex
	visited map[string]bool
}

// NewSymlinkResolver returns a resolver with an empty visited set.
func NewSymlinkResolver() *SymlinkResolver {
	return &SymlinkResolver{visited: make(map[string]bool)}
}

// Resolve follows path through any symlinks and reports whether the
// resolved real path has already been visited (a cycle). Resolve does not
// itself record the visit; call MarkVisited once the caller commits to
// descending into it.
func (s *SymlinkResolver) Resolve(path string) (realPath string, isLoop bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, runerr.Wrap(runerr.CodeWalkIO, "resolve symlink "+path, err)
	}

	s.mu.RLock()
	loop := s.visited[resolved]
	s.mu.RUnlock()

	return resolved, loop, nil
}

// MarkVisited records realPath as visited.
func (s *SymlinkResolver) MarkVisited(realPath string) {
	s.mu.Lock()
	s.visited[realPath] = true
	s.mu.Unlock()
}

// IsSymlink reports whether path names a symbolic link without following
// it.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, runerr.Wrap(runerr.CodeWalkIO, "lstat "+path, err)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}
