package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludeListMatcher(t *testing.T) {
	dir := t.TempDir()
	listFile := filepath.Join(dir, "ignore")
	require.NoError(t, os.WriteFile(listFile, []byte("*.tmp\nbuild/\n"), 0o644))

	m, err := NewExcludeListMatcher(listFile)
	require.NoError(t, err)

	assert.True(t, m.IsIgnored("cache.tmp", false))
	assert.True(t, m.IsIgnored("build", true))
	assert.False(t, m.IsIgnored("keep.txt", false))
}

func TestPathExcluderLiteralAndPrefix(t *testing.T) {
	e := NewPathExcluder([]string{"/data/exclude"})
	assert.True(t, e.IsIgnored("/data/exclude", true))
	assert.True(t, e.IsIgnored("/data/exclude/nested", false))
	assert.False(t, e.IsIgnored("/data/keep", false))
}

func TestPathExcluderGlob(t *testing.T) {
	e := NewPathExcluder([]string{"/data/*.bak"})
	assert.True(t, e.IsIgnored("/data/file.bak", false))
	assert.False(t, e.IsIgnored("/data/file.txt", false))
}

func TestCompositeIgnorer(t *testing.T) {
	a := NewPathExcluder([]string{"/only-a"})
	b := NewPathExcluder([]string{"/only-b"})
	c := NewCompositeIgnorer(a, b)

	assert.True(t, c.IsIgnored("/only-a", false))
	assert.True(t, c.IsIgnored("/only-b", false))
	assert.False(t, c.IsIgnored("/neither", false))
}
