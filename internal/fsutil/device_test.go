package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardlinkSharesIdentity(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original")
	link := filepath.Join(dir, "link")

	require.NoError(t, os.WriteFile(original, []byte("data"), 0o644))
	require.NoError(t, os.Link(original, link))

	a, err := Stat(original)
	require.NoError(t, err)
	b, err := Stat(link)
	require.NoError(t, err)

	assert.True(t, a.SameFile(b))
}

func TestDistinctFilesDifferIdentity(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("data"), 0o644))

	idA, err := Stat(a)
	require.NoError(t, err)
	idB, err := Stat(b)
	require.NoError(t, err)

	assert.False(t, idA.SameFile(idB))
}

func TestHardlinkCount(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(original, []byte("data"), 0o644))

	n, err := HardlinkCount(original)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	require.NoError(t, os.Link(original, link))
	n, err = HardlinkCount(original)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}
