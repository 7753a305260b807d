package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/model"
)

func drain(ch <-chan model.FileRecord) []model.FileRecord {
	var out []model.FileRecord
	for rec := range ch {
		out = append(out, rec)
	}
	return out
}

func TestWalkFindsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("y"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, stats, err := Walk(ctx, Options{Roots: []string{dir}})
	require.NoError(t, err)

	recs := drain(out)
	assert.Len(t, recs, 2)
	assert.Equal(t, uint64(2), stats.FilesDiscovered)
}

func TestWalkSkipsHiddenByDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "visible"), []byte("x"), 0o644))

	out, _, err := Walk(context.Background(), Options{Roots: []string{dir}})
	require.NoError(t, err)

	recs := drain(out)
	require.Len(t, recs, 1)
	assert.Equal(t, "visible", filepath.Base(recs[0].Path))
}

func TestWalkIncludeHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))

	out, _, err := Walk(context.Background(), Options{Roots: []string{dir}, IncludeHidden: true})
	require.NoError(t, err)
	assert.Len(t, drain(out), 1)
}

func TestWalkSkipsEmptyByDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), nil, 0o644))

	out, _, err := Walk(context.Background(), Options{Roots: []string{dir}})
	require.NoError(t, err)
	assert.Empty(t, drain(out))
}

func TestWalkSizeWindow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big"), []byte("xxxxxxxxxx"), 0o644))

	out, _, err := Walk(context.Background(), Options{Roots: []string{dir}, MinSize: 5})
	require.NoError(t, err)

	recs := drain(out)
	require.Len(t, recs, 1)
	assert.Equal(t, "big", filepath.Base(recs[0].Path))
}

func TestWalkRejectsNonDirectoryRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, _, err := Walk(context.Background(), Options{Roots: []string{file}})
	assert.Error(t, err)
}

func TestWalkExcludesByAbsoluteCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "keep"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "skip"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep", "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip", "b.txt"), []byte("x"), 0o644))

	excludePath, err := filepath.Abs(filepath.Join(dir, "skip"))
	require.NoError(t, err)

	out, _, err := Walk(context.Background(), Options{
		Roots:    []string{dir},
		Excluder: NewPathExcluder([]string{excludePath}),
	})
	require.NoError(t, err)

	recs := drain(out)
	require.Len(t, recs, 1, "--exclude with an absolute path must prune the matching subdirectory")
	assert.Equal(t, "a.txt", filepath.Base(recs[0].Path))
}

func TestWalkFollowsSymlinkedDirectories(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "nested.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(real, filepath.Join(dir, "link")))

	out, _, err := Walk(context.Background(), Options{
		Roots:          []string{dir},
		FollowSymlinks: true,
	})
	require.NoError(t, err)

	recs := drain(out)
	require.Len(t, recs, 1, "a followed symlinked directory's contents must be discovered")
	assert.Equal(t, "nested.txt", filepath.Base(recs[0].Path))
}

func TestWalkSkipsSymlinkedDirectoriesWhenNotFollowing(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "nested.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(real, filepath.Join(dir, "link")))

	out, _, err := Walk(context.Background(), Options{Roots: []string{dir}})
	require.NoError(t, err)

	recs := drain(out)
	require.Len(t, recs, 1, "the real file is still found via its non-symlink path")
	assert.Equal(t, "nested.txt", filepath.Base(recs[0].Path))
}

func TestWalkDetectsSymlinkCycle(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "f.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(dir, filepath.Join(sub, "loop")))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, _, err := Walk(ctx, Options{Roots: []string{dir}, FollowSymlinks: true})
	require.NoError(t, err)

	recs := drain(out)
	assert.Len(t, recs, 1, "a symlink cycle must terminate instead of re-walking forever")
}

func TestWalkPatternFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	out, _, err := Walk(context.Background(), Options{
		Roots:    []string{dir},
		Patterns: NewPatternFilter([]string{"*.jpg"}),
	})
	require.NoError(t, err)

	recs := drain(out)
	require.Len(t, recs, 1)
	assert.Equal(t, "a.jpg", filepath.Base(recs[0].Path))
}
