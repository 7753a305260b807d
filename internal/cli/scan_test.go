package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/runconfig"
)

func TestScanCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "scan" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildReportersWiresConfiguredSinks(t *testing.T) {
	dir := t.TempDir()
	cfg := &runconfig.Config{
		CSVFile:  filepath.Join(dir, "out.csv"),
		JSONFile: filepath.Join(dir, "out.json"),
		HTMLFile: filepath.Join(dir, "out.html"),
		Quiet:    true,
	}

	reporters, closeAll, err := buildReporters(cfg)
	require.NoError(t, err)
	defer closeAll()

	assert.Len(t, reporters, 3, "csv, json, and html reporters should all be wired")
}

func TestBuildReportersSkipsProgressWhenQuiet(t *testing.T) {
	cfg := &runconfig.Config{Quiet: true}
	reporters, closeAll, err := buildReporters(cfg)
	require.NoError(t, err)
	defer closeAll()
	assert.Empty(t, reporters)
}

func TestScanCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("dup content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("dup content"), 0o644))

	rootCmd.SetArgs([]string{"scan", "--path", dir, "--quiet", "--sha256"})
	defer rootCmd.SetArgs(nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "run completed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "scan should resolve the duplicate pair down to one survivor")
}
