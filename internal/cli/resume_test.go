package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runctl"
)

func TestResumeCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "resume" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResumeCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("dup"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("dup"), 0o644))

	resumeFile := filepath.Join(dir, "dupefinder.resume.toml")
	groups := []model.DigestGroup{
		{
			GroupID: 1,
			Digest:  model.Digest{Algo: model.AlgoBlake2b128, Bytes: []byte{1}},
			Size:    3,
			Members: []model.FileRecord{
				{Path: filepath.Join(dir, "a.txt"), Size: 3},
				{Path: filepath.Join(dir, "b.txt"), Size: 3},
			},
		},
	}
	require.NoError(t, runctl.SaveResumePoint(resumeFile, groups))

	rootCmd.SetArgs([]string{"resume", "--path", dir, "--output", dir, "--quiet"})
	defer rootCmd.SetArgs(nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "run completed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var remaining int
	for _, e := range entries {
		if e.Name() == "a.txt" || e.Name() == "b.txt" {
			remaining++
		}
	}
	assert.Equal(t, 1, remaining)
}
