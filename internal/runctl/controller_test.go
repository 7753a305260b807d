package runctl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runconfig"
)

type recordingReporter struct {
	outcomes []model.ActionOutcome
	summary  model.RunSummary
}

func (r *recordingReporter) Outcome(o model.ActionOutcome) { r.outcomes = append(r.outcomes, o) }
func (r *recordingReporter) Summary(s model.RunSummary)    { r.summary = s }

func TestControllerRunDeletesDuplicate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("same content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("same content"), 0o644))

	cfg := &runconfig.Config{
		Roots:      []string{dir},
		StrongBits: 256,
		Action:     runconfig.ActionModeDelete,
		ResumeFile: filepath.Join(dir, "resume.toml"),
	}

	rep := &recordingReporter{}
	ctl := New(cfg, nil, rep)

	summary, err := ctl.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), summary.GroupsFound)
	assert.Equal(t, uint64(1), summary.ActionsSucceeded)
	assert.Equal(t, rep.summary.GroupsFound, summary.GroupsFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "exactly one duplicate member should remain after delete")
}

func TestControllerRunDryRunLeavesFilesIntact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("same content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("same content"), 0o644))

	cfg := &runconfig.Config{
		Roots:      []string{dir},
		StrongBits: 256,
		Action:     runconfig.ActionModeDelete,
		DryRun:     true,
		ResumeFile: filepath.Join(dir, "resume.toml"),
	}

	ctl := New(cfg, nil)
	summary, err := ctl.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), summary.GroupsFound)
	assert.Equal(t, uint64(0), summary.ActionsSucceeded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "dry run must never remove a file")
}

func TestControllerResumeFromSkipsDiscovery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("dup"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("dup"), 0o644))

	cfg := &runconfig.Config{
		Roots:      []string{dir},
		StrongBits: 256,
		Action:     runconfig.ActionModeDelete,
		ResumeFile: filepath.Join(dir, "resume.toml"),
	}

	groups := []model.DigestGroup{
		{
			GroupID: 1,
			Digest:  model.Digest{Algo: model.AlgoBlake2b256, Bytes: []byte{1, 2, 3}},
			Size:    3,
			Members: []model.FileRecord{
				{Path: filepath.Join(dir, "a.txt"), Size: 3},
				{Path: filepath.Join(dir, "b.txt"), Size: 3},
			},
		},
	}

	ctl := New(cfg, nil)
	summary, err := ctl.ResumeFrom(context.Background(), groups)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.ActionsSucceeded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestControllerRunCancelledSavesResumePoint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("same"), 0o644))

	resumeFile := filepath.Join(dir, "resume.toml")
	cfg := &runconfig.Config{
		Roots:      []string{dir},
		StrongBits: 256,
		Action:     runconfig.ActionModeDelete,
		ResumeFile: resumeFile,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctl := New(cfg, nil)
	summary, err := ctl.Run(ctx)
	assert.Error(t, err)
	assert.True(t, summary.Cancelled)

	_, statErr := os.Stat(resumeFile)
	assert.NoError(t, statErr, "a cancelled run must persist a resume point")
}
