package gate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

type fakeProbe struct {
	openPath   string
	mappedPath string
}

func (f fakeProbe) OpenByProcess(path string) (int, bool) {
	return 1, path == f.openPath && f.openPath != ""
}
func (f fakeProbe) MappedByProcess(path string) (int, bool) {
	return 1, path == f.mappedPath && f.mappedPath != ""
}

func TestCheckRefusesSystemRoot(t *testing.T) {
	g := New(Options{Probe: fakeProbe{}})
	d := g.Check(model.FileRecord{Path: "/usr/bin/ls"}, model.FileRecord{Path: "/tmp/ls"})
	assert.False(t, d.Allowed)
	assert.Equal(t, runerr.CodeGateSystem, d.Reason.Code)
}

func TestCheckAllowsSystemRootWhenForced(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}, ForceSystem: true})
	d := g.Check(model.FileRecord{Path: a}, model.FileRecord{Path: b})
	assert.True(t, d.Allowed)

	_, refused := g.checkSystemRoot("/usr/bin/ls")
	assert.False(t, refused)
}

func TestCheckRefusesNeverDeleteGlob(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "x.lock")
	survivor := filepath.Join(dir, "x")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}})
	d := g.Check(model.FileRecord{Path: target}, model.FileRecord{Path: survivor})
	assert.False(t, d.Allowed)
	assert.Equal(t, runerr.CodeGateSystem, d.Reason.Code)
}

func TestCheckRefusesCriticalExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "x.so")
	survivor := filepath.Join(dir, "y.so")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}})
	d := g.Check(model.FileRecord{Path: target}, model.FileRecord{Path: survivor})
	assert.False(t, d.Allowed)
}

func TestCheckRefusesOpenByProcess(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a")
	survivor := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{openPath: target}})
	d := g.Check(model.FileRecord{Path: target}, model.FileRecord{Path: survivor})
	assert.False(t, d.Allowed)
	assert.Equal(t, runerr.CodeGateInUse, d.Reason.Code)
}

func TestCheckAllowsOrdinaryFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	survivor := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}})
	d := g.Check(model.FileRecord{Path: target}, model.FileRecord{Path: survivor})
	assert.True(t, d.Allowed)
}

func TestCheckRequiresByteCheckInFastMode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	survivor := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}, Fast: true})
	d := g.Check(model.FileRecord{Path: target}, model.FileRecord{Path: survivor})
	assert.True(t, d.Allowed)
	assert.True(t, d.RequiresByteCheck)
}

func TestRequiresHardlinkSameDevice(t *testing.T) {
	err := RequiresHardlinkSameDevice(model.FileRecord{Device: 1}, model.FileRecord{Device: 2})
	assert.Error(t, err)

	err = RequiresHardlinkSameDevice(model.FileRecord{Device: 1}, model.FileRecord{Device: 1})
	assert.NoError(t, err)
}

func TestCheckRefusesCrossDeviceHardlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	survivor := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}, Action: model.ActionHardlink})
	d := g.Check(model.FileRecord{Path: target, Device: 1}, model.FileRecord{Path: survivor, Device: 2})
	assert.False(t, d.Allowed)
	assert.Equal(t, runerr.CodeGateCrossDevice, d.Reason.Code)
}

func TestCheckAllowsSameDeviceHardlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	survivor := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}, Action: model.ActionHardlink})
	d := g.Check(model.FileRecord{Path: target, Device: 1}, model.FileRecord{Path: survivor, Device: 1})
	assert.True(t, d.Allowed)
}

func TestCheckIgnoresDeviceMismatchForNonHardlinkAction(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	survivor := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(survivor, []byte("x"), 0o644))

	g := New(Options{Probe: fakeProbe{}, Action: model.ActionDelete})
	d := g.Check(model.FileRecord{Path: target, Device: 1}, model.FileRecord{Path: survivor, Device: 2})
	assert.True(t, d.Allowed)
}

func TestVerifyIdenticalTrueForEqualContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("matching content"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("matching content"), 0o644))

	ok, err := VerifyIdentical(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyIdenticalFalseForDifferentContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("one content"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("other content"), 0o644))

	ok, err := VerifyIdentical(a, b)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyIdenticalFalseForDifferentSize(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("short"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("much longer content"), 0o644))

	ok, err := VerifyIdentical(a, b)
	require.NoError(t, err)
	assert.False(t, ok)
}
