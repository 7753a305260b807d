//go:build linux

package gate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// defaultProbe implements ProcessProbe via best-effort /proc inspection.
// Every check is advisory: a process can always open or map a file between
// the probe and the action running, so this probe is not a guarantee; a
// configured backup directory (internal/action) makes actions copy the
// target before mutating it.
type defaultProbe struct{}

// OpenByProcess scans /proc/*/fd for a symlink resolving to path.
func (defaultProbe) OpenByProcess(path string) (int, bool) {
	return scanProcLinks(path, "fd")
}

// MappedByProcess scans /proc/*/maps for a line naming path.
func (defaultProbe) MappedByProcess(path string) (int, bool) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, false
	}
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join("/proc", e.Name(), "maps"))
		if err != nil {
			continue
		}
		if strings.Contains(string(data), path) {
			return pid, true
		}
	}
	return 0, false
}

func scanProcLinks(path, sub string) (int, bool) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, false
	}
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		dir := filepath.Join("/proc", e.Name(), sub)
		fds, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, fd := range fds {
			target, err := os.Readlink(filepath.Join(dir, fd.Name()))
			if err != nil {
				continue
			}
			if target == path {
				return pid, true
			}
		}
	}
	return 0, false
}
