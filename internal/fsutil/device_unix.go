//go:build !windows

package fsutil

import (
	"golang.org/x/sys/unix"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// Stat returns the device and inode identity of path, following symlinks.
func Stat(path string) (Identity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Identity{}, runerr.Wrap(runerr.CodeWalkIO, "stat "+path, err)
	}
	return Identity{Device: uint64(st.Dev), Inode: uint64(st.Ino)}, nil
}

// Lstat returns the device and inode identity of path without following a
// trailing symlink.
func Lstat(path string) (Identity, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Identity{}, runerr.Wrap(runerr.CodeWalkIO, "lstat "+path, err)
	}
	return Identity{Device: uint64(st.Dev), Inode: uint64(st.Ino)}, nil
}

// DeviceOf returns just the device ID containing path, used by the walker
// to fill each candidate's FileRecord.Device.
func DeviceOf(path string) (uint64, error) {
	id, err := Lstat(path)
	if err != nil {
		return 0, err
	}
	return id.Device, nil
}

// HardlinkCount returns the filesystem's link count for path.
func HardlinkCount(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, runerr.Wrap(runerr.CodeWalkIO, "lstat "+path, err)
	}
	return uint64(st.Nlink), nil
}
