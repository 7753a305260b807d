// Package fsutil holds small platform-facing filesystem helpers. The walker
// uses it to record each candidate's device id, which the safety gate then
// compares for cross-device hardlink eligibility — the same device/inode
// probing shape the
// other_examples scan.devOf helper builds with syscall.Stat_t, reimplemented
// with golang.org/x/sys/unix since that dependency is already part of the
// module's stack.
package fsutil

// Identity is a file's (device, inode) pair, the smallest amount of
// information needed to tell whether two paths name the same underlying
// file (a hardlink) versus two distinct files with identical content.
type Identity struct {
	Device uint64
	Inode  uint64
}

// SameFile reports whether a and b refer to the same underlying inode.
func (a Identity) SameFile(b Identity) bool {
	return a.Device == b.Device && a.Inode == b.Inode
}
