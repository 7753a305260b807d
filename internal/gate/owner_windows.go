//go:build windows

package gate

import "os"

// ownerOfSys has no portable equivalent on Windows through os.FileInfo; the
// owner-mismatch check is skipped there (ok=false), same trade-off as
// fsutil's device identity on Windows.
func ownerOfSys(info os.FileInfo) (uint32, bool) {
	return 0, false
}
