//go:build !windows

package gate

import (
	"os"
	"syscall"
)

// ownerOfSys extracts the POSIX UID from a *syscall.Stat_t, the same type
// assertion shape the other_examples stride/lbfq scanners use for
// st.Blocks-style POSIX stat access.
func ownerOfSys(info os.FileInfo) (uint32, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return st.Uid, true
}
