package action

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// replaceWithHardlink removes target and replaces it with a hardlink to
// survivor, atomically from the filesystem namespace's point of view: the
// new link is created under a temporary sibling name first, then renamed
// over target, so a crash between the two steps leaves either the
// original file or the new link in place, never a missing path.
func replaceWithHardlink(target, survivor string) error {
	tmp := target + ".dupefinder-link-" + uuid.NewString()
	if err := os.Link(survivor, tmp); err != nil {
		return runerr.Wrap(runerr.CodeActionIO, "create hardlink "+tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return runerr.Wrap(runerr.CodeActionIO, "rename hardlink over "+target, err)
	}
	return nil
}

// quarantinePath computes a collision-free destination under quarantineDir
// for srcPath, suffixing with a uuid when a prior run already deposited a
// file with the same basename.
func quarantinePath(quarantineDir, srcPath string) string {
	base := filepath.Base(srcPath)
	candidate := filepath.Join(quarantineDir, base)
	if _, err := os.Stat(candidate); err == nil {
		candidate = filepath.Join(quarantineDir, base+"."+uuid.NewString())
	}
	return candidate
}
