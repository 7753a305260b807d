package action

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// trashFile moves path into a freedesktop.org-style trash directory
// ($XDG_DATA_HOME/Trash/files, falling back to $HOME/.local/share/Trash/
// files) rather than deleting it outright. If no trash directory can be
// resolved or the move fails, trashFile returns an error rather than
// silently deleting -- --trash is an explicit opt-in to recoverability, so
// falling back to a hard delete would violate the reason the flag was
// chosen over --delete.
func trashFile(path string) (string, error) {
	trashDir, err := trashFilesDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(trashDir, 0o700); err != nil {
		return "", runerr.Wrap(runerr.CodeActionIO, "create trash directory", err)
	}

	dest := filepath.Join(trashDir, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		dest = filepath.Join(trashDir, filepath.Base(path)+"."+time.Now().Format("20060102T150405")+"."+uuid.NewString()[:8])
	}

	if err := os.Rename(path, dest); err != nil {
		// Cross-device rename: fall back to copy-then-remove.
		if err := copyStream(path, dest); err != nil {
			return "", runerr.Wrap(runerr.CodeActionIO, "move to trash", err)
		}
		if err := os.Remove(path); err != nil {
			return "", runerr.Wrap(runerr.CodeActionIO, "remove original after trash copy", err)
		}
	}

	return dest, nil
}

func trashFilesDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash", "files"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", runerr.Wrap(runerr.CodeActionIO, "resolve home directory for trash", err)
	}
	return filepath.Join(home, ".local", "share", "Trash", "files"), nil
}
