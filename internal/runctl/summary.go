package runctl

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/morroware/DupeFInder/internal/model"
)

// FormatSummary renders a human-readable one-screen summary of a finished
// run, used by the CLI's final stdout line regardless of --verbose/--quiet
// (the final summary is always printed, per spec.md section 6).
func FormatSummary(s model.RunSummary) string {
	status := "completed"
	if s.Cancelled {
		status = "cancelled"
	}
	return fmt.Sprintf(
		"run %s: %d files discovered, %d fingerprinted (%d errors), %d duplicate groups (%s wasted), %d/%d actions succeeded (%s reclaimed)",
		status,
		s.FilesDiscovered,
		s.FilesFingerprinted,
		s.HashErrors,
		s.GroupsFound,
		humanize.Bytes(s.BytesWasted),
		s.ActionsSucceeded,
		s.ActionsAttempted,
		humanize.Bytes(s.BytesReclaimed),
	)
}
