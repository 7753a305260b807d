package runctl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/morroware/DupeFInder/internal/model"
)

func TestFormatSummaryCompleted(t *testing.T) {
	s := model.RunSummary{
		FilesDiscovered:    10,
		FilesFingerprinted: 10,
		GroupsFound:        2,
		BytesWasted:        2048,
		ActionsAttempted:   2,
		ActionsSucceeded:   2,
		BytesReclaimed:     1024,
	}

	out := FormatSummary(s)
	assert.Contains(t, out, "run completed")
	assert.Contains(t, out, "2 duplicate groups")
	assert.Contains(t, out, "2/2 actions succeeded")
}

func TestFormatSummaryCancelled(t *testing.T) {
	s := model.RunSummary{Cancelled: true}
	out := FormatSummary(s)
	assert.Contains(t, out, "run cancelled")
}
