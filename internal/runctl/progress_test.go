package runctl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/morroware/DupeFInder/internal/model"
)

func TestProgressModelTracksOutcomes(t *testing.T) {
	m := newProgressModel()

	updated, cmd := m.Update(outcomeMsg{outcome: model.ActionOutcome{Effected: model.ActionDelete, BytesReclaimed: 100}})
	pm := updated.(*progressModel)

	assert.Equal(t, 1, pm.attempted)
	assert.Equal(t, 1, pm.succeeded)
	assert.Equal(t, uint64(100), pm.reclaimed)
	assert.Nil(t, cmd)
}

func TestProgressModelIgnoresFailedOutcome(t *testing.T) {
	m := newProgressModel()

	m.Update(outcomeMsg{outcome: model.ActionOutcome{Effected: model.ActionSkip}})

	assert.Equal(t, 1, m.attempted)
	assert.Equal(t, 0, m.succeeded)
}

func TestProgressModelSummaryMarksDone(t *testing.T) {
	m := newProgressModel()

	_, cmd := m.Update(summaryMsg{summary: model.RunSummary{}})
	assert.True(t, m.done)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestProgressModelViewBeforeDone(t *testing.T) {
	m := newProgressModel()
	m.Update(outcomeMsg{outcome: model.ActionOutcome{Effected: model.ActionDelete, BytesReclaimed: 5}})

	view := m.View()
	assert.Contains(t, view, "1 attempted")
	assert.Contains(t, view, "1 succeeded")
}
