package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOrder(t *testing.T) {
	require.Len(t, Stages, 5)

	seen := map[Status]bool{}
	for i, s := range Stages {
		assert.Equal(t, i, StageIndex(s.Key), "index must follow slice position for %s", s.Key)
		assert.False(t, seen[s.Key], "duplicate stage key %s", s.Key)
		seen[s.Key] = true
		assert.NotEmpty(t, s.Label)
		assert.NotEmpty(t, s.TimestampField)
		assert.NotEmpty(t, s.DefaultNote)
	}

	assert.Equal(t, StatusSiteSelection, Stages[0].Key)
	assert.Equal(t, StatusComplete, Stages[len(Stages)-1].Key)
}

func TestStageIndexClampsUnknown(t *testing.T) {
	assert.Equal(t, 0, StageIndex("bogus"))
	assert.Equal(t, 0, StageIndex(StatusWithdrawn))
}

func TestNextStage(t *testing.T) {
	next, ok := NextStage(StatusSiteSelection)
	require.True(t, ok)
	assert.Equal(t, StatusSubmitted, next.Key)

	next, ok = NextStage(StatusConstruction)
	require.True(t, ok)
	assert.Equal(t, StatusComplete, next.Key)

	_, ok = NextStage(StatusComplete)
	assert.False(t, ok)

	_, ok = NextStage(StatusWithdrawn)
	assert.False(t, ok)

	_, ok = NextStage("bogus")
	assert.False(t, ok)
}

func TestTimestampField(t *testing.T) {
	assert.Equal(t, "created_at", TimestampField(StatusSiteSelection))
	assert.Equal(t, "submitted_at", TimestampField(StatusSubmitted))
	assert.Equal(t, "agreement_approved_at", TimestampField(StatusAgreementApproved))
	assert.Equal(t, "construction_started_at", TimestampField(StatusConstruction))
	assert.Equal(t, "completed_at", TimestampField(StatusComplete))
	assert.Empty(t, TimestampField(StatusWithdrawn))
}

func TestDefaultNote(t *testing.T) {
	assert.Equal(t, "Customer site survey scheduled with engineering team.", DefaultNote(StatusSiteSelection))
	assert.Equal(t, "Interconnection agreement approved — awaiting construction scheduling.", DefaultNote(StatusAgreementApproved))
	assert.Empty(t, DefaultNote("bogus"))
	assert.Empty(t, DefaultNote(StatusWithdrawn))
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Step 1: Site Selection", DisplayLabel(StatusSiteSelection))
	assert.Equal(t, "Step 4: Construction & Installation", DisplayLabel(StatusConstruction))
	assert.Equal(t, "Step 5: Complete", DisplayLabel(StatusComplete))
	// unknown keys fall back to the raw key
	assert.Equal(t, "withdrawn", DisplayLabel(StatusWithdrawn))
}

func TestTerminalAndKnown(t *testing.T) {
	assert.True(t, IsTerminal(StatusComplete))
	assert.True(t, IsTerminal(StatusWithdrawn))
	assert.False(t, IsTerminal(StatusConstruction))

	assert.True(t, Known(StatusSiteSelection))
	assert.True(t, Known(StatusWithdrawn))
	assert.False(t, Known("bogus"))
}
