package utils

import (
	"testing"

	"github.com/Aravind-726/SiteCraft/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCheckpoints(t *testing.T) {
	checkpoints := DefaultCheckpoints()

	require.Len(t, checkpoints, 7)
	for i, cp := range checkpoints {
		assert.Equal(t, i+1, cp.Position)
		assert.False(t, cp.Completed)
	}
	assert.Equal(t, "Requirements finalized", checkpoints[0].Name)
	assert.Equal(t, 10, checkpoints[0].Percentage)
	assert.Equal(t, "Site launched", checkpoints[6].Name)
	assert.Equal(t, 100, checkpoints[6].Percentage)

	// Percentages rise monotonically through the sequence
	for i := 1; i < len(checkpoints); i++ {
		assert.Greater(t, checkpoints[i].Percentage, checkpoints[i-1].Percentage)
	}
}

func TestFirstIncompleteCheckpoint(t *testing.T) {
	checkpoints := []models.Checkpoint{
		{Position: 1, Name: "Requirements finalized", Completed: true},
		{Position: 2, Name: "Design mockup approved", Completed: true},
		{Position: 3, Name: "Core pages built", Completed: false},
		{Position: 4, Name: "Features integrated", Completed: false},
	}

	next := FirstIncompleteCheckpoint(checkpoints)
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Position)
}

func TestFirstIncompleteCheckpointAllDone(t *testing.T) {
	checkpoints := []models.Checkpoint{
		{Position: 1, Completed: true},
		{Position: 2, Completed: true},
	}

	assert.Nil(t, FirstIncompleteCheckpoint(checkpoints))
	assert.Nil(t, FirstIncompleteCheckpoint(nil))
}
