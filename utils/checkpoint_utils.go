package utils

import (
	"github.com/Aravind-726/SiteCraft/models"
)

// DefaultCheckpoints returns the standard build sequence for a new website
// order. Percentages are the delivery progress each checkpoint represents;
// progress is a step function of the last completed checkpoint, not a
// count-based average.
func DefaultCheckpoints() []models.Checkpoint {
	names := []struct {
		name       string
		percentage int
	}{
		{"Requirements finalized", 10},
		{"Design mockup approved", 25},
		{"Core pages built", 40},
		{"Features integrated", 60},
		{"Content and testing", 75},
		{"Pre-launch review", 90},
		{"Site launched", 100},
	}

	checkpoints := make([]models.Checkpoint, 0, len(names))
	for i, n := range names {
		checkpoints = append(checkpoints, models.Checkpoint{
			Position:   i + 1,
			Name:       n.name,
			Percentage: n.percentage,
		})
	}
	return checkpoints
}

// FirstIncompleteCheckpoint returns the first incomplete checkpoint in
// position order, or nil when the sequence is fully complete.
func FirstIncompleteCheckpoint(checkpoints []models.Checkpoint) *models.Checkpoint {
	var first *models.Checkpoint
	for i := range checkpoints {
		if checkpoints[i].Completed {
			continue
		}
		if first == nil || checkpoints[i].Position < first.Position {
			first = &checkpoints[i]
		}
	}
	return first
}
