package models

import (
	"time"
)

// Checkpoint is a named, percentage-weighted delivery milestone in a
// project's build sequence. Completion is monotonic and strictly sequential:
// a checkpoint may only be completed once every checkpoint before it is.
type Checkpoint struct {
	ID          uint       `gorm:"primaryKey" json:"checkpoint_id"`
	OrderID     uint       `json:"order_id"`
	Position    int        `json:"position"`
	Name        string     `json:"name"`
	Percentage  int        `json:"percentage"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
