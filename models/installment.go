package models

import (
	"time"
)

// Installment payment status constants
const (
	InstallmentStatusNone            = "none"
	InstallmentStatusPendingApproval = "pending_approval"
)

// Installment is one of the three fixed-percentage (30/30/40) milestone
// payments of a partial-payment order. A paid installment is immutable.
type Installment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderID       uint       `json:"order_id"`
	Number        int        `json:"installment_number"`
	Percentage    int        `json:"percentage"`
	Amount        float64    `json:"amount"`
	Paid          bool       `json:"paid"`
	PaymentStatus string     `json:"payment_status" gorm:"default:'none'"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
