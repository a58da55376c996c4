package models

import (
	"time"
)

// Payment method constants for a transaction's funding source
const (
	PaymentMethodWallet      = "wallet"
	PaymentMethodExternalRef = "external_ref"
	PaymentMethodCombined    = "combined"
)

// Transaction kind constants
const (
	TransactionKindPayment = "payment"
	TransactionKindDeposit = "deposit"
)

// Transaction status constants. PendingApproval is the only non-terminal
// state; approve/reject moves a transaction out of it exactly once.
const (
	PaymentStatusPendingApproval = "pending_approval"
	PaymentStatusApproved        = "approved"
	PaymentStatusRejected        = "rejected"
)

// PaymentTransaction is one funding leg queued for manual verification.
// TransactionID is the caller-generated idempotency key: the unique index
// makes a duplicate submission a no-op rather than a second ledger entry.
// A combined payment is two rows, the external_ref leg pointing at its
// wallet leg through ParentTransactionID.
type PaymentTransaction struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	TransactionID       string    `gorm:"uniqueIndex;not null" json:"transaction_id"`
	UserID              uint      `json:"user_id"`
	OrderID             *uint     `json:"order_id,omitempty"`
	InstallmentNumber   *int      `json:"installment_number,omitempty"`
	ParentTransactionID *string   `json:"parent_transaction_id,omitempty"`
	UPITransactionID    string    `json:"upi_transaction_id,omitempty"`
	Amount              float64   `json:"amount"`
	Method              string    `json:"payment_method"`
	Kind                string    `json:"type"`
	Status              string    `json:"status"`
	Description         string    `json:"description"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
