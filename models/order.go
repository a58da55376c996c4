package models

import (
	"time"
)

// Order visibility constants. An order starts in PendingApproval and moves
// away from it at most once per funding attempt; a rejected order is never
// resurrected - the customer retries with a brand-new order that points back
// at the rejected one through PreviousOrderID.
const (
	OrderVisibilityPendingApproval = "pending_approval"
	OrderVisibilityApproved        = "approved"
	OrderVisibilityPaymentRejected = "payment_rejected"
)

// Line item kind constants
const (
	LineItemKindMain    = "main"
	LineItemKindFeature = "feature"
)

type Order struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `json:"user_id"`
	User             User           `json:"user" gorm:"foreignKey:UserID"`
	ProductID        uint           `json:"product_id"`
	Product          Product        `json:"product" gorm:"foreignKey:ProductID"`
	OriginalPrice    float64        `json:"original_price"`
	CouponCode       string         `json:"coupon_code,omitempty"`
	CouponDiscount   float64        `json:"coupon_discount"`
	TotalPrice       float64        `json:"total_price"`
	PaymentMethod    string         `json:"payment_method"`
	IsPartialPayment bool           `json:"is_partial_payment"`
	OrderVisibility  string         `json:"order_visibility"`
	RejectionReason  string         `json:"rejection_reason,omitempty"`
	PreviousOrderID  *uint          `json:"previous_order_id,omitempty"`
	ProjectLink      string         `json:"project_link,omitempty"`
	ProjectProgress  int            `json:"project_progress"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	OrderItems       []OrderLineItem `json:"items" gorm:"foreignKey:OrderID"`
	Installments     []Installment  `json:"installments,omitempty" gorm:"foreignKey:OrderID"`
	Checkpoints      []Checkpoint   `json:"checkpoints" gorm:"foreignKey:OrderID"`
}

// OrderLineItem is one priced line of an order. Kind discriminates the main
// product from feature add-ons. OriginalPrice and FinalPrice are line totals;
// the order-level TotalPrice stays authoritative because the per-item coupon
// split is rounded and can drift by a rupee from the exact coupon discount.
type OrderLineItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `json:"order_id"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	OriginalPrice float64 `json:"original_price"`
	FinalPrice    float64 `json:"final_price"`
}
