package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is managed by a separate admin surface; the order core only looks
// one up by code when an order is created.
type Coupon struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	Type          string         `json:"type"` // flat, percent
	Value         float64        `json:"value"`
	MinOrderValue float64        `json:"min_order_value"`
	MaxDiscount   float64        `json:"max_discount"`
	Expiry        time.Time      `json:"expiry"`
	UsageLimit    int            `json:"usage_limit"`
	UsedCount     int            `json:"used_count"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiscountFor returns the coupon discount for an order subtotal, capped at
// MaxDiscount for percent coupons when a cap is configured.
func (cpn *Coupon) DiscountFor(subtotal float64) float64 {
	if cpn.Type == "percent" {
		discount := subtotal * cpn.Value / 100
		if cpn.MaxDiscount > 0 && discount > cpn.MaxDiscount {
			discount = cpn.MaxDiscount
		}
		return discount
	}
	return cpn.Value
}
