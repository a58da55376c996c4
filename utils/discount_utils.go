package utils

import (
	"math"

	"github.com/Aravind-726/SiteCraft/models"
)

// ApportionCouponDiscount distributes a coupon discount across order line
// items in proportion to each item's share of the original total, rounding
// each share to whole rupees. The per-item FinalPrice values are display
// figures only: rounding can make their sum differ from the exact coupon
// discount by a rupee, which is why the order-level total_price stays
// authoritative for charging.
func ApportionCouponDiscount(items []models.OrderLineItem, couponDiscount float64) {
	if couponDiscount <= 0 {
		for i := range items {
			items[i].FinalPrice = items[i].OriginalPrice
		}
		return
	}

	var originalTotal float64
	for i := range items {
		originalTotal += items[i].OriginalPrice
	}
	if originalTotal <= 0 {
		return
	}

	for i := range items {
		share := math.Round(couponDiscount * items[i].OriginalPrice / originalTotal)
		items[i].FinalPrice = items[i].OriginalPrice - share
	}
}
