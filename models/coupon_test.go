package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouponDiscountForFlat(t *testing.T) {
	coupon := Coupon{Type: "flat", Value: 2000}

	assert.Equal(t, 2000.0, coupon.DiscountFor(50000))
	assert.Equal(t, 2000.0, coupon.DiscountFor(5000))
}

func TestCouponDiscountForPercent(t *testing.T) {
	coupon := Coupon{Type: "percent", Value: 10}

	assert.Equal(t, 5000.0, coupon.DiscountFor(50000))
}

func TestCouponDiscountForPercentCapped(t *testing.T) {
	coupon := Coupon{Type: "percent", Value: 10, MaxDiscount: 3000}

	assert.Equal(t, 3000.0, coupon.DiscountFor(50000))
	assert.Equal(t, 1000.0, coupon.DiscountFor(10000))
}
