package utils

import (
	"testing"

	"github.com/Aravind-726/SiteCraft/models"
	"github.com/stretchr/testify/assert"
)

func TestApportionCouponDiscountProportional(t *testing.T) {
	items := []models.OrderLineItem{
		{Name: "Business site", OriginalPrice: 40000},
		{Name: "SEO setup", OriginalPrice: 10000},
	}

	ApportionCouponDiscount(items, 5000)

	// 80/20 split of the 5000 discount
	assert.Equal(t, 36000.0, items[0].FinalPrice)
	assert.Equal(t, 9000.0, items[1].FinalPrice)
}

func TestApportionCouponDiscountZero(t *testing.T) {
	items := []models.OrderLineItem{
		{Name: "Portfolio site", OriginalPrice: 25000},
		{Name: "Blog module", OriginalPrice: 5000},
	}

	ApportionCouponDiscount(items, 0)

	assert.Equal(t, 25000.0, items[0].FinalPrice)
	assert.Equal(t, 5000.0, items[1].FinalPrice)
}

func TestApportionCouponDiscountRoundsShares(t *testing.T) {
	items := []models.OrderLineItem{
		{OriginalPrice: 10000},
		{OriginalPrice: 10000},
		{OriginalPrice: 10000},
	}

	ApportionCouponDiscount(items, 1000)

	// Each share rounds to a whole rupee
	for _, item := range items {
		assert.Equal(t, item.FinalPrice, float64(int(item.FinalPrice)))
	}
}
