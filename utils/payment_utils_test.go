package utils

import (
	"testing"

	"github.com/Aravind-726/SiteCraft/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaymentPlanWalletCoversAll(t *testing.T) {
	plan := BuildPaymentPlan(15000, 20000)

	assert.Equal(t, 15000.0, plan.WalletAmount)
	assert.Equal(t, 0.0, plan.ExternalAmount)
	assert.False(t, plan.Combined())
	require.Len(t, plan.Legs, 1)
	assert.Equal(t, models.PaymentMethodWallet, plan.Legs[0].Method)
	assert.Equal(t, 15000.0, plan.Legs[0].Amount)
}

func TestBuildPaymentPlanWalletCoversExactly(t *testing.T) {
	plan := BuildPaymentPlan(15000, 15000)

	assert.Equal(t, 15000.0, plan.WalletAmount)
	assert.Equal(t, 0.0, plan.ExternalAmount)
	require.Len(t, plan.Legs, 1)
	assert.Equal(t, models.PaymentMethodWallet, plan.Legs[0].Method)
}

func TestBuildPaymentPlanSplit(t *testing.T) {
	plan := BuildPaymentPlan(15000, 6000)

	assert.Equal(t, 6000.0, plan.WalletAmount)
	assert.Equal(t, 9000.0, plan.ExternalAmount)
	assert.True(t, plan.Combined())
	require.Len(t, plan.Legs, 2)
	assert.Equal(t, models.PaymentMethodWallet, plan.Legs[0].Method)
	assert.Equal(t, 6000.0, plan.Legs[0].Amount)
	assert.Equal(t, models.PaymentMethodExternalRef, plan.Legs[1].Method)
	assert.Equal(t, 9000.0, plan.Legs[1].Amount)
}

func TestBuildPaymentPlanEmptyWallet(t *testing.T) {
	plan := BuildPaymentPlan(15000, 0)

	assert.Equal(t, 0.0, plan.WalletAmount)
	assert.Equal(t, 15000.0, plan.ExternalAmount)
	assert.False(t, plan.Combined())
	require.Len(t, plan.Legs, 1)
	assert.Equal(t, models.PaymentMethodExternalRef, plan.Legs[0].Method)
}

func TestBuildPaymentPlanLegsSumToDue(t *testing.T) {
	cases := []struct{ due, balance float64 }{
		{15000, 20000},
		{15000, 6000},
		{15000, 0},
		{333.33, 100.50},
	}
	for _, tc := range cases {
		plan := BuildPaymentPlan(tc.due, tc.balance)
		var sum float64
		for _, leg := range plan.Legs {
			sum += leg.Amount
		}
		assert.InDelta(t, tc.due, sum, 0.001, "legs must sum to due for due=%.2f balance=%.2f", tc.due, tc.balance)
	}
}
