package utils

import (
	"testing"
	"time"

	"github.com/Aravind-726/SiteCraft/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScheduleSplit(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	schedule := ComputeSchedule(50000, now)

	require.Len(t, schedule, 3)
	assert.Equal(t, 15000.0, schedule[0].Amount)
	assert.Equal(t, 15000.0, schedule[1].Amount)
	assert.Equal(t, 20000.0, schedule[2].Amount)
	assert.Equal(t, 30, schedule[0].Percentage)
	assert.Equal(t, 30, schedule[1].Percentage)
	assert.Equal(t, 40, schedule[2].Percentage)
}

func TestComputeScheduleSumsToTotal(t *testing.T) {
	now := time.Now()
	// Totals chosen so the 30% shares round up or down
	for _, total := range []float64{49999, 50001, 33333, 10, 99999.99} {
		schedule := ComputeSchedule(total, now)
		require.Len(t, schedule, 3)

		var sum float64
		for _, inst := range schedule {
			sum += inst.Amount
		}
		assert.InDelta(t, total, sum, 0.001, "installments must sum to the total for %.2f", total)
	}
}

func TestComputeScheduleFinalAbsorbsRemainder(t *testing.T) {
	schedule := ComputeSchedule(33333, time.Now())

	assert.Equal(t, 10000.0, schedule[0].Amount)
	assert.Equal(t, 10000.0, schedule[1].Amount)
	assert.Equal(t, 13333.0, schedule[2].Amount)
}

func TestComputeScheduleDueDates(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := ComputeSchedule(60000, created)

	assert.Nil(t, schedule[0].DueDate)
	require.NotNil(t, schedule[1].DueDate)
	require.NotNil(t, schedule[2].DueDate)
	assert.Equal(t, created.AddDate(0, 0, 30), *schedule[1].DueDate)
	assert.Equal(t, created.AddDate(0, 0, 60), *schedule[2].DueDate)
}

func TestNextUnpaidInstallment(t *testing.T) {
	installments := []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: false},
		{Number: 3, Paid: false},
	}

	next := NextUnpaidInstallment(installments)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Number)
}

func TestNextUnpaidInstallmentAllPaid(t *testing.T) {
	installments := []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: true},
		{Number: 3, Paid: true},
	}

	assert.Nil(t, NextUnpaidInstallment(installments))
	assert.Nil(t, NextUnpaidInstallment(nil))
}
