package utils

import (
	"testing"

	"github.com/Aravind-726/SiteCraft/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partialOrder(progress int, installments []models.Installment) *models.Order {
	return &models.Order{
		IsPartialPayment: true,
		ProjectProgress:  progress,
		Installments:     installments,
	}
}

func TestAlertFullPaymentOrderNeverAlerts(t *testing.T) {
	order := &models.Order{IsPartialPayment: false, ProjectProgress: 90}

	alert := EvaluatePaymentAlert(order)
	assert.False(t, alert.Blocked)
	assert.Equal(t, AlertStatusNone, alert.Status)
}

func TestAlertSecondInstallmentBelowGate(t *testing.T) {
	order := partialOrder(39, []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: false, PaymentStatus: models.InstallmentStatusNone},
		{Number: 3, Paid: false, PaymentStatus: models.InstallmentStatusNone},
	})

	alert := EvaluatePaymentAlert(order)
	assert.False(t, alert.Blocked)
	assert.Equal(t, AlertStatusNone, alert.Status)
}

func TestAlertSecondInstallmentAtGate(t *testing.T) {
	order := partialOrder(40, []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: false, PaymentStatus: models.InstallmentStatusNone},
		{Number: 3, Paid: false, PaymentStatus: models.InstallmentStatusNone},
	})

	alert := EvaluatePaymentAlert(order)
	assert.True(t, alert.Blocked)
	assert.Equal(t, AlertStatusDue, alert.Status)
	require.NotNil(t, alert.Installment)
	assert.Equal(t, 2, alert.Installment.Number)
}

func TestAlertFinalInstallmentAtGate(t *testing.T) {
	order := partialOrder(75, []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: true},
		{Number: 3, Paid: false, PaymentStatus: models.InstallmentStatusNone},
	})

	alert := EvaluatePaymentAlert(order)
	assert.True(t, alert.Blocked)
	require.NotNil(t, alert.Installment)
	assert.Equal(t, 3, alert.Installment.Number)
}

func TestAlertFinalInstallmentNotGatedBySecondThreshold(t *testing.T) {
	// Installment 3 only blocks at its own gate, not installment 2's
	order := partialOrder(60, []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: true},
		{Number: 3, Paid: false, PaymentStatus: models.InstallmentStatusNone},
	})

	alert := EvaluatePaymentAlert(order)
	assert.False(t, alert.Blocked)
	assert.Equal(t, AlertStatusNone, alert.Status)
}

func TestAlertPendingApprovalIsInformational(t *testing.T) {
	order := partialOrder(80, []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: true},
		{Number: 3, Paid: false, PaymentStatus: models.InstallmentStatusPendingApproval},
	})

	alert := EvaluatePaymentAlert(order)
	assert.False(t, alert.Blocked, "a payment under review must not block the view")
	assert.Equal(t, AlertStatusPendingApproval, alert.Status)
	require.NotNil(t, alert.Installment)
	assert.Equal(t, 3, alert.Installment.Number)
}

func TestAlertAllPaid(t *testing.T) {
	order := partialOrder(100, []models.Installment{
		{Number: 1, Paid: true},
		{Number: 2, Paid: true},
		{Number: 3, Paid: true},
	})

	alert := EvaluatePaymentAlert(order)
	assert.False(t, alert.Blocked)
	assert.Equal(t, AlertStatusNone, alert.Status)
	assert.Nil(t, alert.Installment)
}
