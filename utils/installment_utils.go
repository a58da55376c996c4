package utils

import (
	"math"
	"time"

	"github.com/Aravind-726/SiteCraft/models"
)

// InstallmentPercentages is the fixed 30/30/40 milestone split
var InstallmentPercentages = [3]int{30, 30, 40}

// Due date offsets for installments 2 and 3. These are display estimates,
// not hard deadlines; the actual unlock points are progress-based.
const (
	SecondInstallmentDueDays = 30
	FinalInstallmentDueDays  = 60
)

// ComputeSchedule derives the three-installment payment schedule for a
// partial-payment order. It is the single source of truth for the split:
// every later view reads the persisted Installment.Amount instead of
// recomputing percentages, so a total_price edit after creation cannot make
// the displayed schedule drift from the persisted one.
//
// The first two amounts are rounded to whole rupees and the final
// installment absorbs the remainder, so the three amounts always sum exactly
// to totalPrice.
func ComputeSchedule(totalPrice float64, createdAt time.Time) []models.Installment {
	first := math.Round(totalPrice * float64(InstallmentPercentages[0]) / 100)
	second := math.Round(totalPrice * float64(InstallmentPercentages[1]) / 100)
	final := totalPrice - first - second

	secondDue := createdAt.AddDate(0, 0, SecondInstallmentDueDays)
	finalDue := createdAt.AddDate(0, 0, FinalInstallmentDueDays)

	return []models.Installment{
		{
			Number:        1,
			Percentage:    InstallmentPercentages[0],
			Amount:        first,
			PaymentStatus: models.InstallmentStatusNone,
		},
		{
			Number:        2,
			Percentage:    InstallmentPercentages[1],
			Amount:        second,
			PaymentStatus: models.InstallmentStatusNone,
			DueDate:       &secondDue,
		},
		{
			Number:        3,
			Percentage:    InstallmentPercentages[2],
			Amount:        final,
			PaymentStatus: models.InstallmentStatusNone,
			DueDate:       &finalDue,
		},
	}
}

// NextUnpaidInstallment returns the lowest-numbered unpaid installment, or
// nil when everything is paid (or the order has no installment plan).
func NextUnpaidInstallment(installments []models.Installment) *models.Installment {
	var next *models.Installment
	for i := range installments {
		if installments[i].Paid {
			continue
		}
		if next == nil || installments[i].Number < next.Number {
			next = &installments[i]
		}
	}
	return next
}
