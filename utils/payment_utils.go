package utils

import (
	"github.com/Aravind-726/SiteCraft/models"
)

// PaymentLeg is one funding leg of a payment plan
type PaymentLeg struct {
	Method string
	Amount float64
}

// PaymentPlan is the derived funding split for one due amount. Legs are
// ordered wallet first; a two-leg plan means the external leg must reference
// the wallet leg as its parent when persisted.
type PaymentPlan struct {
	Due            float64
	WalletAmount   float64
	ExternalAmount float64
	Legs           []PaymentLeg
}

// Combined reports whether the plan splits across both funding sources
func (p PaymentPlan) Combined() bool {
	return p.WalletAmount > 0 && p.ExternalAmount > 0
}

// BuildPaymentPlan derives the funding split for a due amount against the
// available wallet balance, in priority order:
//
//  1. wallet covers the full amount -> single wallet leg
//  2. wallet covers part            -> wallet leg + external leg for the rest
//  3. wallet is empty               -> single external leg
//
// A wallet leg is never auto-settled; every leg queues through the same
// manual verification path regardless of funding source.
func BuildPaymentPlan(due, walletBalance float64) PaymentPlan {
	plan := PaymentPlan{Due: due}

	switch {
	case walletBalance >= due:
		plan.WalletAmount = due
		plan.Legs = []PaymentLeg{{Method: models.PaymentMethodWallet, Amount: due}}
	case walletBalance > 0:
		plan.WalletAmount = walletBalance
		plan.ExternalAmount = due - walletBalance
		plan.Legs = []PaymentLeg{
			{Method: models.PaymentMethodWallet, Amount: walletBalance},
			{Method: models.PaymentMethodExternalRef, Amount: due - walletBalance},
		}
	default:
		plan.ExternalAmount = due
		plan.Legs = []PaymentLeg{{Method: models.PaymentMethodExternalRef, Amount: due}}
	}

	return plan
}
