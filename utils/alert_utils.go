package utils

import (
	"github.com/Aravind-726/SiteCraft/models"
)

// Payment alert status constants
const (
	AlertStatusNone            = "none"
	AlertStatusDue             = "due"
	AlertStatusPendingApproval = "pending-approval"
)

// Progress thresholds past which the next installment blocks the project view
const (
	SecondInstallmentProgressGate = 40
	FinalInstallmentProgressGate  = 75
)

// PaymentAlert is the derived payment-gate state for a project view
type PaymentAlert struct {
	Blocked     bool                `json:"blocked"`
	Status      string              `json:"status"`
	Installment *models.Installment `json:"installment,omitempty"`
}

// EvaluatePaymentAlert decides, from the order snapshot alone, whether the
// customer must be prompted for the next installment. It is pure and
// side-effect-free: the client polls the project view every ~30s and this is
// recomputed fresh on each poll, never cached as authoritative.
//
// A pending-approval installment reports as informational, not blocking.
// Otherwise installment 2 blocks at >=40% progress and installment 3 at
// >=75%; installment 1 never blocks here since the order itself is not
// visible until the first payment is approved.
func EvaluatePaymentAlert(order *models.Order) PaymentAlert {
	if !order.IsPartialPayment {
		return PaymentAlert{Status: AlertStatusNone}
	}

	next := NextUnpaidInstallment(order.Installments)
	if next == nil {
		return PaymentAlert{Status: AlertStatusNone}
	}

	if next.PaymentStatus == models.InstallmentStatusPendingApproval {
		return PaymentAlert{Blocked: false, Status: AlertStatusPendingApproval, Installment: next}
	}

	blocked := (next.Number == 2 && order.ProjectProgress >= SecondInstallmentProgressGate) ||
		(next.Number == 3 && order.ProjectProgress >= FinalInstallmentProgressGate)
	if blocked {
		return PaymentAlert{Blocked: true, Status: AlertStatusDue, Installment: next}
	}

	return PaymentAlert{Status: AlertStatusNone, Installment: next}
}
