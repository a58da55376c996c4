package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// ApproveOrder settles every pending transaction of the order's current
// funding attempt, marks the matching installments paid and makes the order
// visible to the customer. The order row is locked for the duration, so two
// admins clicking approve at once serialize to one effective transition; the
// loser sees a no-op success, and nothing is ever credited twice.
func ApproveOrder(c *gin.Context) {
	utils.LogInfo("ApproveOrder called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	admin := adminVal.(models.Admin)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}
	utils.LogInfo("Admin %s approving order ID: %d", admin.Email, orderID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("User").First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Order not found: %d: %v", orderID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.OrderVisibility == models.OrderVisibilityPaymentRejected {
		tx.Rollback()
		utils.LogError("Cannot approve rejected order ID: %d", order.ID)
		utils.BadRequest(c, "A rejected order cannot be approved; the customer must place a new order", nil)
		return
	}

	var pending []models.PaymentTransaction
	if err := tx.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPendingApproval).
		Find(&pending).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to load pending transactions for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to load pending transactions", err.Error())
		return
	}

	if len(pending) == 0 {
		tx.Rollback()
		if order.OrderVisibility == models.OrderVisibilityApproved {
			// Double-submit from the admin UI; nothing left to settle
			utils.LogInfo("Order ID: %d already approved, no-op", order.ID)
			utils.Success(c, "Order is already approved", gin.H{
				"order_id":         order.ID,
				"order_visibility": order.OrderVisibility,
			})
			return
		}
		utils.LogError("No pending payment to approve for order ID: %d", order.ID)
		utils.BadRequest(c, "No pending payment to approve for this order", nil)
		return
	}

	now := time.Now()
	var settled float64
	installmentNumbers := map[int]bool{}
	for _, t := range pending {
		if err := tx.Model(&models.PaymentTransaction{}).Where("id = ?", t.ID).
			Update("status", models.PaymentStatusApproved).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to settle transaction %s: %v", t.TransactionID, err)
			utils.InternalServerError(c, "Failed to settle transaction", err.Error())
			return
		}
		settled += t.Amount
		if t.InstallmentNumber != nil {
			installmentNumbers[*t.InstallmentNumber] = true
		}
	}
	utils.LogInfo("Settled %d transactions totalling %.2f for order ID: %d", len(pending), settled, order.ID)

	for number := range installmentNumbers {
		// Paid installments are immutable; only the pending one flips
		if err := tx.Model(&models.Installment{}).
			Where("order_id = ? AND number = ? AND paid = ?", order.ID, number, false).
			Updates(map[string]interface{}{
				"paid":           true,
				"payment_status": models.InstallmentStatusNone,
				"paid_date":      now,
			}).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to mark installment %d paid for order ID: %d: %v", number, order.ID, err)
			utils.InternalServerError(c, "Failed to update installment", err.Error())
			return
		}
		utils.LogInfo("Marked installment %d paid for order ID: %d", number, order.ID)
	}

	if err := tx.Model(&order).Update("order_visibility", models.OrderVisibilityApproved).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update visibility for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit approval for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to commit approval", err.Error())
		return
	}
	utils.LogInfo("Order ID: %d approved by %s", order.ID, admin.Email)

	if err := utils.SendPaymentApprovedEmail(order.User.Email, order.ID, settled); err != nil {
		utils.LogError("Failed to send approval email for order ID: %d: %v", order.ID, err)
	}

	utils.Success(c, "Payment approved", gin.H{
		"order_id":         order.ID,
		"order_visibility": models.OrderVisibilityApproved,
		"settled_amount":   fmt.Sprintf("%.2f", settled),
	})
}

// RejectOrder reverses the order's pending funding attempt: wallet legs are
// refunded in full, the external leg is discarded, and the order becomes
// PaymentRejected with the reason stored verbatim. The order's other data is
// left untouched for audit; the customer's recovery path is a new order.
func RejectOrder(c *gin.Context) {
	utils.LogInfo("RejectOrder called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	admin := adminVal.(models.Admin)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Missing rejection reason: %v", err)
		utils.BadRequest(c, "A rejection reason is required", err.Error())
		return
	}
	utils.LogInfo("Admin %s rejecting order ID: %d: %s", admin.Email, orderID, req.Reason)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("User").First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Order not found: %d: %v", orderID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.OrderVisibility == models.OrderVisibilityPaymentRejected {
		tx.Rollback()
		utils.LogInfo("Order ID: %d already rejected, no-op", order.ID)
		utils.Success(c, "Order is already rejected", gin.H{
			"order_id":         order.ID,
			"order_visibility": order.OrderVisibility,
			"rejection_reason": order.RejectionReason,
		})
		return
	}

	var pending []models.PaymentTransaction
	if err := tx.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPendingApproval).
		Find(&pending).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to load pending transactions for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to load pending transactions", err.Error())
		return
	}
	if len(pending) == 0 {
		tx.Rollback()
		utils.LogError("No pending payment to reject for order ID: %d", order.ID)
		utils.BadRequest(c, "No pending payment to reject for this order", nil)
		return
	}

	wallet, err := utils.GetOrCreateWallet(order.UserID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to get wallet for user ID: %d: %v", order.UserID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	var refunded float64
	for _, t := range pending {
		if err := tx.Model(&models.PaymentTransaction{}).Where("id = ?", t.ID).
			Update("status", models.PaymentStatusRejected).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to reject transaction %s: %v", t.TransactionID, err)
			utils.InternalServerError(c, "Failed to reject transaction", err.Error())
			return
		}
		if t.Method == models.PaymentMethodWallet {
			// Refund the tentative deduction exactly
			if _, err := utils.CreditWallet(tx, wallet.ID, t.Amount,
				fmt.Sprintf("Refund for rejected payment on order #%d", order.ID),
				&order.ID, fmt.Sprintf("REFUND-%s", t.TransactionID)); err != nil {
				tx.Rollback()
				utils.LogError("Failed to refund wallet leg %s: %v", t.TransactionID, err)
				utils.InternalServerError(c, "Failed to refund wallet", err.Error())
				return
			}
			refunded += t.Amount
		}
		if t.InstallmentNumber != nil {
			if err := tx.Model(&models.Installment{}).
				Where("order_id = ? AND number = ? AND paid = ?", order.ID, *t.InstallmentNumber, false).
				Update("payment_status", models.InstallmentStatusNone).Error; err != nil {
				tx.Rollback()
				utils.LogError("Failed to reset installment %d for order ID: %d: %v", *t.InstallmentNumber, order.ID, err)
				utils.InternalServerError(c, "Failed to update installment", err.Error())
				return
			}
		}
	}
	utils.LogInfo("Rejected %d transactions, refunded %.2f to wallet for order ID: %d", len(pending), refunded, order.ID)

	if err := tx.Model(&order).Updates(map[string]interface{}{
		"order_visibility": models.OrderVisibilityPaymentRejected,
		"rejection_reason": req.Reason,
	}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update visibility for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit rejection for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to commit rejection", err.Error())
		return
	}
	utils.LogInfo("Order ID: %d rejected by %s", order.ID, admin.Email)

	if err := utils.SendPaymentRejectedEmail(order.User.Email, order.ID, req.Reason); err != nil {
		utils.LogError("Failed to send rejection email for order ID: %d: %v", order.ID, err)
	}

	utils.Success(c, "Payment rejected and wallet refunded", gin.H{
		"order_id":         order.ID,
		"order_visibility": models.OrderVisibilityPaymentRejected,
		"rejection_reason": req.Reason,
		"refunded_amount":  fmt.Sprintf("%.2f", refunded),
	})
}
