package controllers

import (
	"errors"
	"fmt"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fundingResult carries the transactions created for one funding attempt
type fundingResult struct {
	Plan        utils.PaymentPlan
	WalletLeg   *models.PaymentTransaction
	ExternalLeg *models.PaymentTransaction
}

// Response renders the funding result for the API client. When an external
// leg exists the QR payload is the UPI deep link carrying that leg's
// transaction id, so the bank reference the customer brings back can be
// matched to it.
func (r *fundingResult) Response() gin.H {
	data := gin.H{
		"amount_due": fmt.Sprintf("%.2f", r.Plan.Due),
	}
	var transactions []gin.H
	if r.WalletLeg != nil {
		transactions = append(transactions, gin.H{
			"transaction_id": r.WalletLeg.TransactionID,
			"payment_method": r.WalletLeg.Method,
			"amount":         fmt.Sprintf("%.2f", r.WalletLeg.Amount),
			"status":         r.WalletLeg.Status,
		})
	}
	if r.ExternalLeg != nil {
		transactions = append(transactions, gin.H{
			"transaction_id":        r.ExternalLeg.TransactionID,
			"payment_method":        r.ExternalLeg.Method,
			"amount":                fmt.Sprintf("%.2f", r.ExternalLeg.Amount),
			"status":                r.ExternalLeg.Status,
			"parent_transaction_id": r.ExternalLeg.ParentTransactionID,
		})
		data["upi_link"] = utils.MerchantUPIDeepLink(r.ExternalLeg.Amount, r.ExternalLeg.Description, r.ExternalLeg.TransactionID)
		data["upi_instructions"] = "Scan the QR, pay the remaining amount, then submit the bank transaction reference."
	}
	data["transactions"] = transactions
	return data
}

// reconcileFunding turns one due amount into deduplicated pending
// transactions inside the caller's database transaction. Wallet funds are
// deducted immediately but the legs still queue through manual approval;
// no funding source settles on its own.
func reconcileFunding(tx *gorm.DB, order *models.Order, installment *models.Installment, due, walletBalance float64, wallet *models.Wallet, transactionID string) (*fundingResult, error) {
	plan := utils.BuildPaymentPlan(due, walletBalance)
	result := &fundingResult{Plan: plan}

	description := fmt.Sprintf("Payment for order #%d", order.ID)
	var installmentNumber *int
	if installment != nil {
		n := installment.Number
		installmentNumber = &n
		description = fmt.Sprintf("Installment %d for order #%d", n, order.ID)
	}

	if plan.WalletAmount > 0 {
		walletLeg := models.PaymentTransaction{
			TransactionID:     transactionID,
			UserID:            order.UserID,
			OrderID:           &order.ID,
			InstallmentNumber: installmentNumber,
			Amount:            plan.WalletAmount,
			Method:            models.PaymentMethodWallet,
			Kind:              models.TransactionKindPayment,
			Status:            models.PaymentStatusPendingApproval,
			Description:       description,
		}
		if err := tx.Create(&walletLeg).Error; err != nil {
			return nil, err
		}
		if _, err := utils.DebitWallet(tx, wallet, plan.WalletAmount, description, &order.ID, fmt.Sprintf("ORDER-%d-%s", order.ID, transactionID)); err != nil {
			return nil, err
		}
		result.WalletLeg = &walletLeg
	}

	if plan.ExternalAmount > 0 {
		externalLeg := models.PaymentTransaction{
			TransactionID:     transactionID,
			UserID:            order.UserID,
			OrderID:           &order.ID,
			InstallmentNumber: installmentNumber,
			Amount:            plan.ExternalAmount,
			Method:            models.PaymentMethodExternalRef,
			Kind:              models.TransactionKindPayment,
			Status:            models.PaymentStatusPendingApproval,
			Description:       description,
		}
		if plan.Combined() {
			// The external leg of a split payment references its wallet leg
			parent := transactionID
			externalLeg.TransactionID = transactionID + "-EXT"
			externalLeg.ParentTransactionID = &parent
			externalLeg.Method = models.PaymentMethodCombined
		}
		if err := tx.Create(&externalLeg).Error; err != nil {
			return nil, err
		}
		result.ExternalLeg = &externalLeg
	}

	if installment != nil {
		if err := tx.Model(&models.Installment{}).Where("id = ?", installment.ID).
			Update("payment_status", models.InstallmentStatusPendingApproval).Error; err != nil {
			return nil, err
		}
	}

	return result, nil
}

// SubmitPayment funds the next due amount of an existing order: the full
// total for a full-payment order, or one named installment for a partial
// plan. The caller supplies the idempotency key; resubmitting the same
// transaction_id continues the earlier attempt instead of double-charging.
//
// The order row is locked for the duration and every precondition is
// re-checked under that lock, so two concurrent submissions for the same
// installment serialize: the second sees the first's pending transaction and
// continues it instead of creating a second charge.
func SubmitPayment(c *gin.Context) {
	utils.LogInfo("SubmitPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	userID := user.ID

	var req struct {
		OrderID           uint   `json:"order_id" binding:"required"`
		InstallmentNumber *int   `json:"installment_number"`
		TransactionID     string `json:"transaction_id" binding:"required"`
		PaymentMethod     string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request. order_id and transaction_id are required", err.Error())
		return
	}
	utils.LogInfo("Processing payment submission for order ID: %d, user ID: %d", req.OrderID, userID)

	db := config.DB

	// Resubmission of a known transaction id is success-continue, never a
	// duplicate charge: double-clicks and network retries land here.
	var existing models.PaymentTransaction
	if err := db.Where("transaction_id = ? AND user_id = ?", req.TransactionID, userID).First(&existing).Error; err == nil {
		utils.LogInfo("Transaction %s already submitted, continuing", req.TransactionID)
		utils.Success(c, "Payment already submitted, continuing", gin.H{
			"transaction_id": existing.TransactionID,
			"status":         existing.Status,
			"amount":         fmt.Sprintf("%.2f", existing.Amount),
		})
		return
	}

	// Wallet row must exist before the locked section
	wallet, err := utils.GetOrCreateWallet(userID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for order ID: %d: %v", req.OrderID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Order not found for ID: %d, user ID: %d", req.OrderID, userID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.OrderVisibility == models.OrderVisibilityPaymentRejected {
		tx.Rollback()
		utils.LogError("Payment attempted on rejected order ID: %d", order.ID)
		utils.BadRequest(c, "This order's payment was rejected. Please place a new order.", gin.H{
			"previous_order_id": order.ID,
		})
		return
	}

	// One non-terminal transaction per (order, installment); the installment
	// state is read under the order lock so a concurrent submission cannot
	// pass the same checks before this one commits.
	var installment *models.Installment
	due := order.TotalPrice
	if order.IsPartialPayment {
		if req.InstallmentNumber == nil {
			tx.Rollback()
			utils.LogError("Missing installment number for partial order ID: %d", order.ID)
			utils.ValidationError(c, "installment_number is required for a partial-payment order", nil)
			return
		}
		var installments []models.Installment
		if err := tx.Where("order_id = ?", order.ID).Order("number ASC").Find(&installments).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to load installments for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to load installments", err.Error())
			return
		}
		next := utils.NextUnpaidInstallment(installments)
		if next == nil {
			tx.Rollback()
			utils.LogError("All installments already paid for order ID: %d", order.ID)
			utils.BadRequest(c, "All installments for this order are already paid", nil)
			return
		}
		if next.Number != *req.InstallmentNumber {
			tx.Rollback()
			utils.LogError("Out-of-order installment %d requested for order ID: %d, next due: %d", *req.InstallmentNumber, order.ID, next.Number)
			utils.BadRequest(c, fmt.Sprintf("Installment %d is the next one due", next.Number), nil)
			return
		}
		installment = next
		due = next.Amount
	} else if order.OrderVisibility == models.OrderVisibilityApproved {
		tx.Rollback()
		utils.LogError("Order ID: %d is already paid and approved", order.ID)
		utils.BadRequest(c, "This order is already paid", nil)
		return
	}

	var pending models.PaymentTransaction
	pendingQuery := tx.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPendingApproval)
	if installment != nil {
		pendingQuery = pendingQuery.Where("installment_number = ?", installment.Number)
	}
	if err := pendingQuery.First(&pending).Error; err == nil {
		tx.Rollback()
		utils.LogInfo("Pending transaction %s already exists for order ID: %d, continuing", pending.TransactionID, order.ID)
		utils.Success(c, "A payment for this amount is already awaiting verification, continuing", gin.H{
			"transaction_id": pending.TransactionID,
			"status":         pending.Status,
			"amount":         fmt.Sprintf("%.2f", pending.Amount),
		})
		return
	}

	// Fresh balance under lock; the pre-lock read could be stale
	var lockedWallet models.Wallet
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lockedWallet, wallet.ID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load wallet", err.Error())
		return
	}
	walletBalance := lockedWallet.Balance
	if req.PaymentMethod == "upi" {
		walletBalance = 0
	}

	result, err := reconcileFunding(tx, &order, installment, due, walletBalance, &lockedWallet, req.TransactionID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race to a concurrent duplicate; continue it
			var dup models.PaymentTransaction
			if db.Where("transaction_id = ? AND user_id = ?", req.TransactionID, userID).First(&dup).Error == nil {
				utils.LogInfo("Transaction %s raced a duplicate submission, continuing", req.TransactionID)
				utils.Success(c, "Payment already submitted, continuing", gin.H{
					"transaction_id": dup.TransactionID,
					"status":         dup.Status,
					"amount":         fmt.Sprintf("%.2f", dup.Amount),
				})
				return
			}
		}
		if errors.Is(err, utils.ErrInsufficientBalance) {
			utils.LogError("Insufficient wallet balance for order ID: %d", order.ID)
			utils.BadRequest(c, "Insufficient wallet balance for this payment", nil)
			return
		}
		utils.LogError("Failed to reconcile funding for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to process payment", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", err.Error())
		return
	}
	utils.LogInfo("Payment submitted for order ID: %d, wallet: %.2f, external: %.2f",
		order.ID, result.Plan.WalletAmount, result.Plan.ExternalAmount)

	data := result.Response()
	data["verification_note"] = "Payments are verified manually, typically within 1-4 hours."
	utils.Success(c, "Payment submitted and queued for verification", data)
}

// VerifyTransaction attaches the customer-supplied bank reference to the
// external leg of a pending payment so an admin can verify it. Resubmitting
// for a transaction that already carries a reference is success-continue.
func VerifyTransaction(c *gin.Context) {
	utils.LogInfo("VerifyTransaction called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		TransactionID    string `json:"transaction_id" binding:"required"`
		UPITransactionID string `json:"upi_transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. transaction_id and upi_transaction_id are required", err.Error())
		return
	}

	var transaction models.PaymentTransaction
	if err := config.DB.Where("transaction_id = ? AND user_id = ?", req.TransactionID, user.ID).First(&transaction).Error; err != nil {
		utils.LogError("Transaction not found: %s, user ID: %d", req.TransactionID, user.ID)
		utils.NotFound(c, "Transaction not found")
		return
	}

	if transaction.Method == models.PaymentMethodWallet {
		utils.LogError("Bank reference submitted for wallet leg %s", transaction.TransactionID)
		utils.BadRequest(c, "A wallet payment does not need a bank reference", nil)
		return
	}

	if transaction.UPITransactionID != "" {
		utils.LogInfo("Reference already recorded for transaction %s, continuing", transaction.TransactionID)
		utils.Success(c, "Reference already submitted, continuing", gin.H{
			"transaction_id":     transaction.TransactionID,
			"upi_transaction_id": transaction.UPITransactionID,
			"status":             transaction.Status,
		})
		return
	}

	if transaction.Status != models.PaymentStatusPendingApproval {
		utils.LogError("Reference submitted for settled transaction %s, status: %s", transaction.TransactionID, transaction.Status)
		utils.BadRequest(c, "This transaction has already been reviewed", gin.H{"status": transaction.Status})
		return
	}

	if err := config.DB.Model(&transaction).Update("upi_transaction_id", req.UPITransactionID).Error; err != nil {
		utils.LogError("Failed to record reference for transaction %s: %v", transaction.TransactionID, err)
		utils.InternalServerError(c, "Failed to record reference", err.Error())
		return
	}
	utils.LogInfo("Recorded bank reference for transaction %s", transaction.TransactionID)

	utils.Success(c, "Reference submitted for verification", gin.H{
		"transaction_id":     transaction.TransactionID,
		"upi_transaction_id": req.UPITransactionID,
		"status":             models.PaymentStatusPendingApproval,
		"verification_note":  "Payments are verified manually, typically within 1-4 hours.",
	})
}

// CheckPendingOrderTransactions reports whether a payment for the order is
// already awaiting verification, so the client can avoid double-prompting
// while a transaction is in flight.
func CheckPendingOrderTransactions(c *gin.Context) {
	utils.LogInfo("CheckPendingOrderTransactions called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %s, user ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	var pending []models.PaymentTransaction
	if err := config.DB.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPendingApproval).
		Find(&pending).Error; err != nil {
		utils.LogError("Failed to query pending transactions for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to check pending transactions", err.Error())
		return
	}

	var amount float64
	var installmentNumber *int
	for _, t := range pending {
		amount += t.Amount
		if t.InstallmentNumber != nil {
			installmentNumber = t.InstallmentNumber
		}
	}

	utils.Success(c, "Pending transactions checked", gin.H{
		"has_pending":        len(pending) > 0,
		"installment_number": installmentNumber,
		"amount":             fmt.Sprintf("%.2f", amount),
	})
}
