package controllers

import (
	"fmt"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetWalletBalance returns the customer's current wallet balance
func GetWalletBalance(c *gin.Context) {
	utils.LogDebug("GetWalletBalance called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	utils.Success(c, "Wallet balance", gin.H{
		"balance": fmt.Sprintf("%.2f", wallet.Balance),
	})
}

// GetWalletTransactions returns the customer's wallet ledger, newest first
func GetWalletTransactions(c *gin.Context) {
	utils.LogDebug("GetWalletTransactions called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", wallet.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count wallet transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to load transactions", err.Error())
		return
	}
	pagination.SetTotal(total)

	var transactions []models.WalletTransaction
	if err := config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to load wallet transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to load transactions", err.Error())
		return
	}

	list := make([]gin.H, 0, len(transactions))
	for _, t := range transactions {
		list = append(list, gin.H{
			"amount":      fmt.Sprintf("%.2f", t.Amount),
			"type":        t.Type,
			"status":      t.Status,
			"description": t.Description,
			"reference":   t.Reference,
			"order_id":    t.OrderID,
			"created_at":  t.CreatedAt,
		})
	}

	utils.SendPaginatedResponse(c, list, pagination)
}

// InitiateWalletDeposit starts a manual UPI top-up. Like order payments, the
// deposit is a pending transaction carrying a UPI deep link; nothing is
// credited until an admin verifies the bank reference.
func InitiateWalletDeposit(c *gin.Context) {
	utils.LogInfo("InitiateWalletDeposit called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid deposit request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "A positive amount is required", err.Error())
		return
	}

	transactionID := uuid.New().String()
	description := fmt.Sprintf("Wallet deposit of ₹%.2f", req.Amount)
	deposit := models.PaymentTransaction{
		TransactionID: transactionID,
		UserID:        user.ID,
		Amount:        req.Amount,
		Method:        models.PaymentMethodExternalRef,
		Kind:          models.TransactionKindDeposit,
		Status:        models.PaymentStatusPendingApproval,
		Description:   description,
	}
	if err := config.DB.Create(&deposit).Error; err != nil {
		utils.LogError("Failed to create deposit for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create deposit", err.Error())
		return
	}
	utils.LogInfo("Deposit %s of %.2f initiated for user ID: %d", transactionID, req.Amount, user.ID)

	utils.Created(c, "Deposit initiated. Pay via UPI and submit the bank reference.", gin.H{
		"transaction_id":    transactionID,
		"amount":            fmt.Sprintf("%.2f", req.Amount),
		"status":            deposit.Status,
		"upi_link":          utils.MerchantUPIDeepLink(req.Amount, description, transactionID),
		"verification_note": "Deposits are verified manually, typically within 1-4 hours.",
	})
}

// AdminApproveWalletDeposit settles a pending deposit and credits the wallet
func AdminApproveWalletDeposit(c *gin.Context) {
	utils.LogInfo("AdminApproveWalletDeposit called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	admin := adminVal.(models.Admin)

	transactionID := c.Param("transaction_id")
	var deposit models.PaymentTransaction
	if err := config.DB.Where("transaction_id = ? AND kind = ?", transactionID, models.TransactionKindDeposit).
		First(&deposit).Error; err != nil {
		utils.LogError("Deposit not found: %s", transactionID)
		utils.NotFound(c, "Deposit not found")
		return
	}

	if deposit.Status == models.PaymentStatusApproved {
		utils.LogInfo("Deposit %s already approved, no-op", transactionID)
		utils.Success(c, "Deposit is already approved", gin.H{
			"transaction_id": deposit.TransactionID,
			"status":         deposit.Status,
		})
		return
	}
	if deposit.Status != models.PaymentStatusPendingApproval {
		utils.LogError("Deposit %s is not pending, status: %s", transactionID, deposit.Status)
		utils.BadRequest(c, "This deposit has already been reviewed", gin.H{"status": deposit.Status})
		return
	}

	wallet, err := utils.GetOrCreateWallet(deposit.UserID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", deposit.UserID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	if err := tx.Model(&models.PaymentTransaction{}).Where("id = ?", deposit.ID).
		Update("status", models.PaymentStatusApproved).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to approve deposit %s: %v", transactionID, err)
		utils.InternalServerError(c, "Failed to approve deposit", err.Error())
		return
	}
	if _, err := utils.CreditWallet(tx, wallet.ID, deposit.Amount,
		"Wallet deposit via UPI", nil,
		fmt.Sprintf("DEPOSIT-%s", deposit.TransactionID)); err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet for deposit %s: %v", transactionID, err)
		utils.InternalServerError(c, "Failed to credit wallet", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit deposit approval %s: %v", transactionID, err)
		utils.InternalServerError(c, "Failed to commit approval", err.Error())
		return
	}
	utils.LogInfo("Deposit %s of %.2f approved by %s", transactionID, deposit.Amount, admin.Email)

	utils.Success(c, "Deposit approved and wallet credited", gin.H{
		"transaction_id": deposit.TransactionID,
		"amount":         fmt.Sprintf("%.2f", deposit.Amount),
		"status":         models.PaymentStatusApproved,
	})
}

// AdminRejectWalletDeposit rejects a pending deposit; nothing was credited,
// so there is nothing to reverse.
func AdminRejectWalletDeposit(c *gin.Context) {
	utils.LogInfo("AdminRejectWalletDeposit called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	admin := adminVal.(models.Admin)

	transactionID := c.Param("transaction_id")

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Missing rejection reason: %v", err)
		utils.BadRequest(c, "A rejection reason is required", err.Error())
		return
	}

	var deposit models.PaymentTransaction
	if err := config.DB.Where("transaction_id = ? AND kind = ?", transactionID, models.TransactionKindDeposit).
		First(&deposit).Error; err != nil {
		utils.LogError("Deposit not found: %s", transactionID)
		utils.NotFound(c, "Deposit not found")
		return
	}

	if deposit.Status == models.PaymentStatusRejected {
		utils.LogInfo("Deposit %s already rejected, no-op", transactionID)
		utils.Success(c, "Deposit is already rejected", gin.H{
			"transaction_id": deposit.TransactionID,
			"status":         deposit.Status,
		})
		return
	}
	if deposit.Status != models.PaymentStatusPendingApproval {
		utils.LogError("Deposit %s is not pending, status: %s", transactionID, deposit.Status)
		utils.BadRequest(c, "This deposit has already been reviewed", gin.H{"status": deposit.Status})
		return
	}

	if err := config.DB.Model(&models.PaymentTransaction{}).Where("id = ?", deposit.ID).
		Updates(map[string]interface{}{
			"status":      models.PaymentStatusRejected,
			"description": fmt.Sprintf("%s (rejected: %s)", deposit.Description, req.Reason),
		}).Error; err != nil {
		utils.LogError("Failed to reject deposit %s: %v", transactionID, err)
		utils.InternalServerError(c, "Failed to reject deposit", err.Error())
		return
	}
	utils.LogInfo("Deposit %s rejected by %s: %s", transactionID, admin.Email, req.Reason)

	utils.Success(c, "Deposit rejected", gin.H{
		"transaction_id": deposit.TransactionID,
		"status":         models.PaymentStatusRejected,
		"reason":         req.Reason,
	})
}
