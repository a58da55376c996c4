package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// InitiateWalletTopup creates a Razorpay order for adding money to the
// wallet. Unlike manual UPI deposits, a gateway top-up credits instantly once
// the signature checks out; the gateway is the verifier.
func InitiateWalletTopup(c *gin.Context) {
	utils.LogInfo("InitiateWalletTopup called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return
	}
	userID := user.ID
	utils.LogInfo("Processing wallet topup request for user ID: %d", userID)

	var req struct {
		Amount float64 `json:"amount" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request. Amount is required and must be positive", err.Error())
		return
	}

	wallet, err := utils.GetOrCreateWallet(userID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	// Razorpay expects amount in paise
	amountPaise := int(req.Amount * 100)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "wallet_topup_" + strconv.FormatUint(uint64(userID), 10) + "_" + time.Now().Format("20060102150405"),
		"payment_capture": 1,
	}

	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to create Razorpay order", err.Error())
		return
	}
	utils.LogDebug("Created Razorpay order ID: %v", rzOrder["id"])

	topupOrder := models.WalletTopupOrder{
		UserID:          userID,
		RazorpayOrderID: fmt.Sprintf("%v", rzOrder["id"]),
		Amount:          req.Amount,
		Status:          "pending",
	}
	if err := config.DB.Create(&topupOrder).Error; err != nil {
		utils.LogError("Failed to record wallet topup order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to record wallet topup order", err.Error())
		return
	}

	utils.LogInfo("Successfully initiated wallet topup for user ID: %d", userID)
	utils.Success(c, "Wallet topup order created successfully", gin.H{
		"razorpay_order_id": rzOrder["id"],
		"amount_display":    "₹" + fmt.Sprintf("%.2f", float64(amountPaise)/100),
		"key":               os.Getenv("RAZORPAY_KEY"),
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
		"wallet": gin.H{
			"id":      wallet.ID,
			"balance": fmt.Sprintf("%.2f", wallet.Balance),
		},
		"payment_type": "wallet_topup",
	})
}

// VerifyWalletTopup checks the Razorpay payment signature and credits the
// wallet. Replaying a completed topup order is a no-op success.
func VerifyWalletTopup(c *gin.Context) {
	utils.LogInfo("VerifyWalletTopup called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return
	}
	userID := user.ID

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var topupOrder models.WalletTopupOrder
	if err := config.DB.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, userID).
		First(&topupOrder).Error; err != nil || topupOrder.Amount <= 0 {
		utils.LogError("Failed to fetch wallet topup order - Order ID: %s: %v", req.RazorpayOrderID, err)
		utils.BadRequest(c, "Unable to fetch wallet topup amount for this order_id", nil)
		return
	}

	if topupOrder.Status == "completed" {
		utils.LogInfo("Topup order %s already completed, continuing", req.RazorpayOrderID)
		utils.Success(c, "Topup already completed, continuing", gin.H{
			"razorpay_order_id": topupOrder.RazorpayOrderID,
			"amount_added":      fmt.Sprintf("%.2f", topupOrder.Amount),
		})
		return
	}

	keySecret := os.Getenv("RAZORPAY_SECRET")
	data := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	generatedSignature := hex.EncodeToString(h.Sum(nil))
	if generatedSignature != req.RazorpaySignature {
		utils.LogError("Payment verification failed - Order ID: %s", req.RazorpayOrderID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}
	utils.LogDebug("Verified payment signature for order ID: %s", req.RazorpayOrderID)

	wallet, err := utils.GetOrCreateWallet(userID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for order ID: %s: %v", req.RazorpayOrderID, tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", tx.Error.Error())
		return
	}

	reference := fmt.Sprintf("TOPUP-%s", req.RazorpayPaymentID)
	record, err := utils.CreditWallet(tx, wallet.ID, topupOrder.Amount, "Wallet topup via Razorpay", nil, reference)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet for order ID: %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to credit wallet", err.Error())
		return
	}

	if err := tx.Model(&topupOrder).Update("status", "completed").Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update topup order status for order ID: %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to update topup order status", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction for order ID: %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to commit transaction", err.Error())
		return
	}
	utils.LogInfo("Successfully completed wallet topup of %.2f for user ID: %d", topupOrder.Amount, userID)

	utils.Success(c, "Money added to wallet successfully!", gin.H{
		"amount_added":     fmt.Sprintf("%.2f", topupOrder.Amount),
		"wallet_balance":   fmt.Sprintf("%.2f", wallet.Balance+topupOrder.Amount),
		"transaction_date": record.CreatedAt.Format("2006-01-02 15:04:05"),
		"reference":        reference,
	})
}
