package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOrder places a new website-build order. The order record, its
// installment schedule and checkpoints, the wallet deduction and the pending
// payment transactions all commit as one database transaction: a crash
// mid-way can never leave a debited wallet without an order behind it.
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")
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
	utils.LogInfo("Processing order creation for user ID: %d", userID)

	var req struct {
		ProductID        uint   `json:"product_id"`
		FeatureIDs       []uint `json:"feature_ids"`
		CouponCode       string `json:"coupon_code"`
		PaymentMethod    string `json:"payment_method"`
		IsPartialPayment bool   `json:"is_partial_payment"`
		PreviousOrderID  *uint  `json:"previous_order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	// Validation failures respond before any database write
	if req.ProductID == 0 {
		utils.LogError("Missing product selection for user ID: %d", userID)
		utils.ValidationError(c, "Please select a product", nil)
		return
	}
	if req.PaymentMethod != models.PaymentMethodWallet &&
		req.PaymentMethod != "upi" &&
		req.PaymentMethod != models.PaymentMethodCombined {
		utils.LogError("Invalid payment method '%s' for user ID: %d", req.PaymentMethod, userID)
		utils.ValidationError(c, "Please choose a payment method: wallet, upi or combined", nil)
		return
	}
	utils.LogInfo("Validated selections for user ID: %d", userID)

	db := config.DB
	var product models.Product
	if err := db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&product).Error; err != nil {
		utils.LogError("Product not found, ID: %d: %v", req.ProductID, err)
		utils.NotFound(c, "Product not found")
		return
	}

	var features []models.ProductFeature
	if len(req.FeatureIDs) > 0 {
		if err := db.Where("id IN ? AND product_id = ? AND is_active = ?", req.FeatureIDs, product.ID, true).
			Find(&features).Error; err != nil {
			utils.LogError("Failed to load features for product ID: %d: %v", product.ID, err)
			utils.InternalServerError(c, "Failed to load features", err.Error())
			return
		}
		if len(features) != len(req.FeatureIDs) {
			utils.LogError("Unknown feature selection for product ID: %d", product.ID)
			utils.ValidationError(c, "One or more selected features are unavailable", nil)
			return
		}
	}

	// A rejected order is never resurrected; a retry references it instead
	if req.PreviousOrderID != nil {
		var previous models.Order
		if err := db.Where("id = ? AND user_id = ?", *req.PreviousOrderID, userID).First(&previous).Error; err != nil {
			utils.LogError("Previous order not found, ID: %d, user ID: %d", *req.PreviousOrderID, userID)
			utils.NotFound(c, "Previous order not found")
			return
		}
		if previous.OrderVisibility != models.OrderVisibilityPaymentRejected {
			utils.LogError("Previous order %d is not rejected, visibility: %s", previous.ID, previous.OrderVisibility)
			utils.BadRequest(c, "Only a rejected order can be retried with a new order", nil)
			return
		}
		utils.LogInfo("Order retry references rejected order ID: %d", previous.ID)
	}

	// Build line items: main product plus feature add-ons
	items := []models.OrderLineItem{{
		Kind:          models.LineItemKindMain,
		Name:          product.Name,
		Quantity:      1,
		OriginalPrice: product.Price,
	}}
	originalPrice := product.Price
	for _, f := range features {
		items = append(items, models.OrderLineItem{
			Kind:          models.LineItemKindFeature,
			Name:          f.Name,
			Quantity:      1,
			OriginalPrice: f.Price,
		})
		originalPrice += f.Price
	}

	// Coupon lookup; coupon management itself lives elsewhere
	var couponCode string
	var couponDiscount float64
	if req.CouponCode != "" {
		var coupon models.Coupon
		if err := db.Where("code = ? AND active = ?", req.CouponCode, true).First(&coupon).Error; err != nil {
			utils.LogError("Coupon not found: %s", req.CouponCode)
			utils.BadRequest(c, "Invalid coupon code", nil)
			return
		}
		if coupon.Expiry.Before(time.Now()) {
			utils.LogError("Coupon expired: %s", req.CouponCode)
			utils.BadRequest(c, "This coupon has expired", nil)
			return
		}
		if originalPrice < coupon.MinOrderValue {
			utils.LogError("Order total %.2f below coupon minimum %.2f", originalPrice, coupon.MinOrderValue)
			utils.BadRequest(c, "Order total does not meet the coupon minimum", nil)
			return
		}
		couponCode = coupon.Code
		couponDiscount = coupon.DiscountFor(originalPrice)
		utils.LogInfo("Applied coupon %s, discount: %.2f", couponCode, couponDiscount)
	}

	// Per-item discounts are proportional display figures; the order-level
	// total below is what actually gets charged.
	utils.ApportionCouponDiscount(items, couponDiscount)
	totalPrice := originalPrice - couponDiscount

	order := models.Order{
		UserID:           userID,
		ProductID:        product.ID,
		OriginalPrice:    originalPrice,
		CouponCode:       couponCode,
		CouponDiscount:   couponDiscount,
		TotalPrice:       totalPrice,
		PaymentMethod:    req.PaymentMethod,
		IsPartialPayment: req.IsPartialPayment,
		OrderVisibility:  models.OrderVisibilityPendingApproval,
		PreviousOrderID:  req.PreviousOrderID,
		OrderItems:       items,
		Checkpoints:      utils.DefaultCheckpoints(),
	}
	if req.IsPartialPayment {
		order.Installments = utils.ComputeSchedule(totalPrice, time.Now())
	}

	wallet, err := utils.GetOrCreateWallet(userID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", userID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}
	utils.LogInfo("Started transaction for order creation, user ID: %d", userID)

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}
	utils.LogInfo("Created order ID: %d for user ID: %d, total: %.2f", order.ID, userID, order.TotalPrice)

	if couponCode != "" {
		if err := tx.Model(&models.Coupon{}).Where("code = ?", couponCode).
			UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to increment coupon used_count for code %s: %v", couponCode, err)
			utils.InternalServerError(c, "Failed to update coupon usage count", err.Error())
			return
		}
		utils.LogInfo("Incremented used_count for coupon code: %s", couponCode)
	}

	// Fund the first due amount in the same unit of work
	due := order.TotalPrice
	var installment *models.Installment
	if order.IsPartialPayment {
		installment = &order.Installments[0]
		due = installment.Amount
	}

	// Fresh balance under lock; the pre-transaction read could be stale
	var lockedWallet models.Wallet
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lockedWallet, wallet.ID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load wallet", err.Error())
		return
	}
	walletBalance := lockedWallet.Balance
	if req.PaymentMethod == "upi" {
		// Customer chose to keep their wallet out of this payment
		walletBalance = 0
	}

	result, err := reconcileFunding(tx, &order, installment, due, walletBalance, &lockedWallet, uuid.New().String())
	if err != nil {
		tx.Rollback()
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
		utils.LogError("Failed to commit transaction for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", err.Error())
		return
	}
	utils.LogInfo("Successfully committed order creation for order ID: %d", order.ID)

	data := gin.H{
		"order_id":           order.ID,
		"_id":                order.ID,
		"total_price":        fmt.Sprintf("%.2f", order.TotalPrice),
		"original_price":     fmt.Sprintf("%.2f", order.OriginalPrice),
		"coupon_discount":    fmt.Sprintf("%.2f", order.CouponDiscount),
		"order_visibility":   order.OrderVisibility,
		"is_partial_payment": order.IsPartialPayment,
		"verification_note":  "Payments are verified manually, typically within 1-4 hours.",
	}
	for k, v := range result.Response() {
		data[k] = v
	}
	utils.Created(c, "Order placed. Your payment is queued for verification.", data)
}
