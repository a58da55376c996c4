package controllers

import (
	"fmt"
	"strconv"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
)

// AdminListOrders returns all orders for the review queue, filterable by
// visibility state and searchable by customer email.
func AdminListOrders(c *gin.Context) {
	utils.LogDebug("AdminListOrders called")
	if _, exists := c.Get("admin"); !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}

	pagination := utils.NewPagination(c)
	visibility := c.Query("visibility")
	search := c.Query("search")

	query := config.DB.Model(&models.Order{}).Joins("JOIN users ON users.id = orders.user_id")
	if visibility != "" {
		if visibility != models.OrderVisibilityPendingApproval &&
			visibility != models.OrderVisibilityApproved &&
			visibility != models.OrderVisibilityPaymentRejected {
			utils.LogError("Invalid visibility filter: %s", visibility)
			utils.BadRequest(c, "Invalid visibility filter", nil)
			return
		}
		query = query.Where("orders.order_visibility = ?", visibility)
	}
	if search != "" {
		query = query.Where("users.email ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to load orders", err.Error())
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Preload("User").Preload("Installments").
		Order("orders.created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to load orders: %v", err)
		utils.InternalServerError(c, "Failed to load orders", err.Error())
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		var pendingCount int64
		if err := config.DB.Model(&models.PaymentTransaction{}).
			Where("order_id = ? AND status = ?", o.ID, models.PaymentStatusPendingApproval).
			Count(&pendingCount).Error; err != nil {
			utils.LogError("Failed to count pending transactions for order ID: %d: %v", o.ID, err)
			utils.InternalServerError(c, "Failed to load orders", err.Error())
			return
		}
		list = append(list, gin.H{
			"order_id":             o.ID,
			"customer":             o.User.Email,
			"order_visibility":     o.OrderVisibility,
			"total_price":          fmt.Sprintf("%.2f", o.TotalPrice),
			"is_partial_payment":   o.IsPartialPayment,
			"project_progress":     o.ProjectProgress,
			"pending_verification": pendingCount > 0,
			"created_at":           o.CreatedAt,
		})
	}

	utils.LogDebug("Admin listed %d orders", len(list))
	utils.SendPaginatedResponse(c, list, pagination)
}

// AdminGetOrderDetails returns one order with the full payment trail for
// verification: every transaction leg with its bank reference, the wallet
// ledger entries and the installment schedule.
func AdminGetOrderDetails(c *gin.Context) {
	utils.LogDebug("AdminGetOrderDetails called")
	if _, exists := c.Get("admin"); !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}

	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Preload("User").Preload("OrderItems").
		Preload("Installments").Preload("Checkpoints").
		First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found for ID: %s", orderID)
		utils.NotFound(c, "Order not found")
		return
	}

	var transactions []models.PaymentTransaction
	if err := config.DB.Where("order_id = ?", order.ID).
		Order("created_at ASC").Find(&transactions).Error; err != nil {
		utils.LogError("Failed to load transactions for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to load transactions", err.Error())
		return
	}

	trail := make([]gin.H, 0, len(transactions))
	for _, t := range transactions {
		trail = append(trail, gin.H{
			"transaction_id":        t.TransactionID,
			"parent_transaction_id": t.ParentTransactionID,
			"installment_number":    t.InstallmentNumber,
			"amount":                fmt.Sprintf("%.2f", t.Amount),
			"payment_method":        t.Method,
			"kind":                  t.Kind,
			"status":                t.Status,
			"upi_transaction_id":    t.UPITransactionID,
			"created_at":            t.CreatedAt,
		})
	}

	utils.Success(c, "Order details", gin.H{
		"order_id":           order.ID,
		"customer":           gin.H{"id": order.User.ID, "username": order.User.Username, "email": order.User.Email},
		"order_visibility":   order.OrderVisibility,
		"rejection_reason":   order.RejectionReason,
		"original_price":     fmt.Sprintf("%.2f", order.OriginalPrice),
		"coupon_code":        order.CouponCode,
		"coupon_discount":    fmt.Sprintf("%.2f", order.CouponDiscount),
		"total_price":        fmt.Sprintf("%.2f", order.TotalPrice),
		"is_partial_payment": order.IsPartialPayment,
		"previous_order_id":  order.PreviousOrderID,
		"project_progress":   order.ProjectProgress,
		"project_link":       order.ProjectLink,
		"installments":       order.Installments,
		"checkpoints":        order.Checkpoints,
		"transactions":       trail,
		"created_at":         order.CreatedAt,
	})
}

// AdminSetProjectLink attaches or updates the staging link the customer sees
// on an approved order's project view.
func AdminSetProjectLink(c *gin.Context) {
	utils.LogInfo("AdminSetProjectLink called")
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
		ProjectLink string `json:"project_link" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid project link: %v", err)
		utils.BadRequest(c, "A valid project_link URL is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found: %d: %v", orderID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	if err := config.DB.Model(&order).Update("project_link", req.ProjectLink).Error; err != nil {
		utils.LogError("Failed to set project link for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to set project link", err.Error())
		return
	}
	utils.LogInfo("Admin %s set project link for order ID: %d", admin.Email, order.ID)

	utils.Success(c, "Project link updated", gin.H{
		"order_id":     order.ID,
		"project_link": req.ProjectLink,
	})
}
