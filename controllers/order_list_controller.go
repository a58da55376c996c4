package controllers

import (
	"fmt"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
)

// ListOrders returns the customer's orders, newest first. Every state is
// listed, including rejected ones, so the customer can see why an order
// stalled and start over from it.
func ListOrders(c *gin.Context) {
	utils.LogDebug("ListOrders called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load orders", err.Error())
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := config.DB.Preload("Installments").Preload("OrderItems").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to load orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load orders", err.Error())
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		entry := gin.H{
			"order_id":           o.ID,
			"order_visibility":   o.OrderVisibility,
			"total_price":        fmt.Sprintf("%.2f", o.TotalPrice),
			"is_partial_payment": o.IsPartialPayment,
			"project_progress":   o.ProjectProgress,
			"created_at":         o.CreatedAt,
		}
		if o.OrderVisibility == models.OrderVisibilityPaymentRejected {
			entry["rejection_reason"] = o.RejectionReason
		}
		if o.OrderVisibility == models.OrderVisibilityApproved {
			entry["payment_alert"] = utils.EvaluatePaymentAlert(o)
		}
		list = append(list, entry)
	}

	utils.LogDebug("Listed %d orders for user ID: %d", len(list), user.ID)
	utils.SendPaginatedResponse(c, list, pagination)
}

// GetOrderDetails returns one order with line items, installment schedule and
// a freshly evaluated payment alert.
func GetOrderDetails(c *gin.Context) {
	utils.LogDebug("GetOrderDetails called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("Installments").Preload("Checkpoints").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %s, user ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"kind":           item.Kind,
			"name":           item.Name,
			"quantity":       item.Quantity,
			"original_price": fmt.Sprintf("%.2f", item.OriginalPrice),
			"final_price":    fmt.Sprintf("%.2f", item.FinalPrice),
		})
	}

	data := gin.H{
		"order_id":           order.ID,
		"order_visibility":   order.OrderVisibility,
		"original_price":     fmt.Sprintf("%.2f", order.OriginalPrice),
		"coupon_code":        order.CouponCode,
		"coupon_discount":    fmt.Sprintf("%.2f", order.CouponDiscount),
		"total_price":        fmt.Sprintf("%.2f", order.TotalPrice),
		"payment_method":     order.PaymentMethod,
		"is_partial_payment": order.IsPartialPayment,
		"project_progress":   order.ProjectProgress,
		"project_link":       order.ProjectLink,
		"items":              items,
		"created_at":         order.CreatedAt,
	}
	if order.IsPartialPayment {
		data["installments"] = order.Installments
	}
	if order.OrderVisibility == models.OrderVisibilityPaymentRejected {
		data["rejection_reason"] = order.RejectionReason
		data["next_step"] = "Place a new order to continue."
	}
	if order.OrderVisibility == models.OrderVisibilityApproved {
		data["payment_alert"] = utils.EvaluatePaymentAlert(&order)
	}

	utils.Success(c, "Order details", data)
}
