package controllers

import (
	"strconv"
	"time"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// AdminCompleteCheckpoint marks the next checkpoint of an order's build
// sequence as done. Checkpoints complete strictly in position order; a
// request naming any other checkpoint is a sequence conflict, not a
// validation error, since it usually means two admins raced or the client
// is stale.
func AdminCompleteCheckpoint(c *gin.Context) {
	utils.LogInfo("AdminCompleteCheckpoint called")
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
	checkpointID, err := strconv.Atoi(c.Param("checkpoint_id"))
	if err != nil {
		utils.LogError("Invalid checkpoint ID: %v", err)
		utils.BadRequest(c, "Invalid checkpoint ID", nil)
		return
	}
	utils.LogInfo("Admin %s completing checkpoint %d on order ID: %d", admin.Email, checkpointID, orderID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Checkpoints").First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Order not found: %d: %v", orderID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	next := utils.FirstIncompleteCheckpoint(order.Checkpoints)
	if next == nil {
		tx.Rollback()
		utils.LogError("All checkpoints already complete for order ID: %d", order.ID)
		utils.BadRequest(c, "All checkpoints for this order are already complete", nil)
		return
	}
	if next.ID != uint(checkpointID) {
		tx.Rollback()
		utils.LogError("Out-of-order checkpoint %d requested for order ID: %d, next is %d (%s)",
			checkpointID, order.ID, next.ID, next.Name)
		appErr := utils.SequenceError("Checkpoints must be completed in order. Next is: " + next.Name)
		utils.Error(c, appErr.Code, appErr.Message, gin.H{
			"next_checkpoint_id": next.ID,
			"next_checkpoint":    next.Name,
		})
		return
	}

	now := time.Now()
	if err := tx.Model(&models.Checkpoint{}).Where("id = ?", next.ID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
		}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to complete checkpoint %d for order ID: %d: %v", next.ID, order.ID, err)
		utils.InternalServerError(c, "Failed to update checkpoint", err.Error())
		return
	}

	// Progress is a step function of the latest completed checkpoint
	if err := tx.Model(&order).Update("project_progress", next.Percentage).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update progress for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update progress", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit checkpoint for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to commit checkpoint", err.Error())
		return
	}
	utils.LogInfo("Checkpoint '%s' completed, order ID: %d now at %d%%", next.Name, order.ID, next.Percentage)

	utils.Success(c, "Checkpoint completed", gin.H{
		"order_id":         order.ID,
		"checkpoint_id":    next.ID,
		"checkpoint":       next.Name,
		"project_progress": next.Percentage,
	})
}

// GetProjectStatus is the customer's polled project view. The payment alert
// and pending-verification flag are recomputed from the database on every
// call; the client treats previous responses as stale the moment this one
// lands.
func GetProjectStatus(c *gin.Context) {
	utils.LogDebug("GetProjectStatus called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Preload("Installments").Preload("Checkpoints").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %s, user ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.OrderVisibility == models.OrderVisibilityPendingApproval {
		utils.LogDebug("Order ID: %d still awaiting payment verification", order.ID)
		utils.Success(c, "Your payment is being verified", gin.H{
			"order_id":          order.ID,
			"order_visibility":  order.OrderVisibility,
			"verification_note": "Payments are verified manually, typically within 1-4 hours.",
		})
		return
	}
	if order.OrderVisibility == models.OrderVisibilityPaymentRejected {
		utils.LogDebug("Order ID: %d was rejected", order.ID)
		utils.Success(c, "Your payment was rejected", gin.H{
			"order_id":          order.ID,
			"order_visibility":  order.OrderVisibility,
			"rejection_reason":  order.RejectionReason,
			"previous_order_id": order.ID,
			"next_step":         "Place a new order to continue.",
		})
		return
	}

	alert := utils.EvaluatePaymentAlert(&order)

	var pendingCount int64
	if err := config.DB.Model(&models.PaymentTransaction{}).
		Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPendingApproval).
		Count(&pendingCount).Error; err != nil {
		utils.LogError("Failed to count pending transactions for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to load project status", err.Error())
		return
	}

	checkpoints := make([]gin.H, 0, len(order.Checkpoints))
	for _, cp := range order.Checkpoints {
		checkpoints = append(checkpoints, gin.H{
			"checkpoint_id": cp.ID,
			"position":      cp.Position,
			"name":          cp.Name,
			"percentage":    cp.Percentage,
			"completed":     cp.Completed,
			"completed_at":  cp.CompletedAt,
		})
	}

	data := gin.H{
		"order_id":             order.ID,
		"order_visibility":     order.OrderVisibility,
		"project_progress":     order.ProjectProgress,
		"project_link":         order.ProjectLink,
		"checkpoints":          checkpoints,
		"payment_alert":        alert,
		"pending_verification": pendingCount > 0,
	}
	if order.IsPartialPayment {
		data["installments"] = order.Installments
	}
	utils.Success(c, "Project status", data)
}
