package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadReceipt generates and returns a PDF receipt for the order
func DownloadReceipt(c *gin.Context) {
	utils.LogInfo("Starting receipt download process")

	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("Unauthorized receipt download attempt - no user found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID format in receipt download request: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}
	utils.LogInfo("Processing receipt download for order ID: %d", orderID)

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("Installments").Preload("User").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for receipt download - Order ID: %d, User ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.OrderVisibility != models.OrderVisibilityApproved {
		utils.LogError("Receipt requested for unapproved order ID: %d, visibility: %s", order.ID, order.OrderVisibility)
		utils.BadRequest(c, "A receipt is available once the payment is verified", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Business info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "SiteCraft")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Custom website design and development")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@sitecraft.in | Phone: +91-98765-43210")
	pdf.Ln(12)

	// Receipt title and order info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(60, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Payment Method: "+order.PaymentMethod)
	pdf.Cell(60, 8, "Status: "+order.OrderVisibility)
	pdf.Ln(8)

	// Customer info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.User.Username)
	pdf.Ln(6)
	pdf.Cell(100, 8, order.User.Email)
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Final", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.CellFormat(70, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, item.Kind, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.OriginalPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.FinalPrice), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Summary
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", order.OriginalPrice), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Discount:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", order.CouponDiscount), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", order.TotalPrice), "", 1, "R", false, 0, "")

	// Installment schedule for split-payment plans
	if order.IsPartialPayment && len(order.Installments) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(100, 8, "Installment Plan:")
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(20, 8, "No.", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, "Share", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "Amount", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "Due Date", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, "Paid", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 12)
		for _, inst := range order.Installments {
			due := "On order"
			if inst.DueDate != nil {
				due = inst.DueDate.Format("2006-01-02")
			}
			paid := "No"
			if inst.Paid {
				paid = "Yes"
			}
			pdf.CellFormat(20, 8, strconv.Itoa(inst.Number), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 8, strconv.Itoa(inst.Percentage)+"%", "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", inst.Amount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 8, due, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 8, paid, "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
	}

	// Thank you note
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for building with SiteCraft!")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	utils.LogInfo("PDF receipt generated successfully for order ID: %d", orderID)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=receipt.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Receipt download completed for order ID: %d", orderID)
}
