package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
)

// AdminListTransactions returns the payment ledger for the review queue,
// filterable by status and kind.
func AdminListTransactions(c *gin.Context) {
	utils.LogDebug("AdminListTransactions called")
	if _, exists := c.Get("admin"); !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}

	pagination := utils.NewPagination(c)
	status := c.Query("status")
	kind := c.Query("kind")

	query := config.DB.Model(&models.PaymentTransaction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count transactions: %v", err)
		utils.InternalServerError(c, "Failed to load transactions", err.Error())
		return
	}
	pagination.SetTotal(total)

	var transactions []models.PaymentTransaction
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to load transactions: %v", err)
		utils.InternalServerError(c, "Failed to load transactions", err.Error())
		return
	}

	list := make([]gin.H, 0, len(transactions))
	for _, t := range transactions {
		list = append(list, gin.H{
			"transaction_id":        t.TransactionID,
			"parent_transaction_id": t.ParentTransactionID,
			"user_id":               t.UserID,
			"order_id":              t.OrderID,
			"installment_number":    t.InstallmentNumber,
			"amount":                fmt.Sprintf("%.2f", t.Amount),
			"payment_method":        t.Method,
			"kind":                  t.Kind,
			"status":                t.Status,
			"upi_transaction_id":    t.UPITransactionID,
			"created_at":            t.CreatedAt,
		})
	}

	utils.SendPaginatedResponse(c, list, pagination)
}

// Admin: Download payment report as Excel
func DownloadPaymentReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadPaymentReportExcel called")

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating Excel report for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var transactions []models.PaymentTransaction
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for Excel report", len(transactions))

	var summary struct {
		TotalCount    int
		TotalVolume   float64
		ApprovedCount int
		Approved      float64
		PendingCount  int
		Pending       float64
		RejectedCount int
		Rejected      float64
	}
	for _, t := range transactions {
		summary.TotalCount++
		summary.TotalVolume += t.Amount
		switch t.Status {
		case models.PaymentStatusApproved:
			summary.ApprovedCount++
			summary.Approved += t.Amount
		case models.PaymentStatusPendingApproval:
			summary.PendingCount++
			summary.Pending += t.Amount
		case models.PaymentStatusRejected:
			summary.RejectedCount++
			summary.Rejected += t.Amount
		}
	}
	summary.TotalVolume = math.Round(summary.TotalVolume*100) / 100
	summary.Approved = math.Round(summary.Approved*100) / 100
	summary.Pending = math.Round(summary.Pending*100) / 100
	summary.Rejected = math.Round(summary.Rejected*100) / 100

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payment Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	// Business details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("SITECRAFT - Payment Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Custom website design and development")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: support@sitecraft.in")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Transaction ID", "User ID", "Order ID", "Installment", "Date", "Amount", "Method", "Kind", "Status", "Bank Reference"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, t := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetString(t.TransactionID)
		row.AddCell().SetInt(int(t.UserID))
		if t.OrderID != nil {
			row.AddCell().SetInt(int(*t.OrderID))
		} else {
			row.AddCell().SetString("-")
		}
		if t.InstallmentNumber != nil {
			row.AddCell().SetInt(*t.InstallmentNumber)
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetString(t.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetFloat(t.Amount)
		row.AddCell().SetString(t.Method)
		row.AddCell().SetString(t.Kind)
		row.AddCell().SetString(t.Status)
		row.AddCell().SetString(t.UPITransactionID)
	}

	sheet.AddRow() // spacing

	// Summary section
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalCount)},
		{"Total Volume", fmt.Sprintf("%.2f", summary.TotalVolume)},
		{"Approved", fmt.Sprintf("%d / %.2f", summary.ApprovedCount, summary.Approved)},
		{"Pending Verification", fmt.Sprintf("%d / %.2f", summary.PendingCount, summary.Pending)},
		{"Rejected", fmt.Sprintf("%d / %.2f", summary.RejectedCount, summary.Rejected)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payment_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}
