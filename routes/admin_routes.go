package routes

import (
	"github.com/Aravind-726/SiteCraft/controllers"
	"github.com/Aravind-726/SiteCraft/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin console routes
func initAdminRoutes(router *gin.RouterGroup) {
	router.POST("/admin/login", controllers.AdminLogin)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		// Order review queue
		admin.GET("/orders", controllers.AdminListOrders)
		admin.GET("/orders/:id", controllers.AdminGetOrderDetails)
		admin.POST("/orders/:id/approve", controllers.ApproveOrder)
		admin.POST("/orders/:id/reject", controllers.RejectOrder)
		admin.PUT("/orders/:id/project-link", controllers.AdminSetProjectLink)

		// Delivery progress
		admin.POST("/orders/:id/checkpoints/:checkpoint_id/complete", controllers.AdminCompleteCheckpoint)

		// Wallet deposits
		admin.POST("/deposits/:transaction_id/approve", controllers.AdminApproveWalletDeposit)
		admin.POST("/deposits/:transaction_id/reject", controllers.AdminRejectWalletDeposit)

		// Payment ledger and reports
		admin.GET("/transactions", controllers.AdminListTransactions)
		admin.GET("/reports/payments/excel", controllers.DownloadPaymentReportExcel)

		// Catalog management
		admin.POST("/products", controllers.AdminCreateProduct)
		admin.PUT("/products/:id", controllers.AdminUpdateProduct)
		admin.POST("/products/:id/features", controllers.AdminCreateProductFeature)
	}
}
