package routes

import (
	"github.com/Aravind-726/SiteCraft/controllers"
	"github.com/Aravind-726/SiteCraft/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Catalog routes
	router.GET("/products", controllers.ListProducts)
	router.GET("/products/:id", controllers.GetProductDetails)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Order operations
		protected.POST("/orders", controllers.CreateOrder)
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)
		protected.GET("/orders/:id/project", controllers.GetProjectStatus)
		protected.GET("/orders/:id/pending-transactions", controllers.CheckPendingOrderTransactions)
		protected.GET("/orders/:id/receipt", controllers.DownloadReceipt)

		// Payment operations
		protected.POST("/payments/submit", controllers.SubmitPayment)
		protected.POST("/payments/verify", controllers.VerifyTransaction)

		// Wallet operations
		protected.GET("/wallet", controllers.GetWalletBalance)
		protected.GET("/wallet/transactions", controllers.GetWalletTransactions)
		protected.POST("/wallet/deposit", controllers.InitiateWalletDeposit)
		protected.POST("/wallet/topup", controllers.InitiateWalletTopup)
		protected.POST("/wallet/topup/verify", controllers.VerifyWalletTopup)
	}
}
