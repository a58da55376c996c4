package controllers

import (
	"os"
	"time"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminLogin authenticates an admin and issues a JWT
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid admin login request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin login failed, email not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Admin login failed, wrong password for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !admin.IsActive {
		utils.LogError("Login attempt by inactive admin ID: %d", admin.ID)
		utils.Forbidden(c, "This admin account is inactive")
		return
	}

	if err := config.DB.Model(&admin).Update("last_login", time.Now()).Error; err != nil {
		utils.LogError("Failed to record admin login time for ID: %d: %v", admin.ID, err)
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to generate admin token for ID: %d: %v", admin.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}
	utils.LogInfo("Admin ID: %d logged in", admin.ID)

	utils.Success(c, "Logged in", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// CreateSampleAdmin seeds the first admin account from environment variables
// on startup when none exists yet.
func CreateSampleAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogDebug("Admin seed credentials not configured, skipping")
		return
	}

	var admin models.Admin
	err := config.DB.Where("email = ?", email).First(&admin).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.LogError("Failed to check for existing admin: %v", err)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		utils.LogError("Failed to hash admin password: %v", err)
		return
	}

	admin = models.Admin{
		Email:    email,
		Password: hashed,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		utils.LogError("Failed to seed admin account: %v", err)
		return
	}
	utils.LogInfo("Seeded admin account: %s", email)
}
