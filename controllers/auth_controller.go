package controllers

import (
	"time"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterUser creates a new customer account
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")

	var req struct {
		Username  string `json:"username" binding:"required,min=3,max=30"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Duplicate registration attempt for email: %s", req.Email)
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.LogError("Failed to check existing user: %v", err)
		utils.InternalServerError(c, "Failed to check existing user", err.Error())
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}
	utils.LogInfo("Registered user ID: %d, email: %s", user.ID, user.Email)

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Created(c, "Account created", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// LoginUser authenticates a customer and issues a JWT
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed, email not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed, wrong password for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if user.IsBlocked {
		utils.LogError("Login attempt by blocked user ID: %d", user.ID)
		utils.Forbidden(c, "This account has been blocked")
		return
	}

	if err := config.DB.Model(&user).Update("last_login_at", time.Now()).Error; err != nil {
		utils.LogError("Failed to record login time for user ID: %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}
	utils.LogInfo("User ID: %d logged in", user.ID)

	utils.Success(c, "Logged in", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
