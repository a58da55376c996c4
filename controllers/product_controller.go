package controllers

import (
	"fmt"
	"strconv"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"github.com/Aravind-726/SiteCraft/utils"
	"github.com/gin-gonic/gin"
)

// ListProducts returns the active catalog of website-build packages
func ListProducts(c *gin.Context) {
	utils.LogDebug("ListProducts called")

	pagination := utils.NewPagination(c)
	category := c.Query("category")

	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to load products", err.Error())
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Preload("Features", "is_active = ?", true).
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to load products: %v", err)
		utils.InternalServerError(c, "Failed to load products", err.Error())
		return
	}

	utils.SendPaginatedResponse(c, products, pagination)
}

// GetProductDetails returns one package with its add-on features
func GetProductDetails(c *gin.Context) {
	utils.LogDebug("GetProductDetails called")

	productID := c.Param("id")
	var product models.Product
	if err := config.DB.Preload("Features", "is_active = ?", true).
		Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		utils.LogError("Product not found for ID: %s", productID)
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product details", product)
}

// AdminCreateProduct adds a package to the catalog
func AdminCreateProduct(c *gin.Context) {
	utils.LogInfo("AdminCreateProduct called")
	if _, exists := c.Get("admin"); !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product request: %v", err)
		utils.BadRequest(c, "Invalid request. name and a positive price are required", err.Error())
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}
	utils.LogInfo("Created product ID: %d, name: %s", product.ID, product.Name)

	utils.Created(c, "Product created", product)
}

// AdminCreateProductFeature adds a priced add-on to a package
func AdminCreateProductFeature(c *gin.Context) {
	utils.LogInfo("AdminCreateProductFeature called")
	if _, exists := c.Get("admin"); !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid product ID: %v", err)
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid feature request: %v", err)
		utils.BadRequest(c, "Invalid request. name and a positive price are required", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %d: %v", productID, err)
		utils.NotFound(c, "Product not found")
		return
	}

	feature := models.ProductFeature{
		ProductID:   product.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := config.DB.Create(&feature).Error; err != nil {
		utils.LogError("Failed to create feature for product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create feature", err.Error())
		return
	}
	utils.LogInfo("Created feature ID: %d for product ID: %d", feature.ID, product.ID)

	utils.Created(c, "Feature created", feature)
}

// AdminUpdateProduct edits a package's details or toggles its availability
func AdminUpdateProduct(c *gin.Context) {
	utils.LogInfo("AdminUpdateProduct called")
	if _, exists := c.Get("admin"); !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid product ID: %v", err)
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product update request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %d: %v", productID, err)
		utils.NotFound(c, "Product not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.BadRequest(c, "Price must be positive", nil)
			return
		}
		updates["price"] = *req.Price
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}
	utils.LogInfo("Updated product ID: %d (%d fields)", product.ID, len(updates))

	utils.Success(c, "Product updated", gin.H{
		"product_id": product.ID,
		"updated":    fmt.Sprintf("%d fields", len(updates)),
	})
}
