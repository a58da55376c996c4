package models

import (
	"gorm.io/gorm"
)

// Product is a website-build package the customer can order. The catalog is
// managed elsewhere; the order core only reads it at creation time.
type Product struct {
	gorm.Model
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       float64          `json:"price"`
	IsActive    bool             `json:"is_active" gorm:"default:true"`
	Features    []ProductFeature `json:"features,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductFeature is an optional add-on priced on top of its product
type ProductFeature struct {
	gorm.Model
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
}
