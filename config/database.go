package config

import (
	"fmt"

	"github.com/Aravind-726/SiteCraft/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey so handlers can treat them as idempotent retries
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Product{},
		&models.ProductFeature{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.Installment{},
		&models.Checkpoint{},
		&models.PaymentTransaction{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.WalletTopupOrder{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
