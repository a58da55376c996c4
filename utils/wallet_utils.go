package utils

import (
	"errors"

	"github.com/Aravind-726/SiteCraft/config"
	"github.com/Aravind-726/SiteCraft/models"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned when a debit would overdraw the wallet
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// GetOrCreateWallet retrieves or creates a wallet for a user
func GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			wallet = models.Wallet{
				UserID:  userID,
				Balance: 0,
			}
			if err := config.DB.Create(&wallet).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &wallet, nil
}

// DebitWallet deducts amount from a wallet and records the matching debit
// transaction, inside the caller's database transaction so the deduction and
// its ledger entry commit or roll back together. The balance guard in the
// WHERE clause makes a stale or raced balance read fail the transaction with
// ErrInsufficientBalance instead of overdrawing the wallet.
func DebitWallet(tx *gorm.DB, wallet *models.Wallet, amount float64, description string, orderID *uint, reference string) (*models.WalletTransaction, error) {
	res := tx.Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", wallet.ID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientBalance
	}

	record := models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      -amount,
		Type:        models.TransactionTypeDebit,
		Description: description,
		OrderID:     orderID,
		Reference:   reference,
		Status:      models.TransactionStatusCompleted,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreditWallet adds amount to a wallet and records the matching credit
// transaction, inside the caller's database transaction.
func CreditWallet(tx *gorm.DB, walletID uint, amount float64, description string, orderID *uint, reference string) (*models.WalletTransaction, error) {
	if err := tx.Model(&models.Wallet{}).Where("id = ?", walletID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return nil, err
	}

	record := models.WalletTransaction{
		WalletID:    walletID,
		Amount:      amount,
		Type:        models.TransactionTypeCredit,
		Description: description,
		OrderID:     orderID,
		Reference:   reference,
		Status:      models.TransactionStatusCompleted,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
