package utils

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aravind-726/SiteCraft/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testUserSeq uint32 = uint32(time.Now().Unix())

// testDB opens the database named by TEST_DATABASE_DSN, or skips the test
// when none is configured. TranslateError matches the server configuration so
// unique-violation behavior is tested the way handlers see it.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Wallet{}, &models.WalletTransaction{}, &models.PaymentTransaction{}))
	return db
}

func newTestWallet(t *testing.T, db *gorm.DB, balance float64) *models.Wallet {
	t.Helper()
	wallet := models.Wallet{
		UserID:  uint(atomic.AddUint32(&testUserSeq, 1)),
		Balance: balance,
	}
	require.NoError(t, db.Create(&wallet).Error)
	return &wallet
}

func TestDebitWalletRefusesOverdraw(t *testing.T) {
	db := testDB(t)
	wallet := newTestWallet(t, db, 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := DebitWallet(tx, wallet, 150, "test debit", nil, "TEST-OVERDRAW")
		return err
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	var reloaded models.Wallet
	require.NoError(t, db.First(&reloaded, wallet.ID).Error)
	assert.Equal(t, 100.0, reloaded.Balance, "a refused debit must leave the balance untouched")

	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", wallet.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "a refused debit must leave no ledger entry")
}

func TestDebitWalletExactBalance(t *testing.T) {
	db := testDB(t)
	wallet := newTestWallet(t, db, 6000)

	err := db.Transaction(func(tx *gorm.DB) error {
		record, err := DebitWallet(tx, wallet, 6000, "test debit", nil, "TEST-EXACT")
		if err != nil {
			return err
		}
		assert.Equal(t, -6000.0, record.Amount)
		return nil
	})
	require.NoError(t, err)

	var reloaded models.Wallet
	require.NoError(t, db.First(&reloaded, wallet.ID).Error)
	assert.Equal(t, 0.0, reloaded.Balance)
}

func TestDebitThenRefundRestoresBalance(t *testing.T) {
	db := testDB(t)
	wallet := newTestWallet(t, db, 6000)
	orderID := uint(42)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := DebitWallet(tx, wallet, 6000, "Payment for order #42", &orderID, "ORDER-42-abc")
		return err
	}))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := CreditWallet(tx, wallet.ID, 6000, "Refund for rejected payment on order #42", &orderID, "REFUND-abc")
		return err
	}))

	var reloaded models.Wallet
	require.NoError(t, db.First(&reloaded, wallet.ID).Error)
	assert.Equal(t, 6000.0, reloaded.Balance, "a rejection refund must restore exactly the debited amount")

	var entries []models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", wallet.ID).Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, -6000.0, entries[0].Amount)
	assert.Equal(t, 6000.0, entries[1].Amount)
}

func TestDuplicateTransactionIDIsRejectedByIndex(t *testing.T) {
	db := testDB(t)
	transactionID := uuid.New().String()
	orderID := uint(7)

	first := models.PaymentTransaction{
		TransactionID: transactionID,
		UserID:        1,
		OrderID:       &orderID,
		Amount:        15000,
		Method:        models.PaymentMethodWallet,
		Kind:          models.TransactionKindPayment,
		Status:        models.PaymentStatusPendingApproval,
	}
	require.NoError(t, db.Create(&first).Error)

	second := first
	second.ID = 0
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey,
		"a raced duplicate submission must surface as ErrDuplicatedKey for the success-continue path")

	var count int64
	require.NoError(t, db.Model(&models.PaymentTransaction{}).
		Where("transaction_id = ?", transactionID).Count(&count).Error)
	assert.Equal(t, int64(1), count, fmt.Sprintf("transaction %s must have exactly one ledger row", transactionID))
}
