package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount
// on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, amount float64, date models.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      amount,
		Category:    models.CategoryOthers,
		Type:        txType,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
