package services

import (
	"io"

	"fintrack/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// TransactionUpdateFields holds optional fields for a partial transaction
// update. Nil pointers leave the stored value unchanged. The owner is not a
// settable field.
type TransactionUpdateFields struct {
	Description *string
	Amount      *float64
	Category    *models.TransactionCategory
	Type        *models.TransactionType
	Date        *models.Date
}

// TransactionServicer defines the contract for transaction-related business
// logic. Every method takes the authenticated caller's user ID and operates
// only on rows owned by that user.
type TransactionServicer interface {
	ListTransactions(userID uint) ([]models.Transaction, error)
	CreateTransaction(userID uint, description string, amount float64, category models.TransactionCategory, transactionType models.TransactionType, date models.Date) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	ClearTransactions(userID uint) (int64, error)
	ExportCSV(userID uint, w io.Writer) error
}
