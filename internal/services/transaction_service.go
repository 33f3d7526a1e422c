package services

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// transactionService handles transaction-related business logic. All queries
// carry an explicit user_id predicate; ownership filtering never relies on
// the storage layer alone.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// listOrder is the canonical ordering for lists and exports: most recent
// date first, creation time breaking ties. The trailing id keeps the order
// total when two rows share a created_at timestamp.
const listOrder = "date DESC, created_at DESC, id DESC"

// ListTransactions returns all transactions owned by the user.
func (s *transactionService) ListTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order(listOrder).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// CreateTransaction creates a new transaction owned by the user. The owner
// is always the caller, regardless of anything supplied by the client.
func (s *transactionService) CreateTransaction(
	userID uint,
	description string,
	amount float64,
	category models.TransactionCategory,
	transactionType models.TransactionType,
	date models.Date,
) (*models.Transaction, error) {
	if !transactionType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type is required and must be income or expense")
	}

	if category == "" {
		category = models.CategoryOthers
	} else if !category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category "+strconv.Quote(string(category)))
	}

	// Default date to today if not provided
	if date.IsZero() {
		date = models.Today()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Type:        transactionType,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
// A transaction that exists but belongs to another user is reported as not
// found.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to a transaction owned by the
// user and refreshes updated_at.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if fields.Type != nil {
		if !fields.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
		transaction.Type = *fields.Type
	}

	if fields.Category != nil {
		category := *fields.Category
		if category == "" {
			category = models.CategoryOthers
		} else if !category.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category "+strconv.Quote(string(category)))
		}
		transaction.Category = category
	}

	if fields.Description != nil {
		transaction.Description = *fields.Description
	}
	if fields.Amount != nil {
		transaction.Amount = *fields.Amount
	}
	if fields.Date != nil && !fields.Date.IsZero() {
		transaction.Date = *fields.Date
	}

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ClearTransactions deletes all of the user's transactions and returns the
// number of rows deleted. Other users' rows are untouched.
func (s *transactionService) ClearTransactions(userID uint) (int64, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// ExportCSV writes the user's transactions to w as CSV, one row per
// transaction in the same order as ListTransactions.
func (s *transactionService) ExportCSV(userID uint, w io.Writer) error {
	transactions, err := s.ListTransactions(userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Description", "Type", "Category", "Amount"}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, t := range transactions {
		record := []string{
			t.Date.String(),
			t.Description,
			string(t.Type),
			string(t.Category),
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
