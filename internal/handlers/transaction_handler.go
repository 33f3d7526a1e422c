package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Any owner supplied by the client is ignored; the owner is
// always the authenticated caller.
type CreateTransactionRequest struct {
	Description string                     `json:"description" binding:"max=255"`
	Amount      *float64                   `json:"amount" binding:"required"`
	Category    models.TransactionCategory `json:"category" binding:"omitempty,transaction_category"`
	Type        models.TransactionType     `json:"type" binding:"required,transaction_type"`
	Date        *models.Date               `json:"date"`
}

// UpdateTransactionRequest represents the request payload for a full or
// partial transaction update.
type UpdateTransactionRequest struct {
	Description *string                     `json:"description" binding:"omitempty,max=255"`
	Amount      *float64                    `json:"amount"`
	Category    *models.TransactionCategory `json:"category" binding:"omitempty,transaction_category"`
	Type        *models.TransactionType     `json:"type" binding:"omitempty,transaction_type"`
	Date        *models.Date                `json:"date"`
}

// ClearResponse reports how many transactions a clear removed.
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

// ListTransactions returns all of the caller's transactions
// @Summary     List transactions
// @Description List the authenticated user's transactions, most recent date first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Transaction "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/ [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction creates a new transaction for the caller
// @Summary     Create a transaction
// @Description Create a new income or expense transaction owned by the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/ [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date models.Date
	if req.Date != nil {
		date = *req.Date
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID,
		req.Description,
		*req.Amount,
		req.Category,
		req.Type,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransactionByID returns a single transaction owned by the caller
// @Summary     Get transaction by ID
// @Description Get a specific transaction. Transactions owned by other users appear as not found.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/ [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction applies a full or partial update to a transaction
// @Summary     Update transaction
// @Description Update fields of an existing transaction. The owner cannot be changed.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/ [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, services.TransactionUpdateFields{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction deletes a transaction owned by the caller
// @Summary     Delete transaction
// @Description Delete a transaction by ID
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/ [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearTransactions deletes all of the caller's transactions
// @Summary     Clear transactions
// @Description Delete all of the authenticated user's transactions and report the count
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ClearResponse "Number of transactions deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/clear/ [delete]
func (h *TransactionHandler) ClearTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.transactionService.ClearTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ExportCSV streams the caller's transactions as a CSV attachment
// @Summary     Export transactions as CSV
// @Description Download the authenticated user's transactions as transactions.csv
// @Tags        transactions
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/export_csv/ [get]
func (h *TransactionHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Buffer the document so errors can still produce a JSON response
	var buf bytes.Buffer
	if err := h.transactionService.ExportCSV(userID, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=transactions.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
