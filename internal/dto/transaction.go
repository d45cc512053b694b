package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// CreateTransactionRequest defines the payload for posting a new transaction.
// ExchangeRate is a string so a blank value ("left the form field empty") can
// be told apart from a supplied manual rate.
type CreateTransactionRequest struct {
	OriginalAmount decimal.Decimal `json:"originalAmount" binding:"required"`
	Currency       string          `json:"currency" binding:"required,currency"`
	Type           string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date           time.Time       `json:"date" binding:"required"`
	Description    string          `json:"description"`
	Notes          string          `json:"notes"`
	CategoryID     string          `json:"categoryID" binding:"required"`
	ExchangeRate   string          `json:"exchangeRate"`
}

// UpdateTransactionRequest defines the partial-update payload. Nil fields are
// left unchanged; changing amount, currency or date re-resolves the rate.
type UpdateTransactionRequest struct {
	OriginalAmount *decimal.Decimal `json:"originalAmount"`
	Currency       *string          `json:"currency" binding:"omitempty,currency"`
	Type           *string          `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Date           *time.Time       `json:"date"`
	Description    *string          `json:"description"`
	Notes          *string          `json:"notes"`
	CategoryID     *string          `json:"categoryID"`
	ExchangeRate   string           `json:"exchangeRate"`
}

// TransactionResponse defines the API shape of a posted transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	AmountCNY      decimal.Decimal `json:"amountCNY"`
	Type           string          `json:"type"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CategoryID     string          `json:"categoryID"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its API shape.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		OriginalAmount: txn.OriginalAmount,
		Currency:       string(txn.Currency),
		ExchangeRate:   txn.ExchangeRate,
		AmountCNY:      txn.AmountCNY,
		Type:           string(txn.Type),
		Date:           txn.Date,
		Description:    txn.Description,
		Notes:          txn.Notes,
		CategoryID:     txn.CategoryID,
		CreatedAt:      txn.CreatedAt,
		LastUpdatedAt:  txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// TransactionRow is the field-named record exchanged with the CSV layer.
// Parsing and serializing the delimited text itself happens outside the core;
// import receives these rows already split, export emits them.
type TransactionRow struct {
	Date           string `json:"date"`
	Type           string `json:"type"`
	ParentCategory string `json:"parentCategory"`
	ChildCategory  string `json:"childCategory"`
	Description    string `json:"description"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	ExchangeRate   string `json:"exchangeRate"`
	AmountCNY      string `json:"amountCNY"`
	Notes          string `json:"notes"`
}

// ImportRowError reports one failed row. Row numbers are as seen in the file:
// the header is row 1, so data row i (1-based) is reported as i+1.
type ImportRowError struct {
	Row   int            `json:"row"`
	Error string         `json:"error"`
	Data  TransactionRow `json:"data"`
}

// ImportResult summarizes a batch import.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}

// ImportTransactionsRequest wraps the rows handed to the import endpoint.
type ImportTransactionsRequest struct {
	Rows []TransactionRow `json:"rows" binding:"required"`
}
