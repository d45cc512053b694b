package services

import (
	"context"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
)

// TransactionReaderSvc defines read operations over posted transactions
type TransactionReaderSvc interface {
	// GetTransaction retrieves one of the owner's transactions by ID.
	GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves the owner's transactions, newest first.
	ListTransactions(ctx context.Context, userID string, filters domain.TransactionFilters) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the posting operations
type TransactionWriterSvc interface {
	// CreateTransaction validates, resolves the exchange rate, persists the
	// transaction and appends a CREATE_TRANSACTION audit entry.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update, re-resolving the rate and
	// recomputing the canonical amount when amount, currency or date change.
	UpdateTransaction(ctx context.Context, transactionID, userID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction records a pre-delete snapshot in the audit trail and
	// then hard-deletes the owner's transaction.
	DeleteTransaction(ctx context.Context, transactionID, userID string) error
}

// TransactionBatchSvc defines the bulk import/export operations
type TransactionBatchSvc interface {
	// ImportTransactions posts rows independently; one row's failure does not
	// abort the batch. A single audit entry summarizes the whole import.
	ImportTransactions(ctx context.Context, userID string, rows []dto.TransactionRow) (*dto.ImportResult, error)

	// ExportTransactions emits all of the owner's transactions as structured
	// rows with category names resolved, and audits the export.
	ExportTransactions(ctx context.Context, userID string) ([]dto.TransactionRow, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionBatchSvc
}
