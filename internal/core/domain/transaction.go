package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is income or an expense.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// ParseTransactionType converts a type string (case-insensitive) into a
// TransactionType, reporting whether the value is valid.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case Income:
		return Income, true
	case Expense:
		return Expense, true
	}
	return "", false
}

// Transaction represents a single posted ledger entry. The original amount and
// currency are preserved alongside the exchange rate used at posting time;
// AmountCNY is derived and must always equal OriginalAmount * ExchangeRate.
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (UUID)
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Currency       Currency        `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"` // 1 when Currency is CNY
	AmountCNY      decimal.Decimal `json:"amountCNY"`    // OriginalAmount * ExchangeRate
	Type           TransactionType `json:"type"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"` // Nullable
	Notes          string          `json:"notes"`       // Nullable
	CategoryID     string          `json:"categoryID"`  // FK -> Category.categoryID
	UserID         string          `json:"userID"`      // Owner
	AuditFields
}

// TransactionFilters narrows ListTransactions results.
type TransactionFilters struct {
	Type       *TransactionType
	CategoryID *string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
