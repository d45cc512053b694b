package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row shape for a posted transaction.
// original_amount, exchange_rate and amount_cny are NUMERIC columns scanned
// into decimal.Decimal so no precision is lost.
type Transaction struct {
	TransactionID  string
	OriginalAmount decimal.Decimal
	Currency       string
	ExchangeRate   decimal.Decimal
	AmountCNY      decimal.Decimal
	Type           string
	Date           time.Time
	Description    string
	Notes          string
	CategoryID     string
	UserID         string
	AuditFields
}
