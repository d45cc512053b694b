package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the database row shape for a cached day/pair rate.
// (rate_date, from_currency, to_currency) carries a unique constraint.
type ExchangeRate struct {
	ExchangeRateID string
	RateDate       time.Time
	FromCurrency   string
	ToCurrency     string
	Rate           decimal.Decimal
	Source         string
	AuditFields
}
