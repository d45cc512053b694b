package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource records how a cached exchange rate entered the store.
type RateSource string

const (
	RateSourceAuto   RateSource = "auto"   // fetched from the external provider
	RateSourceManual RateSource = "manual" // supplied or corrected by a user
)

// ExchangeRate is a cached conversion rate for a currency pair on a specific
// day. Rows are unique per (Date, FromCurrency, ToCurrency); the date carries
// day granularity only and is normalized to midnight UTC before storage.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	Date           time.Time       `json:"date"`
	FromCurrency   Currency        `json:"fromCurrency"`
	ToCurrency     Currency        `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"` // up to 6 fractional digits
	Source         RateSource      `json:"source"`
	AuditFields
}

// RateQuery identifies a single cache entry for lookup.
type RateQuery struct {
	Date         time.Time
	FromCurrency Currency
	ToCurrency   Currency
}

// NormalizeRateDate truncates a timestamp to midnight UTC. Intraday rate
// variation is not modeled, so all cache keys use day granularity.
func NormalizeRateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
