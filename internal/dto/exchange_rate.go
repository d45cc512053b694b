package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// UpsertExchangeRateRequest defines the payload for a manual rate correction.
type UpsertExchangeRateRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	FromCurrency string          `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currency"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse defines the API shape of a cached exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	Date           time.Time       `json:"date"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its API shape.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		Date:           rate.Date,
		FromCurrency:   string(rate.FromCurrency),
		ToCurrency:     string(rate.ToCurrency),
		Rate:           rate.Rate,
		Source:         string(rate.Source),
		LastUpdatedAt:  rate.LastUpdatedAt,
	}
}
