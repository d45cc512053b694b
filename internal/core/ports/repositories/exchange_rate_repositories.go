package repositories

import (
	"context"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for cached exchange rates
type ExchangeRateReader interface {
	// FindRate retrieves the cached rate for a day/pair key, or
	// apperrors.ErrNotFound when the key has never been cached.
	FindRate(ctx context.Context, query domain.RateQuery) (*domain.ExchangeRate, error)

	// FindRates retrieves all cached rates matching the given keys in one
	// round trip; missing keys are simply absent from the result.
	FindRates(ctx context.Context, queries []domain.RateQuery) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for cached exchange rates
type ExchangeRateWriter interface {
	// UpsertRate creates or overwrites the unique (date, from, to) row.
	// Last write wins.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
