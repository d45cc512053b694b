package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
)

// RateProviderSvc abstracts the external exchange rate source. Any non-success
// response, network failure, or missing currency key is surfaced as an error,
// never as a zero or default rate.
type RateProviderSvc interface {
	// FetchLatestRates returns the provider's latest conversion table for the
	// given base currency.
	FetchLatestRates(ctx context.Context, from domain.Currency) (map[domain.Currency]decimal.Decimal, error)
}

// RateResolverSvc is the conversion policy the posting engine consults.
type RateResolverSvc interface {
	// ResolveRate determines the rate from `currency` to CNY for the given
	// day. Policy order: same-currency shortcut, non-blank manual rate,
	// persistent cache, external provider (with write-back). A rate that
	// cannot be resolved yields apperrors.ErrRateUnavailable.
	ResolveRate(ctx context.Context, date time.Time, currency domain.Currency, manualRate string) (decimal.Decimal, error)
}

// ExchangeRateReaderSvc defines read operations over the persistent rate cache
type ExchangeRateReaderSvc interface {
	// GetRate retrieves the cached rate for a day/pair key.
	GetRate(ctx context.Context, query domain.RateQuery) (*domain.ExchangeRate, error)

	// GetRates retrieves all cached rates for the given keys in one batch.
	GetRates(ctx context.Context, queries []domain.RateQuery) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines the manual-correction upsert
type ExchangeRateWriterSvc interface {
	// UpsertManualRate creates or overwrites a day/pair rate with source
	// "manual". Last write wins.
	UpsertManualRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error)
}

// RateLookupSvc is the rate surface the posting engine needs: per-transaction
// resolution plus the batched cache read that bulk import prefetches with.
type RateLookupSvc interface {
	RateResolverSvc
	ExchangeRateReaderSvc
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces
type ExchangeRateSvcFacade interface {
	RateResolverSvc
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
