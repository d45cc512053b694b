package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
)

// ExchangeRateService provides business logic for exchange rates: the
// resolution policy used by the posting engine, reads over the persistent
// rate cache, and manual upserts.
type ExchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	provider portssvc.RateProviderSvc
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, provider portssvc.RateProviderSvc) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo: rateRepo,
		provider: provider,
	}
}

// ResolveRate determines the rate from currency to CNY for the given day.
//
// Resolution order:
//  1. CNY converts at exactly 1, a provided manual rate cannot override this.
//  2. A non-blank manual rate is validated and used as-is.
//  3. The persistent cache is consulted for the (day, pair) key.
//  4. The external provider is called; a fetched rate is written back to the
//     cache with source "auto" before being returned.
//
// When every step fails the error wraps apperrors.ErrRateUnavailable so the
// caller can tell the user to supply a manual rate.
func (s *ExchangeRateService) ResolveRate(ctx context.Context, date time.Time, currency domain.Currency, manualRate string) (decimal.Decimal, error) {
	if currency.IsCanonical() {
		return decimal.NewFromInt(1), nil
	}

	if trimmed := strings.TrimSpace(manualRate); trimmed != "" {
		rate, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: invalid exchange rate %q", apperrors.ErrValidation, trimmed)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return decimal.Decimal{}, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		return rate, nil
	}

	day := domain.NormalizeRateDate(date)
	query := domain.RateQuery{
		Date:         day,
		FromCurrency: currency,
		ToCurrency:   domain.CanonicalCurrency,
	}

	cached, err := s.rateRepo.FindRate(ctx, query)
	if err == nil {
		return cached.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Decimal{}, fmt.Errorf("failed to read rate cache: %w", err)
	}

	table, err := s.provider.FetchLatestRates(ctx, currency)
	if err != nil {
		s.LogError(ctx, err, "external rate provider failed", "currency", currency.String())
		return decimal.Decimal{}, fmt.Errorf("%w: %s to %s on %s, please provide a manual rate", apperrors.ErrRateUnavailable, currency, domain.CanonicalCurrency, day.Format("2006-01-02"))
	}
	rate, ok := table[domain.CanonicalCurrency]
	if !ok || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s to %s on %s, please provide a manual rate", apperrors.ErrRateUnavailable, currency, domain.CanonicalCurrency, day.Format("2006-01-02"))
	}

	// Write-back is best effort; a cache miss next time is cheaper than
	// failing the posting that already has its rate.
	now := time.Now()
	if _, err := s.rateRepo.UpsertRate(ctx, domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Date:           day,
		FromCurrency:   currency,
		ToCurrency:     domain.CanonicalCurrency,
		Rate:           rate,
		Source:         domain.RateSourceAuto,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}); err != nil {
		s.LogError(ctx, err, "failed to write fetched rate to cache", "currency", currency.String())
	}

	return rate, nil
}

// GetRate retrieves the cached rate for a day/pair key.
func (s *ExchangeRateService) GetRate(ctx context.Context, query domain.RateQuery) (*domain.ExchangeRate, error) {
	query.Date = domain.NormalizeRateDate(query.Date)
	rate, err := s.rateRepo.FindRate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	return rate, nil
}

// GetRates retrieves all cached rates for the given keys in one batch.
func (s *ExchangeRateService) GetRates(ctx context.Context, queries []domain.RateQuery) ([]domain.ExchangeRate, error) {
	normalized := make([]domain.RateQuery, len(queries))
	for i, q := range queries {
		q.Date = domain.NormalizeRateDate(q.Date)
		normalized[i] = q
	}
	rates, err := s.rateRepo.FindRates(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// UpsertManualRate creates or overwrites a day/pair rate with source "manual".
// Last write wins, regardless of whether the previous entry was auto or manual.
func (s *ExchangeRateService) UpsertManualRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	from, ok := domain.ParseCurrency(req.FromCurrency)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported currency: %s", apperrors.ErrValidation, req.FromCurrency)
	}
	to, ok := domain.ParseCurrency(req.ToCurrency)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported currency: %s", apperrors.ErrValidation, req.ToCurrency)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency cannot be the same", apperrors.ErrValidation)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Date:           domain.NormalizeRateDate(req.Date),
		FromCurrency:   from,
		ToCurrency:     to,
		Rate:           req.Rate,
		Source:         domain.RateSourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.rateRepo.UpsertRate(ctx, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return saved, nil
}
