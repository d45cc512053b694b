package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	"github.com/zhwei-dev/jizhang_backend/internal/models"
	"github.com/zhwei-dev/jizhang_backend/internal/utils/mapping"
)

const exchangeRateColumns = `exchange_rate_id, rate_date, from_currency, to_currency, rate, source, created_at, created_by, last_updated_at, last_updated_by`

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for cached exchange rates.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.RateDate,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.Rate,
		&rate.Source,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	return rate, err
}

// FindRate retrieves the cached rate for a day/pair key.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, query domain.RateQuery) (*domain.ExchangeRate, error) {
	sql := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE rate_date = $1 AND from_currency = $2 AND to_currency = $3;`

	modelRate, err := scanExchangeRate(r.Pool.QueryRow(ctx, sql, query.Date, string(query.FromCurrency), string(query.ToCurrency)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s/%s: %w", query.FromCurrency, query.ToCurrency, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// FindRates retrieves all cached rates matching the given keys in one round
// trip. Missing keys are simply absent from the result.
func (r *PgxExchangeRateRepository) FindRates(ctx context.Context, queries []domain.RateQuery) ([]domain.ExchangeRate, error) {
	if len(queries) == 0 {
		return []domain.ExchangeRate{}, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE `)
	args := make([]any, 0, len(queries)*3)
	for i, q := range queries {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		args = append(args, q.Date, string(q.FromCurrency), string(q.ToCurrency))
		fmt.Fprintf(&sb, "(rate_date = $%d AND from_currency = $%d AND to_currency = $%d)", len(args)-2, len(args)-1, len(args))
	}
	sb.WriteString(";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	domainRates := make([]domain.ExchangeRate, len(modelRates))
	for i, m := range modelRates {
		domainRates[i] = mapping.ToDomainExchangeRate(m)
	}
	return domainRates, nil
}

// UpsertRate creates or overwrites the unique (rate_date, from_currency,
// to_currency) row. Last write wins, including the source column, so a manual
// correction can overwrite an auto-fetched rate and vice versa.
func (r *PgxExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (rate_date, from_currency, to_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + exchangeRateColumns + `;
	`

	saved, err := scanExchangeRate(r.Pool.QueryRow(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.RateDate,
		modelRate.FromCurrency,
		modelRate.ToCurrency,
		modelRate.Rate,
		modelRate.Source,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate %s/%s: %w", modelRate.FromCurrency, modelRate.ToCurrency, err)
	}

	domainRate := mapping.ToDomainExchangeRate(saved)
	return &domainRate, nil
}
