package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
)

// PgxReportingRepository runs the grouped-aggregate reads behind the
// reporting service. All sums are over amount_cny, never the original amount,
// so mixed-currency periods aggregate cleanly.
type PgxReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for reporting aggregates.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetSummaryData sums an owner's transactions split by type. A nil start/end
// leaves the range unbounded on that side.
func (r *PgxReportingRepository) GetSummaryData(ctx context.Context, userID string, start, end *time.Time) (domain.TransactionSummary, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT
			COALESCE(SUM(amount_cny) FILTER (WHERE type = 'INCOME'), 0) AS total_income,
			COALESCE(SUM(amount_cny) FILTER (WHERE type = 'EXPENSE'), 0) AS total_expense,
			COUNT(*) AS transaction_count
		FROM transactions
		WHERE user_id = $1`)
	args := []any{userID}

	if start != nil {
		args = append(args, *start)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	sb.WriteString(";")

	var summary domain.TransactionSummary
	err := r.Pool.QueryRow(ctx, sb.String(), args...).Scan(
		&summary.TotalIncome,
		&summary.TotalExpense,
		&summary.TransactionCount,
	)
	if err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("failed to compute summary: %w", err)
	}
	return summary, nil
}

// GetCategoryTotals groups an owner's transactions of one type by category
// over [start, end], largest amount first.
func (r *PgxReportingRepository) GetCategoryTotals(ctx context.Context, userID string, start, end time.Time, txnType domain.TransactionType) ([]portsrepo.CategoryAmount, error) {
	query := `
		SELECT t.category_id, c.name, SUM(t.amount_cny) AS amount, COUNT(*) AS txn_count
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1 AND t.type = $2 AND t.date >= $3 AND t.date <= $4
		GROUP BY t.category_id, c.name
		ORDER BY amount DESC;
	`

	rows, err := r.Pool.Query(ctx, query, userID, string(txnType), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (portsrepo.CategoryAmount, error) {
		var total portsrepo.CategoryAmount
		err := row.Scan(&total.CategoryID, &total.CategoryName, &total.Amount, &total.Count)
		return total, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan category totals: %w", err)
	}
	return totals, nil
}

// GetDistinctMonths returns the distinct (year, month) pairs present in the
// owner's transactions, most recent first.
func (r *PgxReportingRepository) GetDistinctMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year, EXTRACT(MONTH FROM date)::int AS month
		FROM transactions
		WHERE user_id = $1
		ORDER BY year DESC, month DESC;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct months: %w", err)
	}
	defer rows.Close()

	months, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.YearMonth, error) {
		var ym domain.YearMonth
		err := row.Scan(&ym.Year, &ym.Month)
		return ym, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan distinct months: %w", err)
	}
	return months, nil
}
