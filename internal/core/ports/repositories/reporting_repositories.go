package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// CategoryAmount is one grouped-aggregate row: a category's summed canonical
// amount and transaction count over a period.
type CategoryAmount struct {
	CategoryID   string
	CategoryName string
	Amount       decimal.Decimal
	Count        int
}

// ReportingRepository defines the grouped-aggregate reads the reporting
// service is built on. All sums are over amount_cny.
type ReportingRepository interface {
	// GetSummaryData sums an owner's transactions split by type. A nil
	// start/end leaves the range unbounded on that side.
	GetSummaryData(ctx context.Context, userID string, start, end *time.Time) (domain.TransactionSummary, error)

	// GetCategoryTotals groups an owner's transactions of one type by
	// category over [start, end].
	GetCategoryTotals(ctx context.Context, userID string, start, end time.Time, txnType domain.TransactionType) ([]CategoryAmount, error)

	// GetDistinctMonths returns the distinct (year, month) pairs present in
	// the owner's transactions, most recent first.
	GetDistinctMonths(ctx context.Context, userID string) ([]domain.YearMonth, error)
}
