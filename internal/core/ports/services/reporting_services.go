package services

import (
	"context"
	"time"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// ReportingService computes summaries and breakdowns from posted transactions.
// It never mutates transaction data; every result is recomputed on request.
type ReportingService interface {
	// MonthlySummary totals the owner's transactions within the given
	// calendar month.
	MonthlySummary(ctx context.Context, userID string, year, month int) (domain.TransactionSummary, error)

	// OverallSummary totals the owner's transactions over an unbounded range.
	OverallSummary(ctx context.Context, userID string) (domain.TransactionSummary, error)

	// CategoryBreakdown groups the owner's transactions of one type by
	// category over [start, end], with percentage shares of the period total.
	CategoryBreakdown(ctx context.Context, userID string, start, end time.Time, txnType domain.TransactionType) ([]domain.CategorySummary, error)

	// AvailableMonths lists the distinct months with data, most recent first.
	// The current calendar month is always present.
	AvailableMonths(ctx context.Context, userID string) ([]domain.YearMonth, error)

	// MonthlyReport combines MonthlySummary with both category breakdowns.
	MonthlyReport(ctx context.Context, userID string, year, month int) (*domain.MonthlyReport, error)
}
