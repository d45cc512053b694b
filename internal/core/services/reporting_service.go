package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
)

// ReportingService computes summaries and breakdowns from posted
// transactions. Results are always derived on request; nothing is
// pre-aggregated or cached.
type ReportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

var _ portssvc.ReportingService = (*ReportingService)(nil)

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) *ReportingService {
	return &ReportingService{
		reportingRepo: reportingRepo,
		now:           time.Now,
	}
}

// monthRange returns [start, end] covering one calendar month in UTC, with
// end at the last instant before the next month begins.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// MonthlySummary totals the owner's transactions within one calendar month.
func (s *ReportingService) MonthlySummary(ctx context.Context, userID string, year, month int) (domain.TransactionSummary, error) {
	if month < 1 || month > 12 {
		return domain.TransactionSummary{}, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}

	start, end := monthRange(year, month)
	summary, err := s.reportingRepo.GetSummaryData(ctx, userID, &start, &end)
	if err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("failed to compute monthly summary: %w", err)
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

// OverallSummary totals the owner's transactions over an unbounded range.
func (s *ReportingService) OverallSummary(ctx context.Context, userID string) (domain.TransactionSummary, error) {
	summary, err := s.reportingRepo.GetSummaryData(ctx, userID, nil, nil)
	if err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("failed to compute overall summary: %w", err)
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

// CategoryBreakdown groups the owner's transactions of one type by category
// over [start, end]. Percentage is the share of the period total for that
// type; when the total is zero every percentage is zero.
func (s *ReportingService) CategoryBreakdown(ctx context.Context, userID string, start, end time.Time, txnType domain.TransactionType) ([]domain.CategorySummary, error) {
	rows, err := s.reportingRepo.GetCategoryTotals(ctx, userID, start, end, txnType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	summaries := make([]domain.CategorySummary, len(rows))
	for i, row := range rows {
		percentage := 0.0
		if total.IsPositive() {
			percentage, _ = row.Amount.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
		summaries[i] = domain.CategorySummary{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
			Percentage:   percentage,
			Count:        row.Count,
		}
	}
	return summaries, nil
}

// AvailableMonths lists the distinct months with data, most recent first.
// The current calendar month is always present so the UI has a default.
func (s *ReportingService) AvailableMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	months, err := s.reportingRepo.GetDistinctMonths(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available months: %w", err)
	}

	now := s.now()
	current := domain.YearMonth{Year: now.Year(), Month: int(now.Month())}
	for _, m := range months {
		if m == current {
			return months, nil
		}
	}

	// Months come back newest first; insert the current month where it
	// belongs so future-dated data months stay ahead of it.
	insertAt := len(months)
	for i, m := range months {
		if current.Year > m.Year || (current.Year == m.Year && current.Month > m.Month) {
			insertAt = i
			break
		}
	}

	result := make([]domain.YearMonth, 0, len(months)+1)
	result = append(result, months[:insertAt]...)
	result = append(result, current)
	result = append(result, months[insertAt:]...)
	return result, nil
}

// MonthlyReport combines a month's summary with both category breakdowns.
func (s *ReportingService) MonthlyReport(ctx context.Context, userID string, year, month int) (*domain.MonthlyReport, error) {
	summary, err := s.MonthlySummary(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	start, end := monthRange(year, month)
	expenseRows, err := s.CategoryBreakdown(ctx, userID, start, end, domain.Expense)
	if err != nil {
		return nil, err
	}
	incomeRows, err := s.CategoryBreakdown(ctx, userID, start, end, domain.Income)
	if err != nil {
		return nil, err
	}

	return &domain.MonthlyReport{
		Year:              year,
		Month:             month,
		Summary:           summary,
		ExpenseByCategory: expenseRows,
		IncomeByCategory:  incomeRows,
	}, nil
}
