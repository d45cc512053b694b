package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// SummaryResponse is the API shape of a period summary, all amounts in CNY.
type SummaryResponse struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// CategorySummaryResponse is one breakdown row.
type CategorySummaryResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
	Count        int             `json:"count"`
}

// MonthlyReportResponse combines a month's summary with both breakdowns.
type MonthlyReportResponse struct {
	Year              int                       `json:"year"`
	Month             int                       `json:"month"`
	Summary           SummaryResponse           `json:"summary"`
	ExpenseByCategory []CategorySummaryResponse `json:"expenseByCategory"`
	IncomeByCategory  []CategorySummaryResponse `json:"incomeByCategory"`
}

// ToSummaryResponse converts a domain.TransactionSummary to its API shape.
func ToSummaryResponse(s domain.TransactionSummary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		Balance:          s.Balance,
		TransactionCount: s.TransactionCount,
	}
}

// ToCategorySummaryResponses converts breakdown rows to their API shape.
func ToCategorySummaryResponses(rows []domain.CategorySummary) []CategorySummaryResponse {
	responses := make([]CategorySummaryResponse, len(rows))
	for i, row := range rows {
		responses[i] = CategorySummaryResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
			Percentage:   row.Percentage,
			Count:        row.Count,
		}
	}
	return responses
}

// ToMonthlyReportResponse converts a domain.MonthlyReport to its API shape.
func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Year:              r.Year,
		Month:             r.Month,
		Summary:           ToSummaryResponse(r.Summary),
		ExpenseByCategory: ToCategorySummaryResponses(r.ExpenseByCategory),
		IncomeByCategory:  ToCategorySummaryResponses(r.IncomeByCategory),
	}
}
