package domain

import "github.com/shopspring/decimal"

// TransactionSummary totals an owner's transactions over a period, with all
// amounts expressed in the canonical currency.
type TransactionSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"` // TotalIncome - TotalExpense
	TransactionCount int             `json:"transactionCount"`
}

// CategorySummary is one row of a per-category breakdown. Percentage is the
// share of the period total for the same transaction type, 0 when that total
// is zero.
type CategorySummary struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"` // CNY
	Percentage   float64         `json:"percentage"`
	Count        int             `json:"count"`
}

// YearMonth identifies a calendar month that has reportable data.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthlyReport combines a month's summary with its per-category breakdowns.
type MonthlyReport struct {
	Year              int                `json:"year"`
	Month             int                `json:"month"`
	Summary           TransactionSummary `json:"summary"`
	ExpenseByCategory []CategorySummary  `json:"expenseByCategory"`
	IncomeByCategory  []CategorySummary  `json:"incomeByCategory"`
}
