package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	"github.com/zhwei-dev/jizhang_backend/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetSummaryData(ctx context.Context, userID string, start, end *time.Time) (domain.TransactionSummary, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).(domain.TransactionSummary), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, userID string, start, end time.Time, txnType domain.TransactionType) ([]portsrepo.CategoryAmount, error) {
	args := m.Called(ctx, userID, start, end, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.CategoryAmount), args.Error(1)
}

func (m *MockReportingRepository) GetDistinctMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearMonth), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           *services.ReportingService
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestMonthlySummary_ComputesBalance() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetSummaryData", ctx, suite.userID, mock.MatchedBy(func(start *time.Time) bool {
		return start != nil && start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	}), mock.MatchedBy(func(end *time.Time) bool {
		return end != nil && end.Before(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	})).Return(domain.TransactionSummary{
		TotalIncome:      decimal.RequireFromString("5000.00"),
		TotalExpense:     decimal.RequireFromString("1200.00"),
		TransactionCount: 2,
	}, nil).Once()

	summary, err := suite.service.MonthlySummary(ctx, suite.userID, 2024, 1)

	suite.Require().NoError(err)
	suite.True(summary.Balance.Equal(decimal.RequireFromString("3800.00")))
	suite.Equal(2, summary.TransactionCount)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_InvalidMonth() {
	ctx := context.Background()

	_, err := suite.service.MonthlySummary(ctx, suite.userID, 2024, 13)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestOverallSummary_UnboundedRange() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetSummaryData", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(domain.TransactionSummary{
			TotalIncome:  decimal.NewFromInt(100),
			TotalExpense: decimal.NewFromInt(150),
		}, nil).Once()

	summary, err := suite.service.OverallSummary(ctx, suite.userID)

	suite.Require().NoError(err)
	// A negative balance is legitimate, expenses may exceed income.
	suite.True(summary.Balance.Equal(decimal.NewFromInt(-50)))
}

func (suite *ReportingServiceTestSuite) TestCategoryBreakdown_Percentages() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	suite.mockReportingRepo.On("GetCategoryTotals", ctx, suite.userID, start, end, domain.Expense).
		Return([]portsrepo.CategoryAmount{
			{CategoryID: "c1", CategoryName: "云服务", Amount: decimal.NewFromInt(750), Count: 3},
			{CategoryID: "c2", CategoryName: "运营成本", Amount: decimal.NewFromInt(250), Count: 1},
		}, nil).Once()

	rows, err := suite.service.CategoryBreakdown(ctx, suite.userID, start, end, domain.Expense)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.InDelta(75.0, rows[0].Percentage, 0.0001)
	suite.InDelta(25.0, rows[1].Percentage, 0.0001)
}

func (suite *ReportingServiceTestSuite) TestCategoryBreakdown_ZeroTotal() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetCategoryTotals", ctx, suite.userID, start, end, domain.Income).
		Return([]portsrepo.CategoryAmount{
			{CategoryID: "c1", CategoryName: "项目收入", Amount: decimal.Zero, Count: 0},
		}, nil).Once()

	rows, err := suite.service.CategoryBreakdown(ctx, suite.userID, start, end, domain.Income)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(0.0, rows[0].Percentage)
}

func (suite *ReportingServiceTestSuite) TestAvailableMonths_AlwaysIncludesCurrentMonth() {
	ctx := context.Background()
	now := time.Now()

	suite.mockReportingRepo.On("GetDistinctMonths", ctx, suite.userID).
		Return([]domain.YearMonth{{Year: 2023, Month: 12}, {Year: 2023, Month: 10}}, nil).Once()

	months, err := suite.service.AvailableMonths(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(months, 3)
	suite.Equal(domain.YearMonth{Year: now.Year(), Month: int(now.Month())}, months[0])
	suite.Equal(domain.YearMonth{Year: 2023, Month: 12}, months[1])
}

func (suite *ReportingServiceTestSuite) TestAvailableMonths_NoDuplicateCurrentMonth() {
	ctx := context.Background()
	now := time.Now()
	current := domain.YearMonth{Year: now.Year(), Month: int(now.Month())}

	suite.mockReportingRepo.On("GetDistinctMonths", ctx, suite.userID).
		Return([]domain.YearMonth{current, {Year: 2023, Month: 12}}, nil).Once()

	months, err := suite.service.AvailableMonths(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(months, 2)
}

func (suite *ReportingServiceTestSuite) TestAvailableMonths_FutureMonthStaysFirst() {
	ctx := context.Background()
	now := time.Now()
	current := domain.YearMonth{Year: now.Year(), Month: int(now.Month())}
	future := domain.YearMonth{Year: now.Year() + 1, Month: 1}

	suite.mockReportingRepo.On("GetDistinctMonths", ctx, suite.userID).
		Return([]domain.YearMonth{future, {Year: 2023, Month: 12}}, nil).Once()

	months, err := suite.service.AvailableMonths(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(months, 3)
	suite.Equal(future, months[0])
	suite.Equal(current, months[1])
	suite.Equal(domain.YearMonth{Year: 2023, Month: 12}, months[2])
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_CombinesSummaryAndBreakdowns() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetSummaryData", ctx, suite.userID, mock.Anything, mock.Anything).
		Return(domain.TransactionSummary{
			TotalIncome:      decimal.NewFromInt(5000),
			TotalExpense:     decimal.NewFromInt(1200),
			TransactionCount: 2,
		}, nil).Once()
	suite.mockReportingRepo.On("GetCategoryTotals", ctx, suite.userID, mock.Anything, mock.Anything, domain.Expense).
		Return([]portsrepo.CategoryAmount{
			{CategoryID: "c1", CategoryName: "云服务", Amount: decimal.NewFromInt(1200), Count: 1},
		}, nil).Once()
	suite.mockReportingRepo.On("GetCategoryTotals", ctx, suite.userID, mock.Anything, mock.Anything, domain.Income).
		Return([]portsrepo.CategoryAmount{
			{CategoryID: "c2", CategoryName: "项目收入", Amount: decimal.NewFromInt(5000), Count: 1},
		}, nil).Once()

	report, err := suite.service.MonthlyReport(ctx, suite.userID, 2024, 1)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(2024, report.Year)
	suite.Equal(1, report.Month)
	suite.True(report.Summary.Balance.Equal(decimal.NewFromInt(3800)))
	suite.Require().Len(report.ExpenseByCategory, 1)
	suite.Require().Len(report.IncomeByCategory, 1)
	suite.InDelta(100.0, report.ExpenseByCategory[0].Percentage, 0.0001)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
