package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/core/services"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByUser(ctx context.Context, userID string, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) ResolveRate(ctx context.Context, date time.Time, currency domain.Currency, manualRate string) (decimal.Decimal, error) {
	args := m.Called(ctx, date, currency, manualRate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateResolver) GetRate(ctx context.Context, query domain.RateQuery) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockRateResolver) GetRates(ctx context.Context, queries []domain.RateQuery) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

var _ portssvc.RateLookupSvc = (*MockRateResolver)(nil)

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, input portssvc.AuditRecordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	mockResolver     *MockRateResolver
	mockAuditor      *MockAuditRecorder
	service          portssvc.TransactionSvcFacade

	userID     string
	categoryID string
	category   *domain.Category
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockResolver = new(MockRateResolver)
	suite.mockAuditor = new(MockAuditRecorder)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockCategoryRepo,
		suite.mockResolver,
		suite.mockAuditor,
	)

	suite.userID = uuid.NewString()
	suite.categoryID = uuid.NewString()
	suite.category = &domain.Category{
		CategoryID: suite.categoryID,
		Name:       "云服务",
		Type:       domain.Expense,
		UserID:     suite.userID,
	}
}

// --- Create ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.RequireFromString("100.50"),
		Currency:       "USD",
		Type:           "EXPENSE",
		Date:           date,
		Description:    "AWS bill",
		CategoryID:     suite.categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, date, domain.USD, "").
		Return(decimal.RequireFromString("7.20"), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AmountCNY.Equal(decimal.RequireFromString("723.60")) &&
			txn.ExchangeRate.Equal(decimal.RequireFromString("7.20")) &&
			txn.Currency == domain.USD &&
			txn.UserID == suite.userID
	})).Return(nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.MatchedBy(func(input portssvc.AuditRecordInput) bool {
		return input.Action == domain.AuditCreateTransaction && input.UserID == suite.userID
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.True(txn.AmountCNY.Equal(decimal.RequireFromString("723.60")))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAuditor.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_KeepsFullRatePrecision() {
	ctx := context.Background()
	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.RequireFromString("100.37"),
		Currency:       "USD",
		Type:           "EXPENSE",
		Date:           date,
		CategoryID:     suite.categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, date, domain.USD, "").
		Return(decimal.RequireFromString("7.123456"), nil).Once()
	// The stored CNY amount is the exact product; rounding happens only when
	// amounts are formatted for display.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AmountCNY.Equal(decimal.RequireFromString("714.98127872"))
	})).Return(nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.AnythingOfType("services.AuditRecordInput")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.AmountCNY.Equal(decimal.RequireFromString("714.98127872")))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AuditFailureDoesNotFailCreate() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromInt(50),
		Currency:       "CNY",
		Type:           "EXPENSE",
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, mock.Anything, domain.CNY, "").
		Return(decimal.NewFromInt(1), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.AnythingOfType("services.AuditRecordInput")).
		Return(fmt.Errorf("audit store down")).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.Zero,
		Currency:       "USD",
		Type:           "EXPENSE",
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnsupportedCurrency() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       "EUR",
		Type:           "EXPENSE",
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "unsupported currency")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CategoryTypeMismatch() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       "CNY",
		Type:           "INCOME",
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignCategory() {
	ctx := context.Background()
	otherCategory := &domain.Category{
		CategoryID: suite.categoryID,
		Type:       domain.Expense,
		UserID:     uuid.NewString(),
	}
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       "CNY",
		Type:           "EXPENSE",
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(otherCategory, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RateUnavailable() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       "USD",
		Type:           "EXPENSE",
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, mock.Anything, domain.USD, "").
		Return(decimal.Decimal{}, fmt.Errorf("%w: USD to CNY", apperrors.ErrRateUnavailable)).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

// --- Update ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RepricesOnAmountChange() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:  txnID,
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       domain.USD,
		ExchangeRate:   decimal.RequireFromString("7.00"),
		AmountCNY:      decimal.RequireFromString("700.00"),
		Type:           domain.Expense,
		Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CategoryID:     suite.categoryID,
		UserID:         suite.userID,
	}
	newAmount := decimal.NewFromInt(200)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, existing.Date, domain.USD, "").
		Return(decimal.RequireFromString("7.10"), nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AmountCNY.Equal(decimal.RequireFromString("1420.00")) &&
			txn.OriginalAmount.Equal(newAmount)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txnID, suite.userID, dto.UpdateTransactionRequest{
		OriginalAmount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.AmountCNY.Equal(decimal.RequireFromString("1420.00")))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoRepriceForNotesOnly() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:  txnID,
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       domain.USD,
		ExchangeRate:   decimal.RequireFromString("7.00"),
		AmountCNY:      decimal.RequireFromString("700.00"),
		Type:           domain.Expense,
		Date:           time.Now(),
		CategoryID:     suite.categoryID,
		UserID:         suite.userID,
	}
	notes := "updated notes"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txnID, suite.userID, dto.UpdateTransactionRequest{
		Notes: &notes,
	})

	suite.Require().NoError(err)
	suite.Equal("updated notes", updated.Notes)
	suite.True(updated.AmountCNY.Equal(decimal.RequireFromString("700.00")))
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ForeignTransaction() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: txnID,
		UserID:        uuid.NewString(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txnID, suite.userID, dto.UpdateTransactionRequest{})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Delete ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_SnapshotsBeforeDelete() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:  txnID,
		OriginalAmount: decimal.RequireFromString("100.50"),
		Currency:       domain.USD,
		ExchangeRate:   decimal.RequireFromString("7.20"),
		AmountCNY:      decimal.RequireFromString("723.60"),
		Type:           domain.Expense,
		Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CategoryID:     suite.categoryID,
		UserID:         suite.userID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.MatchedBy(func(input portssvc.AuditRecordInput) bool {
		return input.Action == domain.AuditDeleteTransaction &&
			input.EntityID == txnID &&
			input.Details["originalAmount"] == "100.5" &&
			input.Details["currency"] == "USD"
	})).Return(nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAuditor.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_AuditFailureAbortsDelete() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.AnythingOfType("services.AuditRecordInput")).
		Return(fmt.Errorf("audit store down")).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, suite.userID)

	suite.Require().Error(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

// --- Import ---

func (suite *TransactionServiceTestSuite) importCategories() []domain.Category {
	parentID := uuid.NewString()
	childID := uuid.NewString()
	return []domain.Category{
		{CategoryID: parentID, Name: "云服务", Type: domain.Expense, UserID: suite.userID},
		{CategoryID: childID, Name: "AWS", Type: domain.Expense, ParentID: &parentID, UserID: suite.userID},
	}
}

func (suite *TransactionServiceTestSuite) TestImportTransactions_BadRowDoesNotAbortBatch() {
	ctx := context.Background()
	rows := []dto.TransactionRow{
		{Date: "2024-01-10", Type: "EXPENSE", ParentCategory: "云服务", ChildCategory: "AWS", Amount: "100.50", Currency: "USD", ExchangeRate: "7.20"},
		{Date: "2024-01-11", Type: "EXPENSE", ParentCategory: "云服务", Amount: "42", Currency: "XXX"},
		{Date: "2024-01-12", Type: "EXPENSE", ParentCategory: "云服务", Amount: "88", Currency: "CNY"},
	}

	suite.mockCategoryRepo.On("FindCategoriesByUser", ctx, suite.userID, (*domain.TransactionType)(nil)).
		Return(suite.importCategories(), nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, mock.Anything, domain.USD, "7.20").
		Return(decimal.RequireFromString("7.20"), nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, mock.Anything, domain.CNY, "").
		Return(decimal.NewFromInt(1), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Twice()
	suite.mockAuditor.On("Record", ctx, mock.MatchedBy(func(input portssvc.AuditRecordInput) bool {
		return input.Action == domain.AuditImportTransactions &&
			input.Details["totalRows"] == 3 &&
			input.Details["successCount"] == 2 &&
			input.Details["failedCount"] == 1
	})).Return(nil).Once()

	result, err := suite.service.ImportTransactions(ctx, suite.userID, rows)

	suite.Require().NoError(err)
	suite.Equal(2, result.Success)
	suite.Equal(1, result.Failed)
	suite.Require().Len(result.Errors, 1)
	// Header is row 1, so the second data row is reported as row 3.
	suite.Equal(3, result.Errors[0].Row)
	suite.Contains(result.Errors[0].Error, "unsupported currency")
	suite.mockAuditor.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestImportTransactions_PrefetchesSharedDayRates() {
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rows := []dto.TransactionRow{
		{Date: "2024-01-10", Type: "EXPENSE", ParentCategory: "云服务", ChildCategory: "AWS", Amount: "100.37", Currency: "USD"},
		{Date: "2024-01-10", Type: "EXPENSE", ParentCategory: "云服务", Amount: "50", Currency: "USD"},
	}

	suite.mockCategoryRepo.On("FindCategoriesByUser", ctx, suite.userID, (*domain.TransactionType)(nil)).
		Return(suite.importCategories(), nil).Once()
	// Both rows share one (day, currency) key, so the batch makes a single
	// cache read and no per-row resolution.
	suite.mockResolver.On("GetRates", ctx, mock.MatchedBy(func(queries []domain.RateQuery) bool {
		return len(queries) == 1 &&
			queries[0].Date.Equal(day) &&
			queries[0].FromCurrency == domain.USD &&
			queries[0].ToCurrency == domain.CanonicalCurrency
	})).Return([]domain.ExchangeRate{
		{Date: day, FromCurrency: domain.USD, ToCurrency: domain.CanonicalCurrency, Rate: decimal.RequireFromString("7.123456"), Source: domain.RateSourceAuto},
	}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ExchangeRate.Equal(decimal.RequireFromString("7.123456"))
	})).Return(nil).Twice()
	suite.mockAuditor.On("Record", ctx, mock.AnythingOfType("services.AuditRecordInput")).Return(nil).Once()

	result, err := suite.service.ImportTransactions(ctx, suite.userID, rows)

	suite.Require().NoError(err)
	suite.Equal(2, result.Success)
	suite.Equal(0, result.Failed)
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockResolver.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestImportTransactions_UnknownCategory() {
	ctx := context.Background()
	rows := []dto.TransactionRow{
		{Date: "2024-01-10", Type: "EXPENSE", ParentCategory: "不存在", Amount: "10", Currency: "CNY"},
	}

	suite.mockCategoryRepo.On("FindCategoriesByUser", ctx, suite.userID, (*domain.TransactionType)(nil)).
		Return(suite.importCategories(), nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.AnythingOfType("services.AuditRecordInput")).Return(nil).Once()

	result, err := suite.service.ImportTransactions(ctx, suite.userID, rows)

	suite.Require().NoError(err)
	suite.Equal(0, result.Success)
	suite.Equal(1, result.Failed)
	suite.Equal(2, result.Errors[0].Row)
	suite.Contains(result.Errors[0].Error, "category not found")
}

// --- Export ---

func (suite *TransactionServiceTestSuite) TestExportTransactions_ResolvesCategoryNames() {
	ctx := context.Background()
	categories := suite.importCategories()
	childID := categories[1].CategoryID

	txns := []domain.Transaction{
		{
			TransactionID:  uuid.NewString(),
			OriginalAmount: decimal.RequireFromString("100.50"),
			Currency:       domain.USD,
			ExchangeRate:   decimal.RequireFromString("7.20"),
			AmountCNY:      decimal.RequireFromString("723.60"),
			Type:           domain.Expense,
			Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			CategoryID:     childID,
			UserID:         suite.userID,
		},
	}

	suite.mockTxnRepo.On("FindTransactionsByUser", ctx, suite.userID, domain.TransactionFilters{}).
		Return(txns, nil).Once()
	suite.mockCategoryRepo.On("FindCategoriesByUser", ctx, suite.userID, (*domain.TransactionType)(nil)).
		Return(categories, nil).Once()
	suite.mockAuditor.On("Record", ctx, mock.MatchedBy(func(input portssvc.AuditRecordInput) bool {
		return input.Action == domain.AuditExportTransactions &&
			input.Details["transactionCount"] == 1
	})).Return(nil).Once()

	rows, err := suite.service.ExportTransactions(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("2024-01-15", rows[0].Date)
	suite.Equal("云服务", rows[0].ParentCategory)
	suite.Equal("AWS", rows[0].ChildCategory)
	suite.Equal("100.5", rows[0].Amount)
	suite.Equal("723.6", rows[0].AmountCNY)
	suite.mockAuditor.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
