package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
	"github.com/zhwei-dev/jizhang_backend/internal/handlers"
	"github.com/zhwei-dev/jizhang_backend/internal/platform/config"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID, userID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}
func (m *MockTransactionService) ImportTransactions(ctx context.Context, userID string, rows []dto.TransactionRow) (*dto.ImportResult, error) {
	args := m.Called(ctx, userID, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportResult), args.Error(1)
}
func (m *MockTransactionService) ExportTransactions(ctx context.Context, userID string) ([]dto.TransactionRow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TransactionRow), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID, userID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID, userID string) error {
	args := m.Called(ctx, categoryID, userID)
	return args.Error(0)
}
func (m *MockCategoryService) InitializeDefaultCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) ResolveRate(ctx context.Context, date time.Time, currency domain.Currency, manualRate string) (decimal.Decimal, error) {
	args := m.Called(ctx, date, currency, manualRate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockExchangeRateService) GetRate(ctx context.Context, query domain.RateQuery) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) GetRates(ctx context.Context, queries []domain.RateQuery) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) UpsertManualRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, userID string, year, month int) (domain.TransactionSummary, error) {
	args := m.Called(ctx, userID, year, month)
	return args.Get(0).(domain.TransactionSummary), args.Error(1)
}
func (m *MockReportingService) OverallSummary(ctx context.Context, userID string) (domain.TransactionSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.TransactionSummary), args.Error(1)
}
func (m *MockReportingService) CategoryBreakdown(ctx context.Context, userID string, start, end time.Time, txnType domain.TransactionType) ([]domain.CategorySummary, error) {
	args := m.Called(ctx, userID, start, end, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySummary), args.Error(1)
}
func (m *MockReportingService) AvailableMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearMonth), args.Error(1)
}
func (m *MockReportingService) MonthlyReport(ctx context.Context, userID string, year, month int) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, input portssvc.AuditRecordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
func (m *MockAuditService) ListAuditLogs(ctx context.Context, userID string, filters domain.AuditLogFilters) ([]domain.AuditLog, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
func (m *MockAuditService) ListAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockTransactionSvc *MockTransactionService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "jizhang-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransactionSvc = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	services := &portssvc.ServiceContainer{
		Transaction:  suite.mockTransactionSvc,
		Category:     new(MockCategoryService),
		ExchangeRate: new(MockExchangeRateService),
		Reporting:    new(MockReportingService),
		Audit:        new(MockAuditService),
	}

	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	categoryID := uuid.NewString()

	reqBody := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromFloat(100.50),
		Currency:       "USD",
		Type:           "EXPENSE",
		Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:    "AWS bill",
		CategoryID:     categoryID,
	}

	expected := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		OriginalAmount: decimal.NewFromFloat(100.50),
		Currency:       domain.USD,
		ExchangeRate:   decimal.NewFromFloat(7.20),
		AmountCNY:      decimal.NewFromFloat(723.60),
		Type:           domain.Expense,
		Date:           reqBody.Date,
		Description:    "AWS bill",
		CategoryID:     categoryID,
		UserID:         userID,
	}

	suite.mockTransactionSvc.On("CreateTransaction",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.CategoryID == categoryID && r.Currency == "USD"
		}),
		userID,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.True(resp.AmountCNY.Equal(decimal.NewFromFloat(723.60)))

	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_RateUnavailable() {
	userID := uuid.NewString()

	reqBody := dto.CreateTransactionRequest{
		OriginalAmount: decimal.NewFromInt(50),
		Currency:       "JPY",
		Type:           "EXPENSE",
		Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CategoryID:     uuid.NewString(),
	}

	suite.mockTransactionSvc.On("CreateTransaction", mock.Anything, mock.Anything, userID).
		Return(nil, apperrors.ErrRateUnavailable).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, reqBody)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTransactionSvc.On("GetTransaction", mock.Anything, transactionID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NoContent() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTransactionSvc.On("DeleteTransaction", mock.Anything, transactionID, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_MissingToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/transactions", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionSvc.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_PartialFailure() {
	userID := uuid.NewString()

	rows := []dto.TransactionRow{
		{Date: "2024-03-01", Type: "EXPENSE", ParentCategory: "云服务", ChildCategory: "AWS", Amount: "100.50", Currency: "USD"},
		{Date: "2024-03-02", Type: "EXPENSE", ParentCategory: "云服务", ChildCategory: "AWS", Amount: "20", Currency: "XXX"},
	}
	result := &dto.ImportResult{
		Success: 1,
		Failed:  1,
		Errors: []dto.ImportRowError{
			{Row: 3, Error: "unsupported currency: XXX", Data: rows[1]},
		},
	}

	suite.mockTransactionSvc.On("ImportTransactions", mock.Anything, userID, rows).
		Return(result, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/import", userID, dto.ImportTransactionsRequest{Rows: rows})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ImportResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Success)
	suite.Equal(1, resp.Failed)
	suite.Require().Len(resp.Errors, 1)
	suite.Equal(3, resp.Errors[0].Row)

	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
