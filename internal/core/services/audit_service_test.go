package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/core/services"
)

// --- Mock AuditLogRepository ---
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindAuditLogsByUser(ctx context.Context, userID string, filters domain.AuditLogFilters) ([]domain.AuditLog, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) FindAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// --- Test Suite ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditLogRepository
	service       portssvc.AuditSvcFacade
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditLogRepository)
	suite.service = services.NewAuditService(suite.mockAuditRepo)
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestRecord_MarshalsDetails() {
	ctx := context.Background()
	userID := uuid.NewString()
	entityID := uuid.NewString()

	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(entry domain.AuditLog) bool {
		if entry.Action != domain.AuditCreateTransaction || entry.UserID != userID || entry.EntityID != entityID {
			return false
		}
		if entry.AuditLogID == "" || entry.CreatedAt.IsZero() {
			return false
		}
		var details map[string]any
		if err := json.Unmarshal([]byte(entry.Details), &details); err != nil {
			return false
		}
		return details["currency"] == "USD"
	})).Return(nil).Once()

	err := suite.service.Record(ctx, portssvc.AuditRecordInput{
		Action:     domain.AuditCreateTransaction,
		UserID:     userID,
		EntityType: "transaction",
		EntityID:   entityID,
		Details:    map[string]any{"currency": "USD"},
	})

	suite.Require().NoError(err)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecord_EmptyDetails() {
	ctx := context.Background()

	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(entry domain.AuditLog) bool {
		return entry.Details == ""
	})).Return(nil).Once()

	err := suite.service.Record(ctx, portssvc.AuditRecordInput{
		Action: domain.AuditExportTransactions,
		UserID: uuid.NewString(),
	})

	suite.Require().NoError(err)
}

func (suite *AuditServiceTestSuite) TestListAuditLogs_EmptyResultIsNotNil() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockAuditRepo.On("FindAuditLogsByUser", ctx, userID, domain.AuditLogFilters{}).
		Return(nil, nil).Once()

	entries, err := suite.service.ListAuditLogs(ctx, userID, domain.AuditLogFilters{})

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
