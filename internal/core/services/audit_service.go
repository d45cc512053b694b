package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
)

// AuditService appends to and reads the audit trail. Entries are immutable;
// there is no update or delete path anywhere in the service.
type AuditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepositoryFacade
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record appends one audit entry. The Details map is serialized to JSON.
func (s *AuditService) Record(ctx context.Context, input portssvc.AuditRecordInput) error {
	var details string
	if len(input.Details) > 0 {
		raw, err := json.Marshal(input.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
		details = string(raw)
	}

	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Action:     input.Action,
		UserID:     input.UserID,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Details:    details,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		CreatedAt:  time.Now(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

// ListAuditLogs retrieves the actor's audit entries, newest first.
func (s *AuditService) ListAuditLogs(ctx context.Context, userID string, filters domain.AuditLogFilters) ([]domain.AuditLog, error) {
	entries, err := s.auditRepo.FindAuditLogsByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if entries == nil {
		return []domain.AuditLog{}, nil
	}
	return entries, nil
}

// ListAuditLogsByEntity retrieves the entries recorded for one entity.
func (s *AuditService) ListAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error) {
	entries, err := s.auditRepo.FindAuditLogsByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs by entity: %w", err)
	}
	if entries == nil {
		return []domain.AuditLog{}, nil
	}
	return entries, nil
}
