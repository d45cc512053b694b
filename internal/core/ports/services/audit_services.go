package services

import (
	"context"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// AuditRecordInput describes one mutating operation to append to the trail.
// Details is marshaled to JSON before storage.
type AuditRecordInput struct {
	Action     domain.AuditAction
	UserID     string
	EntityType string
	EntityID   string
	Details    map[string]any
	IPAddress  string
	UserAgent  string
}

// AuditRecorderSvc appends to the audit trail.
type AuditRecorderSvc interface {
	// Record appends one immutable audit entry.
	Record(ctx context.Context, input AuditRecordInput) error
}

// AuditReaderSvc reads the audit trail.
type AuditReaderSvc interface {
	// ListAuditLogs retrieves the actor's audit entries, newest first.
	ListAuditLogs(ctx context.Context, userID string, filters domain.AuditLogFilters) ([]domain.AuditLog, error)

	// ListAuditLogsByEntity retrieves the entries recorded for one entity.
	ListAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error)
}

// AuditSvcFacade combines the audit service interfaces
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditReaderSvc
}
