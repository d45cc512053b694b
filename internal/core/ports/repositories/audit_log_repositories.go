package repositories

import (
	"context"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// AuditLogWriter defines the append operation for the audit trail.
// There is deliberately no update or delete.
type AuditLogWriter interface {
	// SaveAuditLog appends a new audit entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditLogReader defines read operations for the audit trail
type AuditLogReader interface {
	// FindAuditLogsByUser retrieves an actor's audit entries, newest first.
	FindAuditLogsByUser(ctx context.Context, userID string, filters domain.AuditLogFilters) ([]domain.AuditLog, error)

	// FindAuditLogsByEntity retrieves the entries recorded for one entity.
	FindAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error)
}

// AuditLogRepositoryFacade combines all audit log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
