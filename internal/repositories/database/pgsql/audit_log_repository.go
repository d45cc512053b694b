package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	"github.com/zhwei-dev/jizhang_backend/internal/models"
	"github.com/zhwei-dev/jizhang_backend/internal/utils/mapping"
)

const auditLogColumns = `audit_log_id, action, user_id, entity_type, entity_id, details, ip_address, user_agent, created_at`

// PgxAuditLogRepository persists the append-only audit trail. There is no
// update or delete statement in this file on purpose.
type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit trail entries.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

func scanAuditLog(row pgx.Row) (models.AuditLog, error) {
	var entry models.AuditLog
	err := row.Scan(
		&entry.AuditLogID,
		&entry.Action,
		&entry.UserID,
		&entry.EntityType,
		&entry.EntityID,
		&entry.Details,
		&entry.IPAddress,
		&entry.UserAgent,
		&entry.CreatedAt,
	)
	return entry, err
}

// SaveAuditLog appends a new audit entry.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	modelEntry := mapping.ToModelAuditLog(entry)

	query := `
		INSERT INTO audit_logs (` + auditLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelEntry.AuditLogID,
		modelEntry.Action,
		modelEntry.UserID,
		modelEntry.EntityType,
		modelEntry.EntityID,
		modelEntry.Details,
		modelEntry.IPAddress,
		modelEntry.UserAgent,
		modelEntry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log %s: %w", modelEntry.AuditLogID, err)
	}
	return nil
}

// FindAuditLogsByUser retrieves an actor's audit entries, newest first.
func (r *PgxAuditLogRepository) FindAuditLogsByUser(ctx context.Context, userID string, filters domain.AuditLogFilters) ([]domain.AuditLog, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + auditLogColumns + ` FROM audit_logs WHERE user_id = $1`)
	args := []any{userID}

	if filters.Action != nil {
		args = append(args, string(*filters.Action))
		fmt.Fprintf(&sb, " AND action = $%d", len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		fmt.Fprintf(&sb, " AND created_at >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		fmt.Fprintf(&sb, " AND created_at <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

// FindAuditLogsByEntity retrieves the entries recorded for one entity.
func (r *PgxAuditLogRepository) FindAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error) {
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs by entity: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func collectAuditLogs(rows pgx.Rows) ([]domain.AuditLog, error) {
	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		return scanAuditLog(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit logs: %w", err)
	}

	domainEntries := make([]domain.AuditLog, len(modelEntries))
	for i, m := range modelEntries {
		domainEntries[i] = mapping.ToDomainAuditLog(m)
	}
	return domainEntries, nil
}
