package domain

import "time"

// AuditAction identifies the mutating operation an audit entry records.
type AuditAction string

const (
	AuditCreateTransaction  AuditAction = "CREATE_TRANSACTION"
	AuditDeleteTransaction  AuditAction = "DELETE_TRANSACTION"
	AuditImportTransactions AuditAction = "IMPORT_TRANSACTIONS"
	AuditExportTransactions AuditAction = "EXPORT_TRANSACTIONS"
)

// AuditLog is an append-only record of a mutating operation. Entries are never
// updated or deleted; for deletions the Details payload snapshots the full
// pre-delete state of the entity.
type AuditLog struct {
	AuditLogID string      `json:"auditLogID"` // Primary Key (UUID)
	Action     AuditAction `json:"action"`
	UserID     string      `json:"userID"` // Actor
	EntityType string      `json:"entityType,omitempty"`
	EntityID   string      `json:"entityID,omitempty"`
	Details    string      `json:"details,omitempty"` // JSON payload
	IPAddress  string      `json:"ipAddress,omitempty"`
	UserAgent  string      `json:"userAgent,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// AuditLogFilters narrows audit log listings.
type AuditLogFilters struct {
	Action    *AuditAction
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
