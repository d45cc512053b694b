package models

import "time"

// AuditLog is the database row shape for an audit trail entry.
// Rows are insert-only.
type AuditLog struct {
	AuditLogID string
	Action     string
	UserID     string
	EntityType string
	EntityID   string
	Details    string
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}
