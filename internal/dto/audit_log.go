package dto

import (
	"time"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// AuditLogResponse defines the API shape of an audit trail entry.
type AuditLogResponse struct {
	AuditLogID string    `json:"auditLogID"`
	Action     string    `json:"action"`
	UserID     string    `json:"userID"`
	EntityType string    `json:"entityType,omitempty"`
	EntityID   string    `json:"entityID,omitempty"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToAuditLogResponse converts a domain.AuditLog to its API shape.
func ToAuditLogResponse(entry *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID: entry.AuditLogID,
		Action:     string(entry.Action),
		UserID:     entry.UserID,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
		CreatedAt:  entry.CreatedAt,
	}
}

// ToListAuditLogResponse converts a slice of audit entries.
func ToListAuditLogResponse(entries []domain.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(entries))
	for i := range entries {
		responses[i] = ToAuditLogResponse(&entries[i])
	}
	return responses
}
