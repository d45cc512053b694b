package mapping

import (
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	"github.com/zhwei-dev/jizhang_backend/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		Name:       d.Name,
		Type:       string(d.Type),
		Color:      d.Color,
		Icon:       d.Icon,
		ParentID:   d.ParentID,
		UserID:     d.UserID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Type:       domain.TransactionType(m.Type),
		Color:      m.Color,
		Icon:       m.Icon,
		ParentID:   m.ParentID,
		UserID:     m.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
