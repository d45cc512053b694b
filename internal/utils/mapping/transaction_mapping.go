package mapping

import (
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	"github.com/zhwei-dev/jizhang_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		OriginalAmount: d.OriginalAmount,
		Currency:       string(d.Currency),
		ExchangeRate:   d.ExchangeRate,
		AmountCNY:      d.AmountCNY,
		Type:           string(d.Type),
		Date:           d.Date,
		Description:    d.Description,
		Notes:          d.Notes,
		CategoryID:     d.CategoryID,
		UserID:         d.UserID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		OriginalAmount: m.OriginalAmount,
		Currency:       domain.Currency(m.Currency),
		ExchangeRate:   m.ExchangeRate,
		AmountCNY:      m.AmountCNY,
		Type:           domain.TransactionType(m.Type),
		Date:           m.Date,
		Description:    m.Description,
		Notes:          m.Notes,
		CategoryID:     m.CategoryID,
		UserID:         m.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
