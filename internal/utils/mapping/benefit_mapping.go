package mapping

import (
	"database/sql"

	"github.com/SscSPs/benefits_service/internal/core/domain"
	"github.com/SscSPs/benefits_service/internal/models"
)

// ToModelBenefit converts a domain Benefit to a model Benefit.
// An empty description is stored as NULL.
func ToModelBenefit(d domain.Benefit) models.Benefit {
	return models.Benefit{
		ID:          d.ID,
		Name:        d.Name,
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBenefit converts a model Benefit to a domain Benefit
func ToDomainBenefit(m models.Benefit) domain.Benefit {
	return domain.Benefit{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
