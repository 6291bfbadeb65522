package dto

import (
	"time"

	"github.com/SscSPs/benefits_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBenefitRequest defines the data needed to create a new benefit.
// ID must be absent: identifiers are assigned by the store.
type CreateBenefitRequest struct {
	ID          *int64          `json:"id,omitempty"`
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=255"`
	Balance     decimal.Decimal `json:"balance" binding:"decimal_gte0"`
	IsActive    *bool           `json:"isActive"` // Optional, defaults to true
}

// UpdateBenefitRequest overwrites a benefit's details.
// IsActive is kept unchanged when omitted.
type UpdateBenefitRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=255"`
	Balance     decimal.Decimal `json:"balance" binding:"decimal_gte0"`
	IsActive    *bool           `json:"isActive"`
}

// TransferRequest moves Amount from FromID to ToID.
// Fields are pointers so that missing values can be told apart from zero values;
// null fields reach the service, which reports them in a fixed order.
type TransferRequest struct {
	FromID *int64           `json:"fromId"`
	ToID   *int64           `json:"toId"`
	Amount *decimal.Decimal `json:"amount" binding:"omitempty,decimal_gt0"`
}

// SearchBenefitsParams defines query parameters for searching benefits by name.
type SearchBenefitsParams struct {
	Name string `form:"name" binding:"required"`
}

// BenefitResponse defines the data returned for a benefit.
type BenefitResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToBenefitResponse converts a domain.Benefit to BenefitResponse DTO
func ToBenefitResponse(b *domain.Benefit) BenefitResponse {
	return BenefitResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Balance:     b.Balance,
		IsActive:    b.IsActive,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToListBenefitResponse converts a slice of domain.Benefit to a slice of BenefitResponse DTOs
func ToListBenefitResponse(benefits []domain.Benefit) []BenefitResponse {
	res := make([]BenefitResponse, len(benefits))
	for i := range benefits {
		res[i] = ToBenefitResponse(&benefits[i])
	}
	return res
}
