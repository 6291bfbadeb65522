package services

import (
	"context"

	"github.com/SscSPs/benefits_service/internal/core/domain"
	"github.com/SscSPs/benefits_service/internal/dto"
)

// BenefitReaderSvc defines read operations for benefit data
type BenefitReaderSvc interface {
	// GetBenefitByID retrieves a specific benefit by its identifier.
	GetBenefitByID(ctx context.Context, id int64) (*domain.Benefit, error)

	// ListBenefits retrieves every benefit.
	ListBenefits(ctx context.Context) ([]domain.Benefit, error)

	// ListActiveBenefits retrieves only the active benefits.
	ListActiveBenefits(ctx context.Context) ([]domain.Benefit, error)

	// SearchBenefitsByName retrieves benefits by case-insensitive name fragment.
	SearchBenefitsByName(ctx context.Context, name string) ([]domain.Benefit, error)
}

// BenefitWriterSvc defines write operations for benefit data
type BenefitWriterSvc interface {
	// CreateBenefit persists a new benefit.
	CreateBenefit(ctx context.Context, req dto.CreateBenefitRequest) (*domain.Benefit, error)

	// UpdateBenefit overwrites an existing benefit's details.
	UpdateBenefit(ctx context.Context, id int64, req dto.UpdateBenefitRequest) (*domain.Benefit, error)

	// DeactivateBenefit marks a benefit as inactive.
	DeactivateBenefit(ctx context.Context, id int64) error

	// DeleteBenefit permanently removes a benefit.
	DeleteBenefit(ctx context.Context, id int64) error
}

// BenefitSvcFacade combines all benefit-related service interfaces
type BenefitSvcFacade interface {
	BenefitReaderSvc
	BenefitWriterSvc
}

// TransferSvc moves value between two benefits.
type TransferSvc interface {
	// Transfer moves req.Amount from req.FromID to req.ToID atomically.
	Transfer(ctx context.Context, req dto.TransferRequest) error
}
