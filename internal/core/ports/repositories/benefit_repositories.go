package repositories

import (
	"context"

	"github.com/SscSPs/benefits_service/internal/core/domain"
)

// BenefitReader defines read operations for benefit data
type BenefitReader interface {
	// FindBenefitByID retrieves a specific benefit by its identifier.
	FindBenefitByID(ctx context.Context, id int64) (*domain.Benefit, error)

	// ListBenefits retrieves all benefits ordered by identifier.
	ListBenefits(ctx context.Context) ([]domain.Benefit, error)

	// ListActiveBenefits retrieves only active benefits ordered by identifier.
	ListActiveBenefits(ctx context.Context) ([]domain.Benefit, error)

	// SearchBenefitsByName retrieves benefits whose name contains the given text, ignoring case.
	SearchBenefitsByName(ctx context.Context, name string) ([]domain.Benefit, error)
}

// BenefitWriter defines write operations for benefit data
type BenefitWriter interface {
	// CreateBenefit persists a new benefit and returns it with its assigned ID.
	CreateBenefit(ctx context.Context, benefit domain.Benefit) (*domain.Benefit, error)

	// UpdateBenefit overwrites an existing benefit.
	UpdateBenefit(ctx context.Context, benefit domain.Benefit) (*domain.Benefit, error)

	// DeleteBenefit permanently removes a benefit.
	DeleteBenefit(ctx context.Context, id int64) error
}

// BenefitLocker is the store contract used while a transaction is open.
type BenefitLocker interface {
	// GetForExclusiveWrite loads a benefit and takes an exclusive lock on it that is
	// held until the enclosing transaction commits or rolls back. A second caller asking
	// for the same ID blocks until then. Returns apperrors.ErrNotFound when absent.
	GetForExclusiveWrite(ctx context.Context, id int64) (*domain.Benefit, error)

	// Save marks the benefit for persistence when the enclosing transaction commits.
	Save(ctx context.Context, benefit domain.Benefit) error
}

// BenefitRepositoryFacade combines all benefit-related repository interfaces
// This is a facade for clients that need access to all operations
type BenefitRepositoryFacade interface {
	BenefitReader
	BenefitWriter
}

// BenefitRepositoryWithTx extends BenefitRepositoryFacade with transaction capabilities
type BenefitRepositoryWithTx interface {
	BenefitRepositoryFacade
	TransactionManager
}
