package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/core/domain"
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/benefits_service/internal/core/ports/services"
	"github.com/SscSPs/benefits_service/internal/dto"
)

// benefitService implements the BenefitSvcFacade interface. Its write paths do not take
// the exclusive transfer lock.
type benefitService struct {
	BaseService
	benefitRepo portsrepo.BenefitRepositoryFacade
}

// NewBenefitService creates a new benefit CRUD service.
func NewBenefitService(repo portsrepo.BenefitRepositoryFacade) portssvc.BenefitSvcFacade {
	return &benefitService{benefitRepo: repo}
}

// Ensure benefitService implements the BenefitSvcFacade interface
var _ portssvc.BenefitSvcFacade = (*benefitService)(nil)

func (s *benefitService) CreateBenefit(ctx context.Context, req dto.CreateBenefitRequest) (*domain.Benefit, error) {
	if req.ID != nil {
		err := fmt.Errorf("%w: a new benefit must not carry an ID", apperrors.ErrValidation)
		s.LogWarn(ctx, err, "Rejected benefit creation", slog.Int64("benefit_id", *req.ID))
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	benefit := domain.Benefit{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Balance:     req.Balance,
		IsActive:    isActive,
	}
	if err := benefit.Validate(); err != nil {
		s.LogWarn(ctx, err, "Invalid benefit")
		return nil, err
	}

	created, err := s.benefitRepo.CreateBenefit(ctx, benefit)
	if err != nil {
		s.LogError(ctx, err, "Failed to save benefit", slog.String("name", benefit.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Benefit created successfully", slog.Int64("benefit_id", created.ID))
	return created, nil
}

func (s *benefitService) GetBenefitByID(ctx context.Context, id int64) (*domain.Benefit, error) {
	benefit, err := s.benefitRepo.FindBenefitByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find benefit by ID", slog.Int64("benefit_id", id))
		}
		return nil, err // Propagate error (including NotFound)
	}
	return benefit, nil
}

func (s *benefitService) ListBenefits(ctx context.Context) ([]domain.Benefit, error) {
	benefits, err := s.benefitRepo.ListBenefits(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list benefits")
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	if benefits == nil {
		return []domain.Benefit{}, nil
	}
	return benefits, nil
}

func (s *benefitService) ListActiveBenefits(ctx context.Context) ([]domain.Benefit, error) {
	benefits, err := s.benefitRepo.ListActiveBenefits(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active benefits")
		return nil, fmt.Errorf("failed to list active benefits: %w", err)
	}
	if benefits == nil {
		return []domain.Benefit{}, nil
	}
	return benefits, nil
}

func (s *benefitService) SearchBenefitsByName(ctx context.Context, name string) ([]domain.Benefit, error) {
	benefits, err := s.benefitRepo.SearchBenefitsByName(ctx, name)
	if err != nil {
		s.LogError(ctx, err, "Failed to search benefits", slog.String("name", name))
		return nil, fmt.Errorf("failed to search benefits by name: %w", err)
	}
	if benefits == nil {
		return []domain.Benefit{}, nil
	}
	return benefits, nil
}

// UpdateBenefit overwrites name, description and balance; the active flag only when given.
// The read and write are not done under the exclusive lock, so an update racing a
// transfer on the same benefit may overwrite the transfer's balance change.
func (s *benefitService) UpdateBenefit(ctx context.Context, id int64, req dto.UpdateBenefitRequest) (*domain.Benefit, error) {
	benefit, err := s.GetBenefitByID(ctx, id)
	if err != nil {
		return nil, err
	}

	benefit.Name = strings.TrimSpace(req.Name)
	benefit.Description = req.Description
	benefit.Balance = req.Balance
	if req.IsActive != nil {
		benefit.IsActive = *req.IsActive
	}
	if err := benefit.Validate(); err != nil {
		s.LogWarn(ctx, err, "Invalid benefit update", slog.Int64("benefit_id", id))
		return nil, err
	}

	updated, err := s.benefitRepo.UpdateBenefit(ctx, *benefit)
	if err != nil {
		s.LogError(ctx, err, "Failed to update benefit", slog.Int64("benefit_id", id))
		return nil, err
	}

	s.LogInfo(ctx, "Benefit updated successfully", slog.Int64("benefit_id", id))
	return updated, nil
}

// DeactivateBenefit sets the benefit inactive. Deactivating an inactive benefit is a no-op success.
func (s *benefitService) DeactivateBenefit(ctx context.Context, id int64) error {
	benefit, err := s.GetBenefitByID(ctx, id)
	if err != nil {
		return err
	}
	if !benefit.IsActive {
		s.LogDebug(ctx, "Benefit already inactive", slog.Int64("benefit_id", id))
		return nil
	}

	benefit.IsActive = false
	if _, err := s.benefitRepo.UpdateBenefit(ctx, *benefit); err != nil {
		s.LogError(ctx, err, "Failed to deactivate benefit", slog.Int64("benefit_id", id))
		return err
	}

	s.LogInfo(ctx, "Benefit deactivated successfully", slog.Int64("benefit_id", id))
	return nil
}

func (s *benefitService) DeleteBenefit(ctx context.Context, id int64) error {
	if err := s.benefitRepo.DeleteBenefit(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete benefit", slog.Int64("benefit_id", id))
		}
		return err
	}

	s.LogInfo(ctx, "Benefit deleted successfully", slog.Int64("benefit_id", id))
	return nil
}
