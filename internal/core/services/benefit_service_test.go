package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/core/domain"
	portssvc "github.com/SscSPs/benefits_service/internal/core/ports/services"
	"github.com/SscSPs/benefits_service/internal/core/services"
	"github.com/SscSPs/benefits_service/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockBenefitRepository is a mock type for the BenefitRepositoryFacade interface
type MockBenefitRepository struct {
	mock.Mock
}

// --- Implement mock methods for BenefitRepositoryFacade ---

func (m *MockBenefitRepository) FindBenefitByID(ctx context.Context, id int64) (*domain.Benefit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Benefit), args.Error(1)
}

func (m *MockBenefitRepository) ListBenefits(ctx context.Context) ([]domain.Benefit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Benefit), args.Error(1)
}

func (m *MockBenefitRepository) ListActiveBenefits(ctx context.Context) ([]domain.Benefit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Benefit), args.Error(1)
}

func (m *MockBenefitRepository) SearchBenefitsByName(ctx context.Context, name string) ([]domain.Benefit, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Benefit), args.Error(1)
}

func (m *MockBenefitRepository) CreateBenefit(ctx context.Context, benefit domain.Benefit) (*domain.Benefit, error) {
	args := m.Called(ctx, benefit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Benefit), args.Error(1)
}

func (m *MockBenefitRepository) UpdateBenefit(ctx context.Context, benefit domain.Benefit) (*domain.Benefit, error) {
	args := m.Called(ctx, benefit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Benefit), args.Error(1)
}

func (m *MockBenefitRepository) DeleteBenefit(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BenefitServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBenefitRepository
	service  portssvc.BenefitSvcFacade
}

func (suite *BenefitServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBenefitRepository)
	suite.service = services.NewBenefitService(suite.mockRepo)
}

func boolPtr(v bool) *bool {
	return &v
}

// --- Test Cases ---

func (suite *BenefitServiceTestSuite) TestCreateBenefit_Success() {
	ctx := context.Background()
	req := dto.CreateBenefitRequest{
		Name:        "  Meal Voucher ",
		Description: "Daily meal allowance",
		Balance:     decimal.RequireFromString("1000.00"),
	}

	suite.mockRepo.On("CreateBenefit", ctx, mock.MatchedBy(func(b domain.Benefit) bool {
		return b.ID == 0 && b.Name == "Meal Voucher" && b.IsActive && b.Balance.Equal(req.Balance)
	})).Return(&domain.Benefit{ID: 1, Name: "Meal Voucher", Balance: req.Balance, IsActive: true}, nil).Once()

	created, err := suite.service.CreateBenefit(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(1), created.ID)
	suite.True(created.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BenefitServiceTestSuite) TestCreateBenefit_ExplicitlyInactive() {
	ctx := context.Background()
	req := dto.CreateBenefitRequest{Name: "Gym", Balance: decimal.Zero, IsActive: boolPtr(false)}

	suite.mockRepo.On("CreateBenefit", ctx, mock.MatchedBy(func(b domain.Benefit) bool {
		return !b.IsActive
	})).Return(&domain.Benefit{ID: 2, Name: "Gym", IsActive: false}, nil).Once()

	created, err := suite.service.CreateBenefit(ctx, req)

	suite.Require().NoError(err)
	suite.False(created.IsActive)
}

func (suite *BenefitServiceTestSuite) TestCreateBenefit_MultibyteNameWithinLimit() {
	ctx := context.Background()
	name := strings.Repeat("ç", 60)
	req := dto.CreateBenefitRequest{Name: name, Description: "Descrição A", Balance: decimal.Zero}

	suite.mockRepo.On("CreateBenefit", ctx, mock.MatchedBy(func(b domain.Benefit) bool {
		return b.Name == name
	})).Return(&domain.Benefit{ID: 3, Name: name, IsActive: true}, nil).Once()

	created, err := suite.service.CreateBenefit(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(name, created.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BenefitServiceTestSuite) TestCreateBenefit_RejectsID() {
	id := int64(7)
	req := dto.CreateBenefitRequest{ID: &id, Name: "Meal", Balance: decimal.Zero}

	_, err := suite.service.CreateBenefit(context.Background(), req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateBenefit", mock.Anything, mock.Anything)
}

func (suite *BenefitServiceTestSuite) TestCreateBenefit_InvalidBenefit() {
	cases := map[string]dto.CreateBenefitRequest{
		"blank name":       {Name: "   ", Balance: decimal.Zero},
		"negative balance": {Name: "Meal", Balance: decimal.RequireFromString("-0.01")},
	}
	for name, req := range cases {
		_, err := suite.service.CreateBenefit(context.Background(), req)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateBenefit", mock.Anything, mock.Anything)
}

func (suite *BenefitServiceTestSuite) TestGetBenefitByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindBenefitByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	benefit, err := suite.service.GetBenefitByID(ctx, 99)

	suite.Nil(benefit)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BenefitServiceTestSuite) TestListBenefits_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListBenefits", ctx).Return([]domain.Benefit(nil), nil).Once()
	suite.mockRepo.On("ListActiveBenefits", ctx).Return([]domain.Benefit(nil), nil).Once()
	suite.mockRepo.On("SearchBenefitsByName", ctx, "meal").Return([]domain.Benefit(nil), nil).Once()

	all, err := suite.service.ListBenefits(ctx)
	suite.Require().NoError(err)
	suite.NotNil(all)
	suite.Empty(all)

	active, err := suite.service.ListActiveBenefits(ctx)
	suite.Require().NoError(err)
	suite.NotNil(active)

	found, err := suite.service.SearchBenefitsByName(ctx, "meal")
	suite.Require().NoError(err)
	suite.NotNil(found)
}

func (suite *BenefitServiceTestSuite) TestListBenefits_RepositoryError() {
	ctx := context.Background()
	suite.mockRepo.On("ListBenefits", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListBenefits(ctx)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *BenefitServiceTestSuite) TestUpdateBenefit_KeepsActiveFlagWhenOmitted() {
	ctx := context.Background()
	existing := &domain.Benefit{ID: 3, Name: "Old", Balance: decimal.NewFromInt(10), IsActive: false}
	req := dto.UpdateBenefitRequest{Name: "New", Description: "desc", Balance: decimal.NewFromInt(20)}

	suite.mockRepo.On("FindBenefitByID", ctx, int64(3)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBenefit", ctx, mock.MatchedBy(func(b domain.Benefit) bool {
		return b.ID == 3 && b.Name == "New" && !b.IsActive && b.Balance.Equal(decimal.NewFromInt(20))
	})).Return(&domain.Benefit{ID: 3, Name: "New", Balance: decimal.NewFromInt(20)}, nil).Once()

	updated, err := suite.service.UpdateBenefit(ctx, 3, req)

	suite.Require().NoError(err)
	suite.Equal("New", updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BenefitServiceTestSuite) TestUpdateBenefit_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindBenefitByID", ctx, int64(4)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateBenefit(ctx, 4, dto.UpdateBenefitRequest{Name: "X"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBenefit", mock.Anything, mock.Anything)
}

func (suite *BenefitServiceTestSuite) TestDeactivateBenefit() {
	ctx := context.Background()
	suite.mockRepo.On("FindBenefitByID", ctx, int64(5)).Return(&domain.Benefit{ID: 5, Name: "A", IsActive: true}, nil).Once()
	suite.mockRepo.On("UpdateBenefit", ctx, mock.MatchedBy(func(b domain.Benefit) bool {
		return b.ID == 5 && !b.IsActive
	})).Return(&domain.Benefit{ID: 5, Name: "A"}, nil).Once()

	suite.NoError(suite.service.DeactivateBenefit(ctx, 5))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BenefitServiceTestSuite) TestDeactivateBenefit_AlreadyInactiveIsNoop() {
	ctx := context.Background()
	suite.mockRepo.On("FindBenefitByID", ctx, int64(6)).Return(&domain.Benefit{ID: 6, Name: "B"}, nil).Once()

	suite.NoError(suite.service.DeactivateBenefit(ctx, 6))
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBenefit", mock.Anything, mock.Anything)
}

func (suite *BenefitServiceTestSuite) TestDeleteBenefit() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteBenefit", ctx, int64(8)).Return(nil).Once()
	suite.mockRepo.On("DeleteBenefit", ctx, int64(9)).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteBenefit(ctx, 8))
	suite.ErrorIs(suite.service.DeleteBenefit(ctx, 9), apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestBenefitService(t *testing.T) {
	suite.Run(t, new(BenefitServiceTestSuite))
}
