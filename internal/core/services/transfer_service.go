package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/core/domain"
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/benefits_service/internal/core/ports/services"
	"github.com/SscSPs/benefits_service/internal/dto"
	"github.com/shopspring/decimal"
)

// transferService moves value between two benefits. It keeps no shared state; every
// call runs in its own store transaction.
type transferService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewTransferService creates the transfer engine on top of a transactional store.
func NewTransferService(txManager portsrepo.TransactionManager) portssvc.TransferSvc {
	return &transferService{txManager: txManager}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

// validateTransferRequest performs the structural checks that need no store access.
// The order of the checks is part of the contract.
func validateTransferRequest(req dto.TransferRequest) (fromID, toID int64, amount decimal.Decimal, err error) {
	if req.FromID == nil {
		return 0, 0, decimal.Zero, fmt.Errorf("%w: source benefit ID must not be null", apperrors.ErrValidation)
	}
	if req.ToID == nil {
		return 0, 0, decimal.Zero, fmt.Errorf("%w: destination benefit ID must not be null", apperrors.ErrValidation)
	}
	if req.Amount == nil {
		return 0, 0, decimal.Zero, fmt.Errorf("%w: transfer amount must not be null", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return 0, 0, decimal.Zero, fmt.Errorf("%w: transfer amount must be greater than zero", apperrors.ErrValidation)
	}
	if *req.FromID == *req.ToID {
		return 0, 0, decimal.Zero, fmt.Errorf("%w: source and destination benefits must differ", apperrors.ErrValidation)
	}
	return *req.FromID, *req.ToID, *req.Amount, nil
}

// lockOrder returns the two IDs in the global lock acquisition order.
func lockOrder(a, b int64) (first, second int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// Transfer moves req.Amount from req.FromID to req.ToID. Both rows are locked in
// ascending ID order, so transfers over the same pair in opposite directions
// serialize instead of deadlocking. Any failure rolls the whole transfer back.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest) error {
	fromID, toID, amount, err := validateTransferRequest(req)
	if err != nil {
		s.LogWarn(ctx, err, "Transfer request rejected")
		return err
	}

	logAttrs := []any{
		slog.Int64("from_id", fromID),
		slog.Int64("to_id", toID),
		slog.String("amount", amount.String()),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, store portsrepo.BenefitLocker) error {
		firstID, secondID := lockOrder(fromID, toID)

		first, err := store.GetForExclusiveWrite(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := store.GetForExclusiveWrite(ctx, secondID)
		if err != nil {
			return err
		}

		from, to := first, second
		if from.ID != fromID {
			from, to = second, first
		}

		newFromBalance, err := checkTransferState(*from, *to, amount)
		if err != nil {
			return err
		}

		from.Balance = newFromBalance
		to.Balance = to.Deposit(amount)

		if err := store.Save(ctx, *from); err != nil {
			return err
		}
		return store.Save(ctx, *to)
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrInvalidState):
			s.LogWarn(ctx, err, "Transfer rejected", logAttrs...)
		default:
			s.LogError(ctx, err, "Transfer failed", logAttrs...)
		}
		return err
	}

	s.LogInfo(ctx, "Transfer completed", logAttrs...)
	return nil
}

// checkTransferState validates locked benefits and returns the new source balance.
func checkTransferState(from, to domain.Benefit, amount decimal.Decimal) (decimal.Decimal, error) {
	if !from.IsActive {
		return decimal.Zero, apperrors.ErrSourceInactive
	}
	if !to.IsActive {
		return decimal.Zero, apperrors.ErrDestinationInactive
	}
	return from.Withdraw(amount)
}
