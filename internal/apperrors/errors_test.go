package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInactiveErrorsAreInvalidState(t *testing.T) {
	assert.ErrorIs(t, ErrSourceInactive, ErrInvalidState)
	assert.ErrorIs(t, ErrDestinationInactive, ErrInvalidState)
	assert.NotErrorIs(t, ErrSourceInactive, ErrDestinationInactive)
}

func TestInsufficientBalanceError(t *testing.T) {
	var err error = &InsufficientBalanceError{
		Balance: decimal.RequireFromString("1000.00"),
		Amount:  decimal.RequireFromString("1500.00"),
	}
	wrapped := fmt.Errorf("transfer 1 -> 2: %w", err)

	assert.ErrorIs(t, wrapped, ErrInvalidState)
	assert.Equal(t, "invalid state: insufficient balance, current balance: 1000, transfer amount: 1500", err.Error())

	var target *InsufficientBalanceError
	assert.True(t, errors.As(wrapped, &target))
	assert.True(t, target.Amount.Equal(decimal.NewFromInt(1500)))
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAppError(500, "failed to begin transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to begin transaction: connection refused", err.Error())
	assert.Equal(t, "bare", NewAppError(500, "bare", nil).Error())
}
