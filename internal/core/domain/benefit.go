package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Length limits count characters, matching the VARCHAR columns.
const (
	// MaxNameLength is the longest name a benefit may carry.
	MaxNameLength = 100
	// MaxDescriptionLength is the longest description a benefit may carry.
	MaxDescriptionLength = 255
)

// Benefit is a named account holding a non-negative monetary balance.
// ID is assigned by the store on creation and never changes afterwards.
type Benefit struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	Version     int64           `json:"version"` // Incremented by the store on every save
	AuditFields
}

// Validate checks the invariants every persisted benefit must satisfy.
func (b Benefit) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(b.Name) > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", apperrors.ErrValidation, MaxNameLength)
	}
	if utf8.RuneCountInString(b.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", apperrors.ErrValidation, MaxDescriptionLength)
	}
	if b.Balance.IsNegative() {
		return fmt.Errorf("%w: balance must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// Withdraw returns the balance left after taking amount out of the benefit.
// The benefit itself is not modified.
func (b Benefit) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	remaining := b.Balance.Sub(amount)
	if remaining.IsNegative() {
		return b.Balance, &apperrors.InsufficientBalanceError{Balance: b.Balance, Amount: amount}
	}
	return remaining, nil
}

// Deposit returns the balance after adding amount to the benefit.
func (b Benefit) Deposit(amount decimal.Decimal) decimal.Decimal {
	return b.Balance.Add(amount)
}
