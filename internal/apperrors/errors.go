package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrInvalidState indicates that the resource is in a state that does not allow the operation.
var ErrInvalidState = errors.New("invalid state")

// ErrSourceInactive is returned when the source benefit of a transfer is not active.
var ErrSourceInactive = fmt.Errorf("%w: source benefit is inactive", ErrInvalidState)

// ErrDestinationInactive is returned when the destination benefit of a transfer is not active.
var ErrDestinationInactive = fmt.Errorf("%w: destination benefit is inactive", ErrInvalidState)

// InsufficientBalanceError reports a transfer that would leave the source balance negative.
type InsufficientBalanceError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: insufficient balance, current balance: %s, transfer amount: %s",
		ErrInvalidState, e.Balance.String(), e.Amount.String())
}

// Unwrap makes errors.Is(err, ErrInvalidState) hold.
func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInvalidState
}

// AppError carries an infrastructure failure together with a suggested status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
