package repositories

import (
	"context"
)

// TxFunc is the unit of work executed inside a transaction. The locker it receives is
// bound to that transaction and must not be used after the function returns.
type TxFunc func(ctx context.Context, store BenefitLocker) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTransaction runs fn inside a single all-or-nothing transaction.
	// The transaction commits when fn returns nil and rolls back otherwise,
	// releasing every lock taken through the locker.
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
