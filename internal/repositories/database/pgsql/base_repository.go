package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes handled explicitly.
const (
	pgCodeUniqueViolation  = "23505"
	pgCodeCheckViolation   = "23514"
	pgCodeLockNotAvailable = "55P03"
	pgCodeSerialization    = "40001"
	pgCodeDeadlock         = "40P01"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
	// LockTimeout bounds how long a transaction waits for a row lock. Zero means no limit.
	LockTimeout time.Duration
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	if r.LockTimeout > 0 {
		// SET does not accept bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			_ = tx.Rollback(ctx)
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to set lock timeout", err)
		}
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTransaction runs fn inside one database transaction. Row locks taken through the
// locker handed to fn are held until the commit or rollback performed here.
func (r *BaseRepository) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			// Rollback must not reuse a possibly cancelled ctx.
			_ = r.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
	}()

	if err = fn(ctx, &txBenefitStore{tx: tx}); err != nil {
		if rbErr := r.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback transaction", slog.String("error", rbErr.Error()), slog.String("cause", err.Error()))
		}
		return err
	}

	return r.Commit(ctx, tx)
}

// wrapPgError adds context to a database error, mapping well known postgres
// codes onto the application error taxonomy.
func wrapPgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, msg)
		case pgCodeCheckViolation:
			return fmt.Errorf("%w: %s (constraint %s)", apperrors.ErrValidation, msg, pgErr.ConstraintName)
		case pgCodeSerialization, pgCodeDeadlock:
			// Rolled back by the server; the caller may retry the whole operation.
			return fmt.Errorf("%w: %s: %s", apperrors.ErrConflict, msg, pgErr.Message)
		case pgCodeLockNotAvailable:
			return fmt.Errorf("%s: lock wait timed out: %w", msg, err)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
