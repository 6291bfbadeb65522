package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Option configures the postgres repositories.
type Option func(*BaseRepository)

// WithLockTimeout bounds how long a transaction waits for a row lock.
func WithLockTimeout(d time.Duration) Option {
	return func(r *BaseRepository) {
		r.LockTimeout = d
	}
}

func NewRepositoryProvider(dbPool *pgxpool.Pool, opts ...Option) portsrepo.RepositoryProvider {
	benefitRepo := newPgxBenefitRepository(dbPool, opts...)

	return portsrepo.RepositoryProvider{
		BenefitRepo: benefitRepo,
		TxManager:   benefitRepo,
	}
}
