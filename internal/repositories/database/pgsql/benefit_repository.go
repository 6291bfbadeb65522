package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/core/domain"
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	"github.com/SscSPs/benefits_service/internal/models"
	"github.com/SscSPs/benefits_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const benefitColumns = `id, name, description, balance, is_active, version, created_at, updated_at`

// PgxBenefitRepository stores benefits in PostgreSQL.
type PgxBenefitRepository struct {
	BaseRepository
}

// newPgxBenefitRepository creates a new repository for benefit data.
func newPgxBenefitRepository(pool *pgxpool.Pool, opts ...Option) *PgxBenefitRepository {
	r := &PgxBenefitRepository{BaseRepository: BaseRepository{Pool: pool}}
	for _, opt := range opts {
		opt(&r.BaseRepository)
	}
	return r
}

// Ensure PgxBenefitRepository implements portsrepo.BenefitRepositoryWithTx
var _ portsrepo.BenefitRepositoryWithTx = (*PgxBenefitRepository)(nil)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBenefit(row rowScanner) (domain.Benefit, error) {
	var m models.Benefit
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Balance,
		&m.IsActive,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.Benefit{}, err
	}
	return mapping.ToDomainBenefit(m), nil
}

func (r *PgxBenefitRepository) queryBenefits(ctx context.Context, query string, args ...any) ([]domain.Benefit, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query benefits: %w", err)
	}
	defer rows.Close()

	benefits := []domain.Benefit{}
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benefit row: %w", err)
		}
		benefits = append(benefits, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benefit rows: %w", err)
	}
	return benefits, nil
}

// FindBenefitByID retrieves a benefit by its ID.
func (r *PgxBenefitRepository) FindBenefitByID(ctx context.Context, id int64) (*domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE id = $1;`

	b, err := scanBenefit(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: benefit with ID %d not found", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find benefit by ID %d: %w", id, err)
	}
	return &b, nil
}

// ListBenefits retrieves all benefits.
func (r *PgxBenefitRepository) ListBenefits(ctx context.Context) ([]domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits ORDER BY id;`
	return r.queryBenefits(ctx, query)
}

// ListActiveBenefits retrieves active benefits only.
func (r *PgxBenefitRepository) ListActiveBenefits(ctx context.Context) ([]domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE is_active = TRUE ORDER BY id;`
	return r.queryBenefits(ctx, query)
}

// SearchBenefitsByName retrieves benefits whose name contains name, ignoring case.
func (r *PgxBenefitRepository) SearchBenefitsByName(ctx context.Context, name string) ([]domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id;`
	return r.queryBenefits(ctx, query, escapeLike(name))
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CreateBenefit inserts a new benefit; the database assigns ID, version and timestamps.
func (r *PgxBenefitRepository) CreateBenefit(ctx context.Context, benefit domain.Benefit) (*domain.Benefit, error) {
	m := mapping.ToModelBenefit(benefit)
	query := `
		INSERT INTO benefits (name, description, balance, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + benefitColumns + `;`

	created, err := scanBenefit(r.Pool.QueryRow(ctx, query, m.Name, m.Description, m.Balance, m.IsActive))
	if err != nil {
		return nil, wrapPgError(err, fmt.Sprintf("failed to create benefit %q", m.Name))
	}
	return &created, nil
}

// UpdateBenefit overwrites name, description, balance and active flag of an existing benefit.
func (r *PgxBenefitRepository) UpdateBenefit(ctx context.Context, benefit domain.Benefit) (*domain.Benefit, error) {
	m := mapping.ToModelBenefit(benefit)
	query := `
		UPDATE benefits
		SET name = $2, description = $3, balance = $4, is_active = $5, version = version + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + benefitColumns + `;`

	updated, err := scanBenefit(r.Pool.QueryRow(ctx, query, m.ID, m.Name, m.Description, m.Balance, m.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: benefit with ID %d not found", apperrors.ErrNotFound, m.ID)
		}
		return nil, wrapPgError(err, fmt.Sprintf("failed to update benefit %d", m.ID))
	}
	return &updated, nil
}

// DeleteBenefit permanently removes a benefit.
func (r *PgxBenefitRepository) DeleteBenefit(ctx context.Context, id int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM benefits WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete benefit %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: benefit with ID %d not found", apperrors.ErrNotFound, id)
	}
	return nil
}

// txBenefitStore is the BenefitLocker bound to one open transaction.
type txBenefitStore struct {
	tx pgx.Tx
}

var _ portsrepo.BenefitLocker = (*txBenefitStore)(nil)

// GetForExclusiveWrite selects the benefit row with FOR UPDATE. The row lock is held by
// the transaction until it commits or rolls back.
func (s *txBenefitStore) GetForExclusiveWrite(ctx context.Context, id int64) (*domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE id = $1 FOR UPDATE;`

	b, err := scanBenefit(s.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: benefit with ID %d not found", apperrors.ErrNotFound, id)
		}
		return nil, wrapPgError(err, fmt.Sprintf("failed to lock benefit %d", id))
	}
	return &b, nil
}

// Save writes the benefit inside the transaction; it becomes visible on commit.
func (s *txBenefitStore) Save(ctx context.Context, benefit domain.Benefit) error {
	m := mapping.ToModelBenefit(benefit)
	query := `
		UPDATE benefits
		SET name = $2, description = $3, balance = $4, is_active = $5, version = version + 1, updated_at = NOW()
		WHERE id = $1;`

	cmdTag, err := s.tx.Exec(ctx, query, m.ID, m.Name, m.Description, m.Balance, m.IsActive)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("failed to save benefit %d", m.ID))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: benefit with ID %d not found", apperrors.ErrNotFound, m.ID)
	}
	return nil
}
