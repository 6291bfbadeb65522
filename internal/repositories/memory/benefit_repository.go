// Package memory provides an in-process benefit store. Exclusive write locks are
// per-ID and held until the enclosing transaction ends, matching the row lock
// semantics of the postgres store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/core/domain"
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
)

var errTxDone = errors.New("transaction has already been committed or rolled back")

// BenefitRepository keeps benefits in a map guarded by mu. Exclusive locks live in
// locks, one entry per benefit ID that is currently held or waited on.
type BenefitRepository struct {
	mu      sync.RWMutex
	records map[int64]domain.Benefit
	nextID  int64

	locksMu sync.Mutex
	locks   map[int64]*idLock

	now func() time.Time
}

// Option configures a BenefitRepository.
type Option func(*BenefitRepository)

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *BenefitRepository) {
		r.now = now
	}
}

// NewBenefitRepository creates an empty in-memory benefit store.
func NewBenefitRepository(opts ...Option) *BenefitRepository {
	r := &BenefitRepository{
		records: make(map[int64]domain.Benefit),
		locks:   make(map[int64]*idLock),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ portsrepo.BenefitRepositoryWithTx = (*BenefitRepository)(nil)

// NewRepositoryProvider wires a fresh in-memory store into a RepositoryProvider.
func NewRepositoryProvider(opts ...Option) portsrepo.RepositoryProvider {
	repo := NewBenefitRepository(opts...)
	return portsrepo.RepositoryProvider{
		BenefitRepo: repo,
		TxManager:   repo,
	}
}

func notFound(id int64) error {
	return fmt.Errorf("%w: benefit with ID %d not found", apperrors.ErrNotFound, id)
}

// FindBenefitByID retrieves a benefit by its ID.
func (r *BenefitRepository) FindBenefitByID(_ context.Context, id int64) (*domain.Benefit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return &b, nil
}

func (r *BenefitRepository) filter(keep func(domain.Benefit) bool) []domain.Benefit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	benefits := []domain.Benefit{}
	for _, b := range r.records {
		if keep(b) {
			benefits = append(benefits, b)
		}
	}
	sort.Slice(benefits, func(i, j int) bool { return benefits[i].ID < benefits[j].ID })
	return benefits
}

// ListBenefits retrieves all benefits ordered by ID.
func (r *BenefitRepository) ListBenefits(_ context.Context) ([]domain.Benefit, error) {
	return r.filter(func(domain.Benefit) bool { return true }), nil
}

// ListActiveBenefits retrieves active benefits ordered by ID.
func (r *BenefitRepository) ListActiveBenefits(_ context.Context) ([]domain.Benefit, error) {
	return r.filter(func(b domain.Benefit) bool { return b.IsActive }), nil
}

// SearchBenefitsByName retrieves benefits whose name contains name, ignoring case.
func (r *BenefitRepository) SearchBenefitsByName(_ context.Context, name string) ([]domain.Benefit, error) {
	needle := strings.ToLower(name)
	return r.filter(func(b domain.Benefit) bool {
		return strings.Contains(strings.ToLower(b.Name), needle)
	}), nil
}

// CreateBenefit stores a new benefit under the next free ID.
func (r *BenefitRepository) CreateBenefit(_ context.Context, benefit domain.Benefit) (*domain.Benefit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	benefit.ID = r.nextID
	benefit.Version = 0
	benefit.CreatedAt = now
	benefit.UpdatedAt = now
	r.records[benefit.ID] = benefit
	return &benefit, nil
}

// UpdateBenefit overwrites an existing benefit. Creation time is preserved.
func (r *BenefitRepository) UpdateBenefit(_ context.Context, benefit domain.Benefit) (*domain.Benefit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[benefit.ID]
	if !ok {
		return nil, notFound(benefit.ID)
	}
	benefit.Version = current.Version + 1
	benefit.CreatedAt = current.CreatedAt
	benefit.UpdatedAt = r.now()
	r.records[benefit.ID] = benefit
	return &benefit, nil
}

// DeleteBenefit permanently removes a benefit.
func (r *BenefitRepository) DeleteBenefit(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return notFound(id)
	}
	delete(r.records, id)
	return nil
}

// idLock is a single-slot channel plus the number of holders and waiters using it.
type idLock struct {
	ch   chan struct{}
	refs int
}

// ref returns the lock for id, creating it on first use, and counts the caller as a user.
func (r *BenefitRepository) ref(id int64) *idLock {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.locks[id]
	if !ok {
		l = &idLock{ch: make(chan struct{}, 1)}
		r.locks[id] = l
	}
	l.refs++
	return l
}

// unref drops one user of the lock for id and forgets the lock once nobody uses it.
func (r *BenefitRepository) unref(id int64) {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.locks[id]
	if !ok {
		return
	}
	l.refs--
	if l.refs == 0 {
		delete(r.locks, id)
	}
}

// acquire blocks until the exclusive lock for id is free or ctx is done.
func (r *BenefitRepository) acquire(ctx context.Context, id int64) error {
	l := r.ref(id)
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		r.unref(id)
		return fmt.Errorf("waiting for lock on benefit %d: %w", id, ctx.Err())
	}
}

func (r *BenefitRepository) release(id int64) {
	r.locksMu.Lock()
	l := r.locks[id]
	r.locksMu.Unlock()

	<-l.ch
	r.unref(id)
}

// WithinTransaction runs fn with a locker whose saves are applied atomically when fn
// returns nil. Every lock taken by fn is released before WithinTransaction returns,
// including when fn panics.
func (r *BenefitRepository) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	tx := &txBenefitStore{
		repo:   r,
		held:   make(map[int64]struct{}),
		staged: make(map[int64]domain.Benefit),
	}
	defer tx.finish()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

// txBenefitStore is the BenefitLocker bound to one in-memory transaction.
type txBenefitStore struct {
	repo   *BenefitRepository
	order  []int64
	held   map[int64]struct{}
	staged map[int64]domain.Benefit
	done   bool
}

var _ portsrepo.BenefitLocker = (*txBenefitStore)(nil)

// GetForExclusiveWrite takes the exclusive lock for id and returns the latest committed
// value, or this transaction's staged value if it already saved one. Locks are reentrant
// within a transaction.
func (t *txBenefitStore) GetForExclusiveWrite(ctx context.Context, id int64) (*domain.Benefit, error) {
	if t.done {
		return nil, errTxDone
	}
	if _, ok := t.held[id]; !ok {
		if err := t.repo.acquire(ctx, id); err != nil {
			return nil, err
		}
		t.held[id] = struct{}{}
		t.order = append(t.order, id)
	}

	if b, ok := t.staged[id]; ok {
		return &b, nil
	}
	return t.repo.FindBenefitByID(ctx, id)
}

// Save stages benefit for commit. The benefit must have been locked by this transaction.
func (t *txBenefitStore) Save(_ context.Context, benefit domain.Benefit) error {
	if t.done {
		return errTxDone
	}
	if _, ok := t.held[benefit.ID]; !ok {
		return fmt.Errorf("benefit %d saved without holding its exclusive lock", benefit.ID)
	}
	t.staged[benefit.ID] = benefit
	return nil
}

func (t *txBenefitStore) commit() error {
	r := t.repo
	r.mu.Lock()
	defer r.mu.Unlock()

	// A hard delete does not take the exclusive lock, so check before applying anything.
	for id := range t.staged {
		if _, ok := r.records[id]; !ok {
			return notFound(id)
		}
	}

	now := r.now()
	for id, b := range t.staged {
		current := r.records[id]
		b.Version = current.Version + 1
		b.CreatedAt = current.CreatedAt
		b.UpdatedAt = now
		r.records[id] = b
	}
	return nil
}

// finish releases held locks in reverse acquisition order and discards staged values.
func (t *txBenefitStore) finish() {
	t.done = true
	for i := len(t.order) - 1; i >= 0; i-- {
		t.repo.release(t.order[i])
	}
	t.order = nil
	t.held = nil
	t.staged = nil
}
