package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/core/domain"
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	"github.com/SscSPs/benefits_service/internal/core/services"
	"github.com/SscSPs/benefits_service/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTxManager wraps a TransactionManager and records, per transaction, the IDs
// passed to GetForExclusiveWrite in call order.
type recordingTxManager struct {
	inner portsrepo.TransactionManager

	mu           sync.Mutex
	acquisitions [][]int64
}

type recordingLocker struct {
	portsrepo.BenefitLocker
	ids *[]int64
}

func (l *recordingLocker) GetForExclusiveWrite(ctx context.Context, id int64) (*domain.Benefit, error) {
	*l.ids = append(*l.ids, id)
	return l.BenefitLocker.GetForExclusiveWrite(ctx, id)
}

func (r *recordingTxManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	ids := []int64{}
	err := r.inner.WithinTransaction(ctx, func(ctx context.Context, store portsrepo.BenefitLocker) error {
		return fn(ctx, &recordingLocker{BenefitLocker: store, ids: &ids})
	})
	r.mu.Lock()
	r.acquisitions = append(r.acquisitions, ids)
	r.mu.Unlock()
	return err
}

func seedBenefit(t *testing.T, repo *memory.BenefitRepository, name, balance string, active bool) domain.Benefit {
	t.Helper()
	b, err := repo.CreateBenefit(context.Background(), domain.Benefit{
		Name:     name,
		Balance:  decimal.RequireFromString(balance),
		IsActive: active,
	})
	require.NoError(t, err)
	return *b
}

func balanceOf(t *testing.T, repo *memory.BenefitRepository, id int64) decimal.Decimal {
	t.Helper()
	b, err := repo.FindBenefitByID(context.Background(), id)
	require.NoError(t, err)
	return b.Balance
}

func TestTransfer_MemoryStore_MovesBalance(t *testing.T) {
	repo := memory.NewBenefitRepository()
	origin := seedBenefit(t, repo, "Origin", "1000.00", true)
	target := seedBenefit(t, repo, "Target", "500.00", true)
	svc := services.NewTransferService(repo)

	err := svc.Transfer(context.Background(), transferReq(origin.ID, target.ID, "200.00"))

	require.NoError(t, err)
	assert.True(t, balanceOf(t, repo, origin.ID).Equal(decimal.RequireFromString("800.00")))
	assert.True(t, balanceOf(t, repo, target.ID).Equal(decimal.RequireFromString("700.00")))
}

func TestTransfer_MemoryStore_ExactBalanceLeavesZero(t *testing.T) {
	repo := memory.NewBenefitRepository()
	origin := seedBenefit(t, repo, "Origin", "250.75", true)
	target := seedBenefit(t, repo, "Target", "0", true)
	svc := services.NewTransferService(repo)

	require.NoError(t, svc.Transfer(context.Background(), transferReq(origin.ID, target.ID, "250.75")))

	assert.True(t, balanceOf(t, repo, origin.ID).IsZero())
	assert.True(t, balanceOf(t, repo, target.ID).Equal(decimal.RequireFromString("250.75")))
}

func TestTransfer_MemoryStore_RejectionsLeaveStoreUntouched(t *testing.T) {
	repo := memory.NewBenefitRepository()
	origin := seedBenefit(t, repo, "Origin", "1000.00", true)
	target := seedBenefit(t, repo, "Target", "500.00", true)
	inactive := seedBenefit(t, repo, "Inactive", "300.00", false)
	svc := services.NewTransferService(repo)
	ctx := context.Background()

	cases := []struct {
		name    string
		from    int64
		to      int64
		amount  string
		wantErr error
	}{
		{"insufficient balance", origin.ID, target.ID, "1500.00", apperrors.ErrInvalidState},
		{"inactive source", inactive.ID, target.ID, "10.00", apperrors.ErrSourceInactive},
		{"inactive destination", origin.ID, inactive.ID, "10.00", apperrors.ErrDestinationInactive},
		{"unknown source", 999, target.ID, "10.00", apperrors.ErrNotFound},
		{"unknown destination", origin.ID, 999, "10.00", apperrors.ErrNotFound},
		{"zero amount", origin.ID, target.ID, "0", apperrors.ErrValidation},
		{"same benefit", origin.ID, origin.ID, "10.00", apperrors.ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before, err := repo.ListBenefits(ctx)
			require.NoError(t, err)

			// Repeating a rejected transfer keeps failing the same way.
			for i := 0; i < 3; i++ {
				err := svc.Transfer(ctx, transferReq(tc.from, tc.to, tc.amount))
				assert.ErrorIs(t, err, tc.wantErr)
			}

			after, err := repo.ListBenefits(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestTransfer_MemoryStore_LockOrderIsDirectionIndependent(t *testing.T) {
	repo := memory.NewBenefitRepository()
	a := seedBenefit(t, repo, "A", "100", true)
	b := seedBenefit(t, repo, "B", "100", true)
	recorder := &recordingTxManager{inner: repo}
	svc := services.NewTransferService(recorder)
	ctx := context.Background()

	require.NoError(t, svc.Transfer(ctx, transferReq(a.ID, b.ID, "10")))
	require.NoError(t, svc.Transfer(ctx, transferReq(b.ID, a.ID, "10")))
	// Rejected after locking: the order still holds.
	require.Error(t, svc.Transfer(ctx, transferReq(b.ID, a.ID, "1000")))

	require.Len(t, recorder.acquisitions, 3)
	for _, ids := range recorder.acquisitions {
		assert.Equal(t, []int64{a.ID, b.ID}, ids)
	}
}

func TestTransfer_MemoryStore_OppositeDirectionsDoNotDeadlock(t *testing.T) {
	repo := memory.NewBenefitRepository()
	a := seedBenefit(t, repo, "A", "1000", true)
	b := seedBenefit(t, repo, "B", "1000", true)
	svc := services.NewTransferService(repo)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const perDirection = 200
	var wg sync.WaitGroup
	errs := make(chan error, 2*perDirection)
	for i := 0; i < perDirection; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- svc.Transfer(ctx, transferReq(a.ID, b.ID, "1.5"))
		}()
		go func() {
			defer wg.Done()
			errs <- svc.Transfer(ctx, transferReq(b.ID, a.ID, "1.5"))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err, "no transfer may time out waiting for a lock")
	}

	total := balanceOf(t, repo, a.ID).Add(balanceOf(t, repo, b.ID))
	assert.True(t, total.Equal(decimal.NewFromInt(2000)), "total must be conserved, got %s", total)
	assert.True(t, balanceOf(t, repo, a.ID).Equal(decimal.NewFromInt(1000)))
}

func TestTransfer_MemoryStore_ConcurrentDrainNeverOverdraws(t *testing.T) {
	repo := memory.NewBenefitRepository()
	source := seedBenefit(t, repo, "Source", "100", true)
	sinks := []domain.Benefit{
		seedBenefit(t, repo, "Sink 1", "0", true),
		seedBenefit(t, repo, "Sink 2", "0", true),
		seedBenefit(t, repo, "Sink 3", "0", true),
	}
	svc := services.NewTransferService(repo)

	const attempts = 50
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := svc.Transfer(context.Background(), transferReq(source.ID, sinks[i%len(sinks)].ID, "10"))
			var balanceErr *apperrors.InsufficientBalanceError
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &balanceErr):
				insufficient++
			default:
				t.Errorf("unexpected transfer error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, attempts-10, insufficient)
	assert.True(t, balanceOf(t, repo, source.ID).IsZero())

	total := balanceOf(t, repo, source.ID)
	for _, sink := range sinks {
		bal := balanceOf(t, repo, sink.ID)
		assert.False(t, bal.IsNegative())
		total = total.Add(bal)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestTransfer_MemoryStore_RingOfTransfersConservesTotal(t *testing.T) {
	repo := memory.NewBenefitRepository()
	ids := make([]int64, 5)
	for i := range ids {
		ids[i] = seedBenefit(t, repo, "Ring", "50", true).ID
	}
	svc := services.NewTransferService(repo)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for round := 0; round < 40; round++ {
		for i := range ids {
			wg.Add(1)
			go func(from, to int64) {
				defer wg.Done()
				err := svc.Transfer(ctx, transferReq(from, to, "7.25"))
				if err != nil && !errors.Is(err, apperrors.ErrInvalidState) {
					t.Errorf("unexpected transfer error: %v", err)
				}
			}(ids[i], ids[(i+1)%len(ids)])
		}
	}
	wg.Wait()

	total := decimal.Zero
	for _, id := range ids {
		bal := balanceOf(t, repo, id)
		assert.False(t, bal.IsNegative(), "benefit %d went negative", id)
		total = total.Add(bal)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "total must be conserved, got %s", total)
}
