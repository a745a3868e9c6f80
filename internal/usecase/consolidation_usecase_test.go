package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
	"github.com/iho/cashflow/internal/usecase/mocks"
)

var testDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func TestConsolidationUseCase_ApplyEntry_CreatesRow(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)

	c, err := uc.ApplyEntry(context.Background(), testDate, domain.EntryKindCredit, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance 1000, got %s", c.Balance)
	}
	if c.EntryCount != 1 {
		t.Errorf("expected entry count 1, got %d", c.EntryCount)
	}

	stored, ok := repo.Stored(testDate)
	if !ok {
		t.Fatal("expected row to be persisted")
	}
	if stored.Version != 1 {
		t.Errorf("expected version 1 after insert, got %d", stored.Version)
	}
}

func TestConsolidationUseCase_ApplyEntry_AccumulatesDeltas(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)
	ctx := context.Background()

	steps := []struct {
		kind   domain.EntryKind
		amount int64
	}{
		{domain.EntryKindCredit, 1000},
		{domain.EntryKindDebit, 500},
		{domain.EntryKindCredit, 800},
		{domain.EntryKindDebit, 200},
	}

	for _, step := range steps {
		if _, err := uc.ApplyEntry(ctx, testDate, step.kind, decimal.NewFromInt(step.amount)); err != nil {
			t.Fatalf("apply %s %d: %v", step.kind, step.amount, err)
		}
	}

	stored, _ := repo.Stored(testDate)
	if !stored.Balance.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("expected balance 1100, got %s", stored.Balance)
	}
	if stored.EntryCount != 4 {
		t.Errorf("expected entry count 4, got %d", stored.EntryCount)
	}
}

func TestConsolidationUseCase_ApplyEntry_InsertConflictTakesUpdatePath(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)
	ctx := context.Background()

	// A competing writer creates the row between the read and the insert.
	if _, err := uc.ApplyEntry(ctx, testDate, domain.EntryKindCredit, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	missedFirstRead := false
	repo.FindByDateFunc = func(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error) {
		if !missedFirstRead {
			missedFirstRead = true
			return nil, domain.ErrConsolidationNotFound
		}
		repo.FindByDateFunc = nil
		return repo.FindByDate(ctx, date)
	}

	c, err := uc.ApplyEntry(ctx, testDate, domain.EntryKindCredit, decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both writers' deltas must survive
	if !c.TotalCredits.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected credits 150, got %s", c.TotalCredits)
	}
	if c.EntryCount != 2 {
		t.Errorf("expected entry count 2, got %d", c.EntryCount)
	}
}

func TestConsolidationUseCase_ApplyEntry_RetriesExhausted(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)

	reads := 0
	repo.FindByDateFunc = func(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error) {
		reads++
		c, err := domain.NewDailyConsolidation(date)
		if err != nil {
			return nil, err
		}
		c.Version = int64(reads)
		return c, nil
	}

	updates := 0
	repo.UpdateFunc = func(ctx context.Context, c *domain.DailyConsolidation) error {
		updates++
		return domain.ErrConflict
	}

	_, err := uc.ApplyEntry(context.Background(), testDate, domain.EntryKindCredit, decimal.NewFromInt(10))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict after exhausted retries, got %v", err)
	}

	if updates != 3 {
		t.Errorf("expected 3 update attempts, got %d", updates)
	}
	if reads != 3 {
		t.Errorf("expected a fresh read per attempt, got %d reads", reads)
	}
}

func TestConsolidationUseCase_ApplyEntry_NonConflictErrorAborts(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)

	storageErr := errors.New("connection reset")
	updates := 0
	repo.FindByDateFunc = func(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error) {
		return domain.NewDailyConsolidation(date)
	}
	repo.UpdateFunc = func(ctx context.Context, c *domain.DailyConsolidation) error {
		updates++
		return storageErr
	}

	_, err := uc.ApplyEntry(context.Background(), testDate, domain.EntryKindCredit, decimal.NewFromInt(10))
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if updates != 1 {
		t.Errorf("expected no retry on non-conflict error, got %d attempts", updates)
	}
}

func TestConsolidationUseCase_ApplyEntry_InvalidAmount(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)

	_, err := uc.ApplyEntry(context.Background(), testDate, domain.EntryKindCredit, decimal.Zero)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if _, ok := repo.Stored(testDate); ok {
		t.Error("rejected amount must not create a row")
	}
}

func TestConsolidationUseCase_ApplyEntry_ConcurrentWritersConverge(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)
	ctx := context.Background()

	const workers = 5
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			// The broker redelivers on exhausted retries; the worker loops
			// the same way so every delta eventually lands.
			for {
				_, err := uc.ApplyEntry(ctx, testDate, domain.EntryKindCredit, amount)
				if err == nil {
					return
				}
				if !errors.Is(err, domain.ErrConflict) {
					t.Errorf("apply entry: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	stored, ok := repo.Stored(testDate)
	if !ok {
		t.Fatal("expected row to be persisted")
	}
	if !stored.TotalCredits.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected credits 500, got %s", stored.TotalCredits)
	}
	if stored.EntryCount != workers {
		t.Errorf("expected entry count %d, got %d", workers, stored.EntryCount)
	}
}

func TestConsolidationUseCase_SetDailyTotals(t *testing.T) {
	repo := mocks.NewMockConsolidationRepository()
	uc := usecase.NewConsolidationUseCase(repo)
	ctx := context.Background()

	c, err := uc.SetDailyTotals(ctx, testDate, decimal.NewFromInt(900), decimal.NewFromInt(400), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected balance 500, got %s", c.Balance)
	}

	// Overwrites, not accumulates
	c, err = uc.SetDailyTotals(ctx, testDate, decimal.NewFromInt(100), decimal.Zero, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100, got %s", c.Balance)
	}
	if c.EntryCount != 1 {
		t.Errorf("expected entry count 1, got %d", c.EntryCount)
	}
}

func TestConsolidationUseCase_ApplyEntry_RereadsLatestState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockConsolidationRepositoryGM(ctrl)

	stale, err := domain.NewDailyConsolidation(testDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stale.Version = 1

	fresh, err := domain.NewDailyConsolidation(testDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fresh.SetTotals(decimal.NewFromInt(40), decimal.Zero, 1); err != nil {
		t.Fatalf("set totals: %v", err)
	}
	fresh.Version = 2

	gomock.InOrder(
		repo.EXPECT().FindByDate(gomock.Any(), testDate).Return(stale, nil),
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrConflict),
		repo.EXPECT().FindByDate(gomock.Any(), testDate).Return(fresh, nil),
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(&domain.DailyConsolidation{})).
			DoAndReturn(func(_ context.Context, c *domain.DailyConsolidation) error {
				if c.Version != 2 {
					t.Errorf("expected delta applied to re-read version 2, got %d", c.Version)
				}
				if !c.TotalCredits.Equal(decimal.NewFromInt(100)) {
					t.Errorf("expected credits 100, got %s", c.TotalCredits)
				}
				return nil
			}),
	)

	uc := usecase.NewConsolidationUseCase(repo)

	if _, err := uc.ApplyEntry(context.Background(), testDate, domain.EntryKindCredit, decimal.NewFromInt(60)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
