package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

const (
	// maxApplyAttempts bounds the optimistic-concurrency retry loop.
	maxApplyAttempts = 3

	// applyBackoffStep is multiplied by the attempt number between retries.
	applyBackoffStep = 100 * time.Millisecond
)

// ConsolidationUseCase applies ledger entries to the per-date consolidation,
// tolerating concurrent writers through optimistic-conflict retry.
type ConsolidationUseCase struct {
	repo ConsolidationRepository
}

// NewConsolidationUseCase creates a new ConsolidationUseCase.
func NewConsolidationUseCase(repo ConsolidationRepository) *ConsolidationUseCase {
	return &ConsolidationUseCase{repo: repo}
}

// ApplyEntry applies one entry's delta to the consolidation for its date,
// creating the row if it does not exist yet.
//
// Each attempt re-reads the latest stored state before reapplying the delta,
// so under contention every accepted delta is reflected exactly once. After
// maxApplyAttempts update conflicts the conflict is returned to the caller,
// which decides redelivery. Non-conflict errors abort immediately.
func (uc *ConsolidationUseCase) ApplyEntry(ctx context.Context, date time.Time, kind domain.EntryKind, amount decimal.Decimal) (*domain.DailyConsolidation, error) {
	attempt := 0

	for {
		consolidation, err := uc.repo.FindByDate(ctx, date)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrConsolidationNotFound):
			created, insertErr := uc.insertNew(ctx, date, kind, amount)
			if insertErr == nil {
				return created, nil
			}
			if errors.Is(insertErr, domain.ErrConflict) {
				// Another writer created the row first. Re-read it and
				// take the update path; this is not the terminal failure.
				continue
			}

			return nil, insertErr
		default:
			return nil, err
		}

		if err := consolidation.Apply(kind, amount); err != nil {
			return nil, err
		}

		err = uc.repo.Update(ctx, consolidation)
		if err == nil {
			return consolidation, nil
		}

		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		attempt++
		if attempt >= maxApplyAttempts {
			return nil, fmt.Errorf("consolidation for %s still conflicting after %d attempts: %w",
				date.Format("2006-01-02"), maxApplyAttempts, domain.ErrConflict)
		}

		if err := sleepCtx(ctx, time.Duration(attempt)*applyBackoffStep); err != nil {
			return nil, err
		}
	}
}

// SetDailyTotals overwrites a day's totals with authoritative values from an
// upstream recomputation, creating the day if absent. It follows the same
// conflict-retry discipline as ApplyEntry.
func (uc *ConsolidationUseCase) SetDailyTotals(ctx context.Context, date time.Time, totalCredits, totalDebits decimal.Decimal, entryCount int) (*domain.DailyConsolidation, error) {
	attempt := 0

	for {
		consolidation, err := uc.repo.FindByDate(ctx, date)
		if errors.Is(err, domain.ErrConsolidationNotFound) {
			consolidation, err = domain.NewDailyConsolidation(date)
			if err != nil {
				return nil, err
			}

			if err := consolidation.SetTotals(totalCredits, totalDebits, entryCount); err != nil {
				return nil, err
			}

			err = uc.repo.Insert(ctx, consolidation)
			if err == nil {
				return consolidation, nil
			}
			if errors.Is(err, domain.ErrConflict) {
				continue
			}

			return nil, err
		}
		if err != nil {
			return nil, err
		}

		if err := consolidation.SetTotals(totalCredits, totalDebits, entryCount); err != nil {
			return nil, err
		}

		err = uc.repo.Update(ctx, consolidation)
		if err == nil {
			return consolidation, nil
		}

		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		attempt++
		if attempt >= maxApplyAttempts {
			return nil, fmt.Errorf("consolidation for %s still conflicting after %d attempts: %w",
				date.Format("2006-01-02"), maxApplyAttempts, domain.ErrConflict)
		}

		if err := sleepCtx(ctx, time.Duration(attempt)*applyBackoffStep); err != nil {
			return nil, err
		}
	}
}

func (uc *ConsolidationUseCase) insertNew(ctx context.Context, date time.Time, kind domain.EntryKind, amount decimal.Decimal) (*domain.DailyConsolidation, error) {
	consolidation, err := domain.NewDailyConsolidation(date)
	if err != nil {
		return nil, err
	}

	if err := consolidation.Apply(kind, amount); err != nil {
		return nil, err
	}

	if err := uc.repo.Insert(ctx, consolidation); err != nil {
		return nil, err
	}

	return consolidation, nil
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
