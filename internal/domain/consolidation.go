package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyConsolidation represents the consolidated cash-flow totals for a
// single calendar day. It is created lazily by the first entry of the day
// and mutated by every subsequent one.
type DailyConsolidation struct {
	ID           string
	Date         time.Time
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal
	Balance      decimal.Decimal
	EntryCount   int
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// NewDailyConsolidation creates an empty consolidation for date.
// The date is normalized to midnight UTC and must not be in the future.
func NewDailyConsolidation(date time.Time) (*DailyConsolidation, error) {
	day := NormalizeDate(date)
	if day.After(Today()) {
		return nil, ErrFutureDate
	}

	return &DailyConsolidation{
		ID:           uuid.NewString(),
		Date:         day,
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
		Balance:      decimal.Zero,
		EntryCount:   0,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ApplyCredit adds amount to the credit total.
func (c *DailyConsolidation) ApplyCredit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	c.TotalCredits = c.TotalCredits.Add(amount)
	c.recompute()

	return nil
}

// ApplyDebit adds amount to the debit total.
func (c *DailyConsolidation) ApplyDebit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	c.TotalDebits = c.TotalDebits.Add(amount)
	c.recompute()

	return nil
}

// Apply routes amount to the credit or debit total according to kind.
func (c *DailyConsolidation) Apply(kind EntryKind, amount decimal.Decimal) error {
	switch kind {
	case EntryKindCredit:
		return c.ApplyCredit(amount)
	case EntryKindDebit:
		return c.ApplyDebit(amount)
	default:
		return ErrInvalidEntryKind
	}
}

// SetTotals overwrites the running totals with authoritative values,
// used when an upstream recomputation supplies them in bulk.
func (c *DailyConsolidation) SetTotals(totalCredits, totalDebits decimal.Decimal, entryCount int) error {
	if totalCredits.IsNegative() || totalDebits.IsNegative() || entryCount < 0 {
		return ErrNegativeTotals
	}

	c.TotalCredits = totalCredits
	c.TotalDebits = totalDebits
	c.Balance = totalCredits.Sub(totalDebits)
	c.EntryCount = entryCount
	c.touch()

	return nil
}

// IsPositive reports whether the day closed above zero.
func (c *DailyConsolidation) IsPositive() bool { return c.Balance.IsPositive() }

// IsNegative reports whether the day closed below zero.
func (c *DailyConsolidation) IsNegative() bool { return c.Balance.IsNegative() }

// IsZero reports whether the day closed exactly at zero.
func (c *DailyConsolidation) IsZero() bool { return c.Balance.IsZero() }

func (c *DailyConsolidation) recompute() {
	c.Balance = c.TotalCredits.Sub(c.TotalDebits)
	c.EntryCount++
	c.touch()
}

func (c *DailyConsolidation) touch() {
	now := time.Now().UTC()
	c.UpdatedAt = &now
}

// NormalizeDate strips the time component, leaving midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day at midnight UTC.
func Today() time.Time {
	return NormalizeDate(time.Now())
}
