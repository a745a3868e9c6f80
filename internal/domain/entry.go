package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind discriminates credits from debits. The numeric values are part
// of the wire contract consumed by the consolidation service.
type EntryKind int

const (
	EntryKindCredit EntryKind = 1
	EntryKindDebit  EntryKind = 2
)

// Valid reports whether k is a known kind.
func (k EntryKind) Valid() bool {
	return k == EntryKindCredit || k == EntryKindDebit
}

func (k EntryKind) String() string {
	switch k {
	case EntryKindCredit:
		return "credit"
	case EntryKindDebit:
		return "debit"
	default:
		return "unknown"
	}
}

// Entry represents a single recorded credit or debit.
type Entry struct {
	ID          string
	Date        time.Time
	Kind        EntryKind
	Amount      decimal.Decimal
	Description string
	Note        string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NewEntry creates a validated ledger entry.
func NewEntry(date time.Time, kind EntryKind, amount decimal.Decimal, description, note string) (*Entry, error) {
	if err := validateEntry(date, kind, amount, description); err != nil {
		return nil, err
	}

	return &Entry{
		ID:          uuid.NewString(),
		Date:        NormalizeDate(date),
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Update replaces the mutable attributes of the entry.
func (e *Entry) Update(date time.Time, kind EntryKind, amount decimal.Decimal, description, note string) error {
	if err := validateEntry(date, kind, amount, description); err != nil {
		return err
	}

	e.Date = NormalizeDate(date)
	e.Kind = kind
	e.Amount = amount
	e.Description = description
	e.Note = note
	now := time.Now().UTC()
	e.UpdatedAt = &now

	return nil
}

// IsCredit reports whether the entry is a credit.
func (e *Entry) IsCredit() bool { return e.Kind == EntryKindCredit }

// IsDebit reports whether the entry is a debit.
func (e *Entry) IsDebit() bool { return e.Kind == EntryKindDebit }

func validateEntry(date time.Time, kind EntryKind, amount decimal.Decimal, description string) error {
	if !kind.Valid() {
		return ErrInvalidEntryKind
	}

	if err := ValidateAmount(amount); err != nil {
		return err
	}

	if err := ValidateDescription(description); err != nil {
		return err
	}

	if NormalizeDate(date).After(Today()) {
		return ErrFutureDate
	}

	return nil
}
