package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CreateEntryRequest represents a request to record a ledger entry.
type CreateEntryRequest struct {
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Note        string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.CreateEntryInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	kind, err := ParseKind(r.Kind)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		Date:        date,
		Kind:        kind,
		Amount:      r.Amount,
		Description: r.Description,
		Note:        r.Note,
	}, nil
}

// UpdateEntryRequest represents a request to replace an entry's attributes.
type UpdateEntryRequest struct {
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Note        string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput(id string) (usecase.UpdateEntryInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.UpdateEntryInput{}, err
	}

	kind, err := ParseKind(r.Kind)
	if err != nil {
		return usecase.UpdateEntryInput{}, err
	}

	return usecase.UpdateEntryInput{
		ID:          id,
		Date:        date,
		Kind:        kind,
		Amount:      r.Amount,
		Description: r.Description,
		Note:        r.Note,
	}, nil
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseKind parses an entry kind from its wire name.
func ParseKind(s string) (domain.EntryKind, error) {
	switch s {
	case "credit":
		return domain.EntryKindCredit, nil
	case "debit":
		return domain.EntryKindDebit, nil
	default:
		return 0, fmt.Errorf("invalid kind %q: expected credit or debit", s)
	}
}
