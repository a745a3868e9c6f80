package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeEntryCreated = "entry.created"
)

// EntryCreatedEvent is the notification published when a ledger entry is
// recorded. Kind carries the numeric wire encoding (1=credit, 2=debit).
type EntryCreatedEvent struct {
	EntryID   string          `json:"entry_id"`
	Date      time.Time       `json:"date"`
	Kind      int             `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEntryCreatedEvent builds the event for a persisted entry.
func NewEntryCreatedEvent(e *Entry) EntryCreatedEvent {
	return EntryCreatedEvent{
		EntryID:   e.ID,
		Date:      e.Date,
		Kind:      int(e.Kind),
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}
