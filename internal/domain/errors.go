package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidEntryKind = errors.New("entry kind must be credit or debit")
	ErrFutureDate       = errors.New("date cannot be in the future")
	ErrNegativeTotals   = errors.New("totals and entry count cannot be negative")
	ErrInvalidPeriod    = errors.New("start date cannot be after end date")

	// Not-found errors
	ErrConsolidationNotFound = errors.New("consolidation not found for date")
	ErrEntryNotFound         = errors.New("entry not found")

	// ErrConflict signals an optimistic concurrency violation: the row was
	// inserted or modified by another writer since it was read.
	ErrConflict = errors.New("concurrent modification detected")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInsufficientRole   = errors.New("insufficient role for this operation")
)
