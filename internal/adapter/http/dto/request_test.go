package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2025-01-15",
			want:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrong layout",
			input:   "15/01/2025",
			wantErr: true,
		},
		{
			name:    "date with time",
			input:   "2025-01-15T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dto.ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    domain.EntryKind
		wantErr bool
	}{
		{name: "credit", input: "credit", want: domain.EntryKindCredit},
		{name: "debit", input: "debit", want: domain.EntryKindDebit},
		{name: "uppercase rejected", input: "Credit", wantErr: true},
		{name: "unknown", input: "transfer", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dto.ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected kind %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCreateEntryRequestToUseCaseInput(t *testing.T) {
	t.Parallel()

	req := &dto.CreateEntryRequest{
		Date:        "2025-03-10",
		Kind:        "debit",
		Amount:      decimal.NewFromFloat(42.50),
		Description: "office supplies",
		Note:        "stationery restock",
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !input.Date.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", input.Date)
	}
	if input.Kind != domain.EntryKindDebit {
		t.Fatalf("unexpected kind: %v", input.Kind)
	}
	if !input.Amount.Equal(decimal.NewFromFloat(42.50)) {
		t.Fatalf("unexpected amount: %s", input.Amount)
	}
	if input.Description != "office supplies" || input.Note != "stationery restock" {
		t.Fatalf("unexpected description/note: %q %q", input.Description, input.Note)
	}
}

func TestCreateEntryRequestToUseCaseInputErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  dto.CreateEntryRequest
	}{
		{
			name: "bad date",
			req:  dto.CreateEntryRequest{Date: "yesterday", Kind: "credit"},
		},
		{
			name: "bad kind",
			req:  dto.CreateEntryRequest{Date: "2025-03-10", Kind: "withdrawal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.req.ToUseCaseInput(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestUpdateEntryRequestToUseCaseInput(t *testing.T) {
	t.Parallel()

	req := &dto.UpdateEntryRequest{
		Date:        "2025-03-11",
		Kind:        "credit",
		Amount:      decimal.NewFromInt(100),
		Description: "consulting fee",
	}

	input, err := req.ToUseCaseInput("entry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if input.ID != "entry-1" {
		t.Fatalf("expected id to pass through, got %q", input.ID)
	}
	if input.Kind != domain.EntryKindCredit {
		t.Fatalf("unexpected kind: %v", input.Kind)
	}
}
