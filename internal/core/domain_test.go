package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:         "tx-1",
		Kind:       Expense,
		Amount:     Money{Paise: 250_00},
		Category:   Food,
		OccurredOn: NewDate(2026, 8, 31),
		CreatedAt:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{
			name:   "valid transaction",
			mutate: func(tx *Transaction) {},
		},
		{
			name:    "invalid kind",
			mutate:  func(tx *Transaction) { tx.Kind = "transfer" },
			wantErr: ErrInvalidKind,
		},
		{
			name:    "zero amount",
			mutate:  func(tx *Transaction) { tx.Amount = Money{} },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(tx *Transaction) { tx.Amount = Money{Paise: -100} },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown category",
			mutate:  func(tx *Transaction) { tx.Category = "groceries" },
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "zero date",
			mutate:  func(tx *Transaction) { tx.OccurredOn = Date{} },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "notes over limit",
			mutate:  func(tx *Transaction) { tx.Notes = strings.Repeat("a", 201) },
			wantErr: ErrNotesTooLong,
		},
		{
			name:   "notes at limit",
			mutate: func(tx *Transaction) { tx.Notes = strings.Repeat("a", 200) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, 2, 28)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `"2026-02-28"` {
		t.Errorf("Marshal() = %s, want \"2026-02-28\"", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDate_Helpers(t *testing.T) {
	d := NewDate(2026, 8, 31)

	if got := d.AddDays(-31); got.Key() != "2026-07-31" {
		t.Errorf("AddDays(-31) = %s, want 2026-07-31", got.Key())
	}
	if !d.SameMonth(NewDate(2026, 8, 1)) {
		t.Error("SameMonth() = false for same month")
	}
	if d.SameMonth(NewDate(2025, 8, 31)) {
		t.Error("SameMonth() = true across years")
	}
	if got := DateOf(time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)); got.Key() != "2026-08-31" {
		t.Errorf("DateOf() = %s, want 2026-08-31", got.Key())
	}
}

func TestDefaultBudgets(t *testing.T) {
	budgets := DefaultBudgets()
	for _, c := range Categories() {
		b, ok := budgets[c]
		if !ok {
			t.Errorf("no default budget for %s", c)
			continue
		}
		if b.Limit.Paise <= 0 {
			t.Errorf("%s default limit = %d, want positive", c, b.Limit.Paise)
		}
		if b.Spent.Paise != 0 {
			t.Errorf("%s default spent = %d, want 0", c, b.Spent.Paise)
		}
	}
}

func TestNewProgress(t *testing.T) {
	p := NewProgress()
	if p.Level != 1 || p.XP != 0 || p.Karma != 100 {
		t.Errorf("NewProgress() = %+v, want level 1, xp 0, karma 100", p)
	}
	if got := p.NextLevelXP(); got != 500 {
		t.Errorf("NextLevelXP() = %d, want 500", got)
	}
	if got := p.LifetimeXP(); got != 0 {
		t.Errorf("LifetimeXP() = %d, want 0", got)
	}
}
