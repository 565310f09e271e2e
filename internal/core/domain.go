// Package core contains pure domain types with no infrastructure imports.
package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	Food          Category = "food"
	Transport     Category = "transport"
	Entertainment Category = "entertainment"
	Bills         Category = "bills"
	Shopping      Category = "shopping"
	Health        Category = "health"
	Other         Category = "other"
)

type (
	Kind string

	Category string

	// Date is a calendar date; the time-of-day portion is always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is an amount in paise. Calculations stay in integer paise;
	// Rupees() exists for display only.
	Money struct {
		Paise int64
	}

	Transaction struct {
		ID         string    `json:"id"`
		Kind       Kind      `json:"kind"`
		Amount     Money     `json:"amount"`
		Category   Category  `json:"category"`
		OccurredOn Date      `json:"occurred_on"`
		CreatedAt  time.Time `json:"created_at"`
		Notes      string    `json:"notes,omitempty"`
		Recurring  bool      `json:"recurring,omitempty"`
	}

	// BudgetEntry tracks a monthly spending limit for one category.
	// Spent is derived: it is reset and resummed from the ledger on every
	// recomputation, never adjusted incrementally.
	BudgetEntry struct {
		Limit Money `json:"limit"`
		Spent Money `json:"spent"`
	}

	// ProgressState is the gamification progress owned by the engine.
	// Invariant after any engine mutation: 0 <= XP < Level*500 and
	// 0 <= Karma <= 100.
	ProgressState struct {
		XP                  int `json:"xp"`
		Level               int `json:"level"`
		Karma               int `json:"karma"`
		ChallengesCompleted int `json:"challenges_completed"`
	}
)

var (
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNotesTooLong    = errors.New("notes too long (max 200 characters)")
)

// Categories returns every budget category in display order.
func Categories() []Category {
	return []Category{Food, Transport, Entertainment, Bills, Shopping, Health, Other}
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultBudgets returns the factory budget limits with zero spent.
func DefaultBudgets() map[Category]BudgetEntry {
	return map[Category]BudgetEntry{
		Food:          {Limit: Money{Paise: 5000_00}},
		Transport:     {Limit: Money{Paise: 3000_00}},
		Entertainment: {Limit: Money{Paise: 2000_00}},
		Bills:         {Limit: Money{Paise: 8000_00}},
		Shopping:      {Limit: Money{Paise: 4000_00}},
		Health:        {Limit: Money{Paise: 3000_00}},
		Other:         {Limit: Money{Paise: 2000_00}},
	}
}

// NewProgress returns the starting progress state: level 1, full karma.
func NewProgress() ProgressState {
	return ProgressState{XP: 0, Level: 1, Karma: 100}
}

// NextLevelXP is the XP required to leave the current level.
func (p ProgressState) NextLevelXP() int {
	return p.Level * 500
}

// LifetimeXP is the cumulative XP earned across all levels. The formula
// must stay in lockstep with the level-up rule (reset to 0, threshold
// level*500) or XP-threshold achievements misfire.
func (p ProgressState) LifetimeXP() int {
	return (p.Level-1)*500 + p.XP
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Key returns the YYYY-MM-DD form used in persistence keys.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// SameMonth reports whether both dates fall in the same year and month.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("empty transaction id")
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !ValidCategory(t.Category) {
		return ErrInvalidCategory
	}
	if err := t.OccurredOn.Validate(); err != nil {
		return err
	}
	if len(t.Notes) > 200 {
		return ErrNotesTooLong
	}
	return nil
}

func (b BudgetEntry) Validate() error {
	if b.Limit.Paise <= 0 {
		return ErrInvalidAmount
	}
	if b.Spent.Paise < 0 {
		return ErrInvalidAmount
	}
	return nil
}
