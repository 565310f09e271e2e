// Package gamify implements the challenge and achievement engine: it
// derives completion and unlock status from the ledger, applies XP, level
// and karma mutations, and guarantees each reward fires exactly once.
package gamify

import (
	"time"

	"fintrack/internal/core"
)

// Snapshot is the read-only ledger state handed to the engine on every
// evaluation pass. The engine never mutates it; transactions and budgets
// are owned by the ledger service.
type Snapshot struct {
	Transactions []core.Transaction
	Budgets      map[core.Category]core.BudgetEntry
	HasExported  bool
	DarkMode     bool
	Now          time.Time
}

// Today is the calendar date of the snapshot clock.
func (s Snapshot) Today() core.Date {
	return core.DateOf(s.Now)
}

// View is what predicates evaluate against: the ledger snapshot plus the
// engine-owned progress state. The engine rebuilds it before every
// predicate call so that in-pass XP grants and unlocks are visible to
// later predicates in the same pass.
type View struct {
	Snapshot
	Progress      core.ProgressState
	UnlockedCount int
}

// Predicate is a pure condition over the current view. Predicates must be
// deterministic, must not mutate anything, and must return false (never
// panic) when the data they need does not exist yet.
type Predicate func(View) bool
