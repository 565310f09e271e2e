package gamify

import (
	"fintrack/internal/core"
)

// ChallengeDef is a static pool entry. IDs are stable: completed
// instances are persisted by ID and matched back against the pool.
type ChallengeDef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
	Target      int    `json:"target"`
	// EndOfDay challenges are only settled by the day-end pass, since
	// they assert something about the whole day.
	EndOfDay bool      `json:"end_of_day"`
	Check    Predicate `json:"-"`
}

// Challenge is one generated instance of a pool entry, live for a single
// calendar date. Completed flips once and never reverts; the whole cohort
// is discarded at day rollover.
type Challenge struct {
	ID        string    `json:"id"`
	Date      core.Date `json:"date"`
	Reward    int       `json:"reward"`
	Completed bool      `json:"completed"`
}

// CohortSize is the number of challenge instances active per day.
const CohortSize = 3

// ChallengePool returns the full set of daily challenge definitions.
func ChallengePool() []ChallengeDef {
	return []ChallengeDef{
		{
			ID:          "log_3_transactions",
			Title:       "Transaction Logger",
			Description: "Log at least 3 transactions today",
			Reward:      100,
			Target:      3,
			Check: func(v View) bool {
				return len(core.OnDate(v.Transactions, v.Today())) >= 3
			},
		},
		{
			ID:          "track_income",
			Title:       "Income Tracker",
			Description: "Add at least one income entry today",
			Reward:      80,
			Target:      1,
			Check: func(v View) bool {
				for _, t := range core.OnDate(v.Transactions, v.Today()) {
					if t.Kind == core.Income {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "categorize_all",
			Title:       "Perfect Categorization",
			Description: "All today's transactions have proper categories",
			Reward:      120,
			Target:      1,
			Check: func(v View) bool {
				today := core.OnDate(v.Transactions, v.Today())
				if len(today) == 0 {
					return false
				}
				for _, t := range today {
					if t.Category == "" || t.Category == core.Other {
						return false
					}
				}
				return true
			},
		},
		{
			ID:          "morning_tracker",
			Title:       "Early Bird",
			Description: "Log your first transaction before noon",
			Reward:      90,
			Target:      1,
			Check: func(v View) bool {
				today := core.OnDate(v.Transactions, v.Today())
				if len(today) == 0 {
					return false
				}
				first := today[0]
				for _, t := range today[1:] {
					if t.CreatedAt.Before(first.CreatedAt) {
						first = t
					}
				}
				return first.CreatedAt.Hour() < 12
			},
		},
		{
			ID:          "budget_discipline",
			Title:       "Budget Discipline",
			Description: "Finish the day with every category under 90% of its budget",
			Reward:      110,
			Target:      1,
			EndOfDay:    true,
			Check: func(v View) bool {
				if len(core.OnDate(v.Transactions, v.Today())) == 0 {
					return false
				}
				for _, b := range v.Budgets {
					if float64(b.Spent.Paise) >= 0.9*float64(b.Limit.Paise) {
						return false
					}
				}
				return true
			},
		},
	}
}

// poolIndex maps challenge IDs back to their definitions.
func poolIndex(pool []ChallengeDef) map[string]ChallengeDef {
	idx := make(map[string]ChallengeDef, len(pool))
	for _, def := range pool {
		idx[def.ID] = def
	}
	return idx
}
