package gamify

import (
	"strings"
	"time"

	"fintrack/internal/core"
)

// Predicate building blocks shared by the challenge pool and the
// achievement catalog. Each returns a closed Predicate so catalog entries
// read as data.

func txCountAtLeast(n int) Predicate {
	return func(v View) bool { return len(v.Transactions) >= n }
}

func kindCountAtLeast(kind core.Kind, n int) Predicate {
	return func(v View) bool { return core.CountByKind(v.Transactions, kind) >= n }
}

func categoryCountAtLeast(c core.Category, n int) Predicate {
	return func(v View) bool { return core.CountByCategory(v.Transactions, c) >= n }
}

func levelAtLeast(n int) Predicate {
	return func(v View) bool { return v.Progress.Level >= n }
}

func lifetimeXPAtLeast(n int) Predicate {
	return func(v View) bool { return v.Progress.LifetimeXP() >= n }
}

func karmaAtLeast(n int) Predicate {
	return func(v View) bool { return v.Progress.Karma >= n }
}

func challengesCompletedAtLeast(n int) Predicate {
	return func(v View) bool { return v.Progress.ChallengesCompleted >= n }
}

func unlockedAtLeast(n int) Predicate {
	return func(v View) bool { return v.UnlockedCount >= n }
}

func balanceAtLeast(paise int64) Predicate {
	return func(v View) bool { return core.Balance(v.Transactions).Paise >= paise }
}

func balancePositive() Predicate {
	return func(v View) bool { return core.Balance(v.Transactions).Paise > 0 }
}

func totalByKindAtLeast(kind core.Kind, paise int64) Predicate {
	return func(v View) bool { return core.TotalByKind(v.Transactions, kind).Paise >= paise }
}

// trackedForDays is true once the oldest transaction date is at least d
// days before the snapshot clock. False on an empty ledger.
func trackedForDays(d int) Predicate {
	return func(v View) bool {
		if len(v.Transactions) == 0 {
			return false
		}
		oldest := v.Transactions[0].OccurredOn
		for _, t := range v.Transactions[1:] {
			if t.OccurredOn.Before(oldest.Time) {
				oldest = t.OccurredOn
			}
		}
		return v.Now.Sub(oldest.Time) >= time.Duration(d)*24*time.Hour
	}
}

// createdBeforeHour matches any transaction whose creation timestamp
// (not its calendar date) falls before the given hour.
func createdBeforeHour(hour int) Predicate {
	return func(v View) bool {
		for _, t := range v.Transactions {
			if t.CreatedAt.Hour() < hour {
				return true
			}
		}
		return false
	}
}

func createdAtOrAfterHour(hour int) Predicate {
	return func(v View) bool {
		for _, t := range v.Transactions {
			if t.CreatedAt.Hour() >= hour {
				return true
			}
		}
		return false
	}
}

func anyOnWeekend() Predicate {
	return func(v View) bool {
		for _, t := range v.Transactions {
			wd := t.OccurredOn.Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				return true
			}
		}
		return false
	}
}

func recurringCountAtLeast(n int) Predicate {
	return func(v View) bool {
		count := 0
		for _, t := range v.Transactions {
			if t.Recurring {
				count++
			}
		}
		return count >= n
	}
}

func notesCountAtLeast(n int) Predicate {
	return func(v View) bool {
		count := 0
		for _, t := range v.Transactions {
			if strings.TrimSpace(t.Notes) != "" {
				count++
			}
		}
		return count >= n
	}
}

// dailyStreak scans the last window days walking backward from today and
// succeeds if any run of `required` consecutive tracked days appears. The
// window is larger than the required run so streaks that ended a few days
// ago still count.
func dailyStreak(required, window int) Predicate {
	return func(v View) bool {
		if len(v.Transactions) == 0 {
			return false
		}
		seen := make(map[string]bool, len(v.Transactions))
		for _, t := range v.Transactions {
			seen[t.OccurredOn.Key()] = true
		}
		today := v.Today()
		run := 0
		for i := 0; i < window; i++ {
			if seen[today.AddDays(-i).Key()] {
				run++
				if run >= required {
					return true
				}
			} else {
				run = 0
			}
		}
		return false
	}
}

// categoriesCovered is true when every category has been used at least
// once; monthScoped restricts the check to the snapshot's current month.
func categoriesCovered(monthScoped bool) Predicate {
	return func(v View) bool {
		txs := v.Transactions
		if monthScoped {
			txs = core.InMonth(txs, v.Today())
		}
		used := make(map[core.Category]bool, len(txs))
		for _, t := range txs {
			used[t.Category] = true
		}
		for _, c := range core.Categories() {
			if !used[c] {
				return false
			}
		}
		return true
	}
}

// allBudgetsWithin is true when every category's monthly spend is within
// ratio of its limit (ratio 1.0 means spent <= limit).
func allBudgetsWithin(ratio float64) Predicate {
	return func(v View) bool {
		for _, b := range v.Budgets {
			if float64(b.Spent.Paise) > ratio*float64(b.Limit.Paise) {
				return false
			}
		}
		return true
	}
}

// weekBudgetDiscipline recomputes per-category spend over the trailing
// seven days, independently of the monthly budget figures, and requires
// each category's week spend to fit inside its monthly limit. A category
// with spend but no budget entry fails the check.
func weekBudgetDiscipline() Predicate {
	return func(v View) bool {
		weekAgo := v.Now.AddDate(0, 0, -7)
		spend := make(map[core.Category]int64)
		for _, t := range v.Transactions {
			if t.Kind == core.Expense && !t.OccurredOn.Before(weekAgo) {
				spend[t.Category] += t.Amount.Paise
			}
		}
		for c, paise := range spend {
			b, ok := v.Budgets[c]
			if !ok || paise > b.Limit.Paise {
				return false
			}
		}
		return true
	}
}

// budgetsCustomized is true once any limit differs from the defaults.
func budgetsCustomized() Predicate {
	defaults := core.DefaultBudgets()
	return func(v View) bool {
		for c, b := range v.Budgets {
			if def, ok := defaults[c]; ok && b.Limit != def.Limit {
				return true
			}
		}
		return false
	}
}

// monthSurplus is true when the current month's income strictly exceeds
// its expenses and at least something was spent.
func monthSurplus() Predicate {
	return func(v View) bool {
		month := core.InMonth(v.Transactions, v.Today())
		income := core.TotalByKind(month, core.Income).Paise
		expenses := core.TotalByKind(month, core.Expense).Paise
		return income > expenses && expenses > 0
	}
}

// monthExpensesBelow is true when the current month has expenses and they
// total strictly less than the given amount.
func monthExpensesBelow(paise int64) Predicate {
	return func(v View) bool {
		month := core.InMonth(v.Transactions, v.Today())
		expenses := core.TotalByKind(month, core.Expense).Paise
		return expenses > 0 && expenses < paise
	}
}
