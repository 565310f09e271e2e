// Package scheduler fires the day-end evaluation pass at 23:59 local
// time and re-arms itself for the next day.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"fintrack/internal/gamify"
)

// DayEndHour and DayEndMinute define the local wall-clock time of the
// daily settlement pass.
const (
	DayEndHour   = 23
	DayEndMinute = 59
)

// Evaluator is the ledger-side hook the scheduler drives.
type Evaluator interface {
	EvaluateDayEnd(ctx context.Context) (gamify.Result, error)
	ProcessRecurring(ctx context.Context) (gamify.Result, error)
}

type DayEnd struct {
	evaluator Evaluator
	now       func() time.Time
}

func NewDayEnd(evaluator Evaluator) *DayEnd {
	return &DayEnd{evaluator: evaluator, now: time.Now}
}

// NextDayEnd returns the next 23:59 strictly after now, in now's
// location. At exactly 23:59 the returned instant is tomorrow's.
func NextDayEnd(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), DayEndHour, DayEndMinute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is cancelled. On startup it materializes due
// recurring transactions, then settles end-of-day challenges at each
// 23:59, re-running recurring processing as part of the same wakeup.
func (d *DayEnd) Run(ctx context.Context) error {
	if _, err := d.evaluator.ProcessRecurring(ctx); err != nil {
		slog.ErrorContext(ctx, "Initial recurring processing failed", "error", err)
	}

	for {
		next := NextDayEnd(d.now())
		slog.InfoContext(ctx, "Day-end evaluation scheduled",
			"at", next.Format(time.RFC3339),
			"in", time.Until(next).Round(time.Second))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		res, err := d.evaluator.EvaluateDayEnd(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Day-end evaluation failed", "error", err)
			continue
		}
		slog.InfoContext(ctx, "Day-end evaluation complete",
			"challenges_completed", len(res.CompletedChallenges),
			"achievements_unlocked", len(res.UnlockedAchievements),
			"xp_gained", res.XPGained)

		// Last chance to materialize anything due today before the
		// date rolls over.
		if _, err := d.evaluator.ProcessRecurring(ctx); err != nil {
			slog.ErrorContext(ctx, "Recurring processing failed", "error", err)
		}
	}
}
