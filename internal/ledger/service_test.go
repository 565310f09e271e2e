package ledger

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/notify"
	"fintrack/internal/storage"
)

var testClock = time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

// recordingPublisher captures published notifications; failing makes
// every publish return an error.
type recordingPublisher struct {
	published []notify.Notification
	failing   bool
}

func (p *recordingPublisher) Publish(_ context.Context, n *notify.Notification) error {
	if p.failing {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, *n)
	return nil
}

func newTestService(t *testing.T, store storage.Store, pub Publisher) *Service {
	t.Helper()
	if store == nil {
		store = storage.NewMemory()
	}
	s, err := NewService(context.Background(), store, pub, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	s.SetClock(func() time.Time { return testClock })
	return s
}

// quietTransaction cannot complete any daily challenge: an afternoon
// expense in the catch-all category.
func quietTransaction() core.Transaction {
	return core.Transaction{
		Kind:       core.Expense,
		Amount:     core.Money{Paise: 100_00},
		Category:   core.Other,
		OccurredOn: core.DateOf(testClock),
	}
}

func TestAddTransaction(t *testing.T) {
	s := newTestService(t, nil, nil)

	created, res, err := s.AddTransaction(context.Background(), quietTransaction())
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if created.ID == "" {
		t.Error("created transaction has no ID")
	}
	if !created.CreatedAt.Equal(testClock) {
		t.Errorf("CreatedAt = %v, want service clock", created.CreatedAt)
	}
	// +10 for logging, +50 daily all-under-budget bonus.
	if res.XPGained != 60 {
		t.Errorf("XPGained = %d, want 60", res.XPGained)
	}
	if got := len(s.Transactions()); got != 1 {
		t.Errorf("transaction count = %d, want 1", got)
	}
}

func TestAddTransaction_Invalid(t *testing.T) {
	s := newTestService(t, nil, nil)

	tx := quietTransaction()
	tx.Category = "groceries"
	if _, _, err := s.AddTransaction(context.Background(), tx); !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("AddTransaction() error = %v, want ErrInvalidCategory", err)
	}
	if got := len(s.Transactions()); got != 0 {
		t.Errorf("invalid transaction was stored, count = %d", got)
	}
}

func TestUpdateTransactionPreservesIdentity(t *testing.T) {
	s := newTestService(t, nil, nil)

	created, _, err := s.AddTransaction(context.Background(), quietTransaction())
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	xpBefore := s.Progress().LifetimeXP()

	edit := quietTransaction()
	edit.Amount = core.Money{Paise: 999_00}
	edit.Notes = "corrected"
	updated, _, err := s.UpdateTransaction(context.Background(), created.ID, edit)
	if err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID changed on edit: %s -> %s", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on edit: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.Amount.Paise != 999_00 {
		t.Errorf("Amount = %d, want 99900", updated.Amount.Paise)
	}
	// Edits grant no logging XP.
	if got := s.Progress().LifetimeXP(); got != xpBefore {
		t.Errorf("edit changed XP: %d -> %d", xpBefore, got)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	s := newTestService(t, nil, nil)
	if _, _, err := s.UpdateTransaction(context.Background(), "missing", quietTransaction()); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("UpdateTransaction() error = %v, want ErrTransactionNotFound", err)
	}
}

func TestDeleteTransactionRecomputesSpent(t *testing.T) {
	s := newTestService(t, nil, nil)

	food := quietTransaction()
	food.Category = core.Food
	food.Amount = core.Money{Paise: 1200_00}
	created, _, err := s.AddTransaction(context.Background(), food)
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	if got := s.Budgets()[core.Food].Spent.Paise; got != 1200_00 {
		t.Errorf("Spent after add = %d, want 120000", got)
	}

	if _, err := s.DeleteTransaction(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if got := s.Budgets()[core.Food].Spent.Paise; got != 0 {
		t.Errorf("Spent after delete = %d, want 0", got)
	}
	if _, err := s.DeleteTransaction(context.Background(), created.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("second delete error = %v, want ErrTransactionNotFound", err)
	}
}

func TestSpentOnlyCountsCurrentMonthExpenses(t *testing.T) {
	s := newTestService(t, nil, nil)

	old := quietTransaction()
	old.Category = core.Food
	old.OccurredOn = core.DateOf(testClock).AddDays(-40)
	if _, _, err := s.AddTransaction(context.Background(), old); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	income := quietTransaction()
	income.Kind = core.Income
	income.Category = core.Food
	if _, _, err := s.AddTransaction(context.Background(), income); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	if got := s.Budgets()[core.Food].Spent.Paise; got != 0 {
		t.Errorf("Spent = %d, want 0: old months and income must not count", got)
	}
}

func TestSetBudgetLimit(t *testing.T) {
	s := newTestService(t, nil, nil)

	if _, err := s.SetBudgetLimit(context.Background(), core.Food, core.Money{Paise: 7500_00}); err != nil {
		t.Fatalf("SetBudgetLimit() error = %v", err)
	}
	if got := s.Budgets()[core.Food].Limit.Paise; got != 7500_00 {
		t.Errorf("Limit = %d, want 750000", got)
	}

	if _, err := s.SetBudgetLimit(context.Background(), "groceries", core.Money{Paise: 100}); !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("unknown category error = %v, want ErrInvalidCategory", err)
	}
	if _, err := s.SetBudgetLimit(context.Background(), core.Food, core.Money{}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("zero limit error = %v, want ErrInvalidAmount", err)
	}
}

func TestStatePersistsAcrossRestarts(t *testing.T) {
	store := storage.NewMemory()
	s := newTestService(t, store, nil)

	if _, _, err := s.AddTransaction(context.Background(), quietTransaction()); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	wantXP := s.Progress().LifetimeXP()
	wantUnlocked := len(s.UnlockedSet())

	restarted := newTestService(t, store, nil)
	if got := len(restarted.Transactions()); got != 1 {
		t.Errorf("restarted transaction count = %d, want 1", got)
	}
	if got := restarted.Progress().LifetimeXP(); got != wantXP {
		t.Errorf("restarted LifetimeXP = %d, want %d", got, wantXP)
	}
	if got := len(restarted.UnlockedSet()); got != wantUnlocked {
		t.Errorf("restarted unlocked count = %d, want %d", got, wantUnlocked)
	}

	// A fresh pass over restored state must not re-grant anything.
	res, err := restarted.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.XPGained != 0 || len(res.UnlockedAchievements) != 0 {
		t.Errorf("restart pass re-granted rewards: %+v", res)
	}
}

func TestProcessRecurringOncePerDay(t *testing.T) {
	s := newTestService(t, nil, nil)

	rec := quietTransaction()
	rec.Recurring = true
	rec.OccurredOn = core.Date{Time: core.DateOf(testClock).AddDate(0, -1, 0)}
	if _, _, err := s.AddTransaction(context.Background(), rec); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	if _, err := s.ProcessRecurring(context.Background()); err != nil {
		t.Fatalf("ProcessRecurring() error = %v", err)
	}
	if got := len(s.Transactions()); got != 2 {
		t.Fatalf("transaction count after processing = %d, want 2", got)
	}

	spawned := s.Transactions()[0]
	if !spawned.OccurredOn.Equal(core.DateOf(testClock).Time) {
		t.Errorf("spawned OccurredOn = %s, want today", spawned.OccurredOn.Key())
	}
	if !spawned.Recurring {
		t.Error("spawned copy lost the recurring flag")
	}

	// Same day again: the per-day gate blocks a second spawn.
	if _, err := s.ProcessRecurring(context.Background()); err != nil {
		t.Fatalf("ProcessRecurring() error = %v", err)
	}
	if got := len(s.Transactions()); got != 2 {
		t.Errorf("transaction count after re-processing = %d, want 2", got)
	}
}

func TestProcessRecurringIgnoresNonDue(t *testing.T) {
	s := newTestService(t, nil, nil)

	rec := quietTransaction()
	rec.Recurring = true
	rec.OccurredOn = core.DateOf(testClock).AddDays(-10)
	if _, _, err := s.AddTransaction(context.Background(), rec); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	if _, err := s.ProcessRecurring(context.Background()); err != nil {
		t.Fatalf("ProcessRecurring() error = %v", err)
	}
	if got := len(s.Transactions()); got != 1 {
		t.Errorf("transaction count = %d, want 1: nothing was due", got)
	}
}

func TestMarkExportedUnlocksAchievement(t *testing.T) {
	s := newTestService(t, nil, nil)

	if _, err := s.MarkExported(context.Background()); err != nil {
		t.Fatalf("MarkExported() error = %v", err)
	}

	found := false
	for _, u := range s.UnlockedSet() {
		if u.AchievementID == "export_data" {
			found = true
		}
	}
	if !found {
		t.Error("export_data did not unlock after MarkExported")
	}
}

func TestDarkModeUnlocksAchievement(t *testing.T) {
	s := newTestService(t, nil, nil)

	if _, err := s.SetDarkMode(context.Background(), true); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	if !s.DarkMode() {
		t.Error("DarkMode() = false after enabling")
	}

	found := false
	for _, u := range s.UnlockedSet() {
		if u.AchievementID == "dark_mode_user" {
			found = true
		}
	}
	if !found {
		t.Error("dark_mode_user did not unlock after enabling dark mode")
	}
}

func TestPublishing(t *testing.T) {
	t.Run("transaction logging publishes an event", func(t *testing.T) {
		pub := &recordingPublisher{}
		s := newTestService(t, nil, pub)

		if _, _, err := s.AddTransaction(context.Background(), quietTransaction()); err != nil {
			t.Fatalf("AddTransaction() error = %v", err)
		}

		found := false
		for _, n := range pub.published {
			if n.Kind == notify.KindTransactionLogged {
				found = true
			}
		}
		if !found {
			t.Errorf("no %s event published, got %+v", notify.KindTransactionLogged, pub.published)
		}
	})

	t.Run("publish failure does not fail the mutation", func(t *testing.T) {
		pub := &recordingPublisher{failing: true}
		s := newTestService(t, nil, pub)

		if _, _, err := s.AddTransaction(context.Background(), quietTransaction()); err != nil {
			t.Errorf("AddTransaction() error = %v, want nil despite publish failure", err)
		}
		if got := len(s.Transactions()); got != 1 {
			t.Errorf("transaction count = %d, want 1", got)
		}
	})
}
