// Package ledger owns the transaction list and the budget map, and is
// the only writer of both. Every mutation recomputes budget consumption,
// runs a gamification pass and persists the outcome.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/gamify"
	"fintrack/internal/notify"
	"fintrack/internal/storage"
)

// XP granted for manually logging a transaction, independent of any
// challenge reward.
const logTransactionXP = 10

var ErrTransactionNotFound = errors.New("transaction not found")

// Publisher is the notification collaborator boundary. Publishing is
// best-effort: failures are logged, never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, n *notify.Notification) error
}

// Service holds the in-memory working state and coordinates store,
// engine and notifier. Methods serialize through one mutex: evaluation
// passes must run to completion before the next mutation, mirroring the
// single-threaded model the engine assumes.
type Service struct {
	mu        sync.Mutex
	store     storage.Store
	engine    *gamify.Engine
	publisher Publisher
	now       func() time.Time

	transactions []core.Transaction
	budgets      map[core.Category]core.BudgetEntry
	darkMode     bool
	hasExported  bool
}

// NewService loads all persisted documents and reconstructs the engine.
// Missing keys mean a fresh profile: default budgets, level 1, no
// unlocks.
func NewService(ctx context.Context, store storage.Store, publisher Publisher, rng *rand.Rand) (*Service, error) {
	s := &Service{
		store:     store,
		publisher: publisher,
		now:       time.Now,
		budgets:   core.DefaultBudgets(),
	}

	if err := loadJSON(ctx, store, storage.KeyTransactions, &s.transactions); err != nil {
		return nil, err
	}
	var budgets map[core.Category]core.BudgetEntry
	if err := loadJSON(ctx, store, storage.KeyBudgets, &budgets); err != nil {
		return nil, err
	}
	if budgets != nil {
		s.budgets = budgets
	}
	if err := loadJSON(ctx, store, storage.KeyDarkMode, &s.darkMode); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, store, storage.KeyHasExported, &s.hasExported); err != nil {
		return nil, err
	}

	var state gamify.State
	if err := loadJSON(ctx, store, storage.KeyProgress, &state.Progress); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, store, storage.KeyChallenges, &state.Cohort); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, store, storage.KeyUnlocked, &state.Unlocked); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.engine = gamify.New(state, store, rng)

	return s, nil
}

func loadJSON(ctx context.Context, store storage.Store, key string, dst any) error {
	raw, err := store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// AddTransaction validates and stores a new transaction, grants the
// logging XP and runs an evaluation pass. A missing ID gets a fresh
// uuid; CreatedAt is stamped with the current clock.
func (s *Service) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, gamify.Result{}, err
	}

	s.transactions = append([]core.Transaction{tx}, s.transactions...)
	s.engine.GrantXP(logTransactionXP, "Logged a transaction")
	s.publish(ctx, &notify.Notification{
		Kind:      notify.KindTransactionLogged,
		Title:     "Transaction added",
		Detail:    fmt.Sprintf("%s %s ₹%.2f", tx.Kind, tx.Category, tx.Amount.Rupees()),
		XP:        logTransactionXP,
		Timestamp: s.now(),
	})

	res, err := s.afterMutation(ctx)
	if err != nil {
		return core.Transaction{}, gamify.Result{}, err
	}
	return tx, res, nil
}

// UpdateTransaction replaces the stored transaction with the same ID.
// The original ID and CreatedAt survive the edit; no logging XP is
// granted for edits.
func (s *Service) UpdateTransaction(ctx context.Context, id string, tx core.Transaction) (core.Transaction, gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return core.Transaction{}, gamify.Result{}, ErrTransactionNotFound
	}
	tx.ID = id
	tx.CreatedAt = s.transactions[idx].CreatedAt
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, gamify.Result{}, err
	}
	s.transactions[idx] = tx

	res, err := s.afterMutation(ctx)
	if err != nil {
		return core.Transaction{}, gamify.Result{}, err
	}
	return tx, res, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return gamify.Result{}, ErrTransactionNotFound
	}
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)

	return s.afterMutation(ctx)
}

// SetBudgetLimit updates one category's monthly limit.
func (s *Service) SetBudgetLimit(ctx context.Context, category core.Category, limit core.Money) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidCategory(category) {
		return gamify.Result{}, core.ErrInvalidCategory
	}
	if limit.Paise <= 0 {
		return gamify.Result{}, core.ErrInvalidAmount
	}
	entry := s.budgets[category]
	entry.Limit = limit
	s.budgets[category] = entry

	return s.afterMutation(ctx)
}

// SetDarkMode persists the display preference. The value is opaque here
// except that one achievement reads it.
func (s *Service) SetDarkMode(ctx context.Context, enabled bool) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = enabled
	return s.afterMutation(ctx)
}

// MarkExported records that the ledger was exported at least once.
func (s *Service) MarkExported(ctx context.Context) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hasExported = true
	return s.afterMutation(ctx)
}

// ProcessRecurring materializes recurring transactions whose next
// monthly occurrence falls on today, at most once per source transaction
// per day.
func (s *Service) ProcessRecurring(ctx context.Context) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := core.DateOf(s.now())
	var spawned []core.Transaction
	for _, t := range s.transactions {
		if !t.Recurring {
			continue
		}
		next := core.Date{Time: t.OccurredOn.AddDate(0, 1, 0)}
		if !next.Equal(today.Time) {
			continue
		}
		key := fmt.Sprintf("recur_%s_%s", t.ID, today.Key())
		if s.store.Has(ctx, key) {
			continue
		}
		s.store.Set(ctx, key)
		copyTx := t
		copyTx.ID = uuid.NewString()
		copyTx.OccurredOn = today
		copyTx.CreatedAt = s.now()
		spawned = append(spawned, copyTx)
		slog.InfoContext(ctx, "Recurring transaction materialized",
			"source_id", t.ID, "id", copyTx.ID, "category", string(t.Category))
	}
	if len(spawned) == 0 {
		return gamify.Result{}, nil
	}
	s.transactions = append(spawned, s.transactions...)
	return s.afterMutation(ctx)
}

// EvaluateDayEnd runs the 23:59 pass that settles end-of-day challenges.
func (s *Service) EvaluateDayEnd(ctx context.Context) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recomputeBudgets()
	res := s.engine.EvaluateDayEnd(ctx, s.snapshot())
	if err := s.persist(ctx); err != nil {
		return gamify.Result{}, err
	}
	s.publishResult(ctx, res)
	return res, nil
}

// Evaluate runs a pass without a ledger mutation, for callers that only
// need a refresh (startup, explicit re-check).
func (s *Service) Evaluate(ctx context.Context) (gamify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.afterMutation(ctx)
}

func (s *Service) indexOf(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// afterMutation is the single evaluation path: recompute derived budget
// spend, run the engine, persist everything, publish events.
func (s *Service) afterMutation(ctx context.Context) (gamify.Result, error) {
	s.recomputeBudgets()
	res := s.engine.Evaluate(ctx, s.snapshot())
	if err := s.persist(ctx); err != nil {
		return gamify.Result{}, err
	}
	s.publishResult(ctx, res)
	return res, nil
}

// recomputeBudgets derives each category's spent from scratch: full
// reset, then resum of the current month's expenses. Spent is never
// stored independently, so double counting cannot survive a recompute.
func (s *Service) recomputeBudgets() {
	today := core.DateOf(s.now())
	for c, b := range s.budgets {
		b.Spent = core.Money{}
		s.budgets[c] = b
	}
	for _, t := range s.transactions {
		if t.Kind != core.Expense || !t.OccurredOn.SameMonth(today) {
			continue
		}
		b, ok := s.budgets[t.Category]
		if !ok {
			continue
		}
		b.Spent.Paise += t.Amount.Paise
		s.budgets[t.Category] = b
	}
}

func (s *Service) snapshot() gamify.Snapshot {
	txs := make([]core.Transaction, len(s.transactions))
	copy(txs, s.transactions)
	budgets := make(map[core.Category]core.BudgetEntry, len(s.budgets))
	for c, b := range s.budgets {
		budgets[c] = b
	}
	return gamify.Snapshot{
		Transactions: txs,
		Budgets:      budgets,
		HasExported:  s.hasExported,
		DarkMode:     s.darkMode,
		Now:          s.now(),
	}
}

func (s *Service) persist(ctx context.Context) error {
	state := s.engine.State()
	docs := map[string]any{
		storage.KeyTransactions: s.transactions,
		storage.KeyBudgets:      s.budgets,
		storage.KeyProgress:     state.Progress,
		storage.KeyChallenges:   state.Cohort,
		storage.KeyUnlocked:     state.Unlocked,
		storage.KeyDarkMode:     s.darkMode,
		storage.KeyHasExported:  s.hasExported,
	}
	for key, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if err := s.store.Save(ctx, key, raw); err != nil {
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	return nil
}

func (s *Service) publishResult(ctx context.Context, res gamify.Result) {
	for _, c := range res.CompletedChallenges {
		s.publish(ctx, &notify.Notification{
			Kind:      notify.KindChallengeCompleted,
			Title:     "Challenge completed",
			Detail:    c.ID,
			XP:        c.Reward,
			Timestamp: s.now(),
		})
	}
	for _, a := range res.UnlockedAchievements {
		s.publish(ctx, &notify.Notification{
			Kind:      notify.KindAchievementUnlocked,
			Title:     "Achievement unlocked: " + a.Name,
			Detail:    string(a.Tier),
			Timestamp: s.now(),
		})
	}
	for _, alert := range res.BudgetAlerts {
		s.publish(ctx, &notify.Notification{
			Kind:      notify.KindBudgetAlert,
			Title:     fmt.Sprintf("Budget %s for %s", alert.Kind, alert.Category),
			Detail:    fmt.Sprintf("%d%% of limit used", alert.Percent),
			Timestamp: s.now(),
		})
	}
	if res.LeveledUp {
		s.publish(ctx, &notify.Notification{
			Kind:      notify.KindLevelUp,
			Title:     fmt.Sprintf("Level up! You're now Level %d", s.engine.Progress().Level),
			Level:     s.engine.Progress().Level,
			Timestamp: s.now(),
		})
	}
}

func (s *Service) publish(ctx context.Context, n *notify.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		// Notification loss is acceptable; ledger state is already saved.
		slog.ErrorContext(ctx, "Failed to publish notification",
			"kind", n.Kind, "error", err)
	}
}

// Read accessors. Each returns a copy; callers never see internal slices.

func (s *Service) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Service) Budgets() map[core.Category]core.BudgetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[core.Category]core.BudgetEntry, len(s.budgets))
	for c, b := range s.budgets {
		out[c] = b
	}
	return out
}

func (s *Service) Progress() core.ProgressState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Progress()
}

func (s *Service) Cohort() []gamify.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Cohort()
}

func (s *Service) UnlockedSet() []gamify.Unlocked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.UnlockedSet()
}

func (s *Service) Catalog() []gamify.AchievementDef {
	return s.engine.Catalog()
}

func (s *Service) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

func (s *Service) Overview() core.MonthOverview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Overview(s.transactions, core.DateOf(s.now()))
}

// SetClock overrides the service clock. Test hook.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
