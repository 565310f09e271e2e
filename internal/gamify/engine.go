package gamify

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"fintrack/internal/core"
)

// Flags is the per-day gate store: composite string keys that, once set,
// stay set. It backs the once-per-category-per-day budget alerts and the
// daily all-under-budget bonus.
type Flags interface {
	Has(ctx context.Context, key string) bool
	Set(ctx context.Context, key string)
}

const (
	AlertExceeded = "exceeded"
	AlertWarning  = "warning"
)

// BudgetAlert reports a budget threshold crossing detected in a pass.
type BudgetAlert struct {
	Category core.Category `json:"category"`
	Kind     string        `json:"kind"`
	Percent  int           `json:"percent"`
}

// Result is everything a single evaluation pass produced. All rewards in
// it have already been applied to the engine's owned state.
type Result struct {
	CompletedChallenges  []Challenge      `json:"completed_challenges"`
	UnlockedAchievements []AchievementDef `json:"unlocked_achievements"`
	BudgetAlerts         []BudgetAlert    `json:"budget_alerts"`
	XPGained             int              `json:"xp_gained"`
	LeveledUp            bool             `json:"leveled_up"`
	KarmaDelta           int              `json:"karma_delta"`
}

// State is the engine-owned durable state, persisted as three JSON
// documents by the caller.
type State struct {
	Progress core.ProgressState
	Cohort   []Challenge
	Unlocked []Unlocked
}

// Engine owns progress state and the unlocked-achievement set, and is the
// only component allowed to mutate them. It reads the ledger through the
// Snapshot passed to each pass. Single-threaded by design: callers invoke
// it synchronously from mutation sites and the day-end timer.
type Engine struct {
	pool     []ChallengeDef
	poolIdx  map[string]ChallengeDef
	catalog  []AchievementDef
	flags    Flags
	rng      *rand.Rand

	progress    core.ProgressState
	cohort      []Challenge
	unlocked    []Unlocked
	unlockedIdx map[string]bool

	// pass accumulators, drained into each Result
	xpGained   int
	leveledUp  bool
	karmaDelta int
}

// New builds an engine from persisted state. A zero-value state starts a
// fresh profile at level 1 with full karma.
func New(state State, flags Flags, rng *rand.Rand) *Engine {
	if state.Progress.Level < 1 {
		state.Progress = core.NewProgress()
	}
	pool := ChallengePool()
	e := &Engine{
		pool:        pool,
		poolIdx:     poolIndex(pool),
		catalog:     Achievements(),
		flags:       flags,
		rng:         rng,
		progress:    state.Progress,
		cohort:      state.Cohort,
		unlocked:    state.Unlocked,
		unlockedIdx: make(map[string]bool, len(state.Unlocked)),
	}
	for _, u := range state.Unlocked {
		e.unlockedIdx[u.AchievementID] = true
	}
	return e
}

// State returns a copy of the engine-owned durable state for persistence.
func (e *Engine) State() State {
	return State{
		Progress: e.progress,
		Cohort:   append([]Challenge(nil), e.cohort...),
		Unlocked: append([]Unlocked(nil), e.unlocked...),
	}
}

func (e *Engine) Progress() core.ProgressState { return e.progress }
func (e *Engine) Cohort() []Challenge          { return append([]Challenge(nil), e.cohort...) }
func (e *Engine) UnlockedSet() []Unlocked      { return append([]Unlocked(nil), e.unlocked...) }
func (e *Engine) Catalog() []AchievementDef    { return e.catalog }

// Evaluate runs a full pass: cohort rollover, budget alerts, challenge
// completion and the achievement unlock scan. Called after every ledger
// mutation. Safe to call arbitrarily often; every reward is gated by the
// completed flag, the unlocked set or a per-day flag key.
func (e *Engine) Evaluate(ctx context.Context, snap Snapshot) Result {
	return e.evaluate(ctx, snap, false)
}

// EvaluateDayEnd additionally settles end-of-day challenges. Triggered by
// the 23:59 scheduler tick.
func (e *Engine) EvaluateDayEnd(ctx context.Context, snap Snapshot) Result {
	return e.evaluate(ctx, snap, true)
}

func (e *Engine) evaluate(ctx context.Context, snap Snapshot, dayEnd bool) Result {
	var res Result
	today := snap.Today()

	e.ensureCohort(today)
	e.checkBudgets(ctx, snap, today, &res)
	e.checkChallenges(snap, dayEnd, &res)
	e.scanAchievements(snap, &res)

	res.XPGained = e.xpGained
	res.LeveledUp = e.leveledUp
	res.KarmaDelta = e.karmaDelta
	e.xpGained, e.leveledUp, e.karmaDelta = 0, false, 0
	return res
}

// ensureCohort lazily rolls the daily cohort over: the first pass on a
// new calendar date discards the previous instances wholesale and samples
// a fresh set. Missed midnights need no special handling since the next
// pass regenerates from durable data.
func (e *Engine) ensureCohort(today core.Date) {
	if len(e.cohort) > 0 && e.cohort[0].Date.Equal(today.Time) {
		return
	}
	e.cohort = NewCohort(today, e.pool, CohortSize, e.rng)
	slog.Info("Generated daily challenge cohort", "date", today.Key(), "count", len(e.cohort))
}

func (e *Engine) view(snap Snapshot) View {
	return View{
		Snapshot:      snap,
		Progress:      e.progress,
		UnlockedCount: len(e.unlocked),
	}
}

// checkBudgets raises at most one alert per category, per kind, per day.
// Crossing 100% costs 10 karma; the 80% warning band only notifies. When
// every category is strictly under its limit and the ledger is non-empty,
// a +50 XP bonus is granted once per day.
func (e *Engine) checkBudgets(ctx context.Context, snap Snapshot, today core.Date, res *Result) {
	for _, c := range core.Categories() {
		b, ok := snap.Budgets[c]
		if !ok || b.Limit.Paise <= 0 {
			continue
		}
		percent := int(b.Spent.Paise * 100 / b.Limit.Paise)
		switch {
		case percent >= 100:
			key := alertKey(c, AlertExceeded, today)
			if !e.flags.Has(ctx, key) {
				e.flags.Set(ctx, key)
				e.AdjustKarma(-10)
				res.BudgetAlerts = append(res.BudgetAlerts, BudgetAlert{Category: c, Kind: AlertExceeded, Percent: percent})
			}
		case percent >= 80:
			key := alertKey(c, AlertWarning, today)
			if !e.flags.Has(ctx, key) {
				e.flags.Set(ctx, key)
				res.BudgetAlerts = append(res.BudgetAlerts, BudgetAlert{Category: c, Kind: AlertWarning, Percent: percent})
			}
		}
	}

	if len(snap.Transactions) == 0 {
		return
	}
	for _, b := range snap.Budgets {
		if b.Spent.Paise >= b.Limit.Paise {
			return
		}
	}
	bonusKey := "bonus_under_budget_" + today.Key()
	if !e.flags.Has(ctx, bonusKey) {
		e.flags.Set(ctx, bonusKey)
		e.GrantXP(50, "All budgets under control")
	}
}

// checkChallenges flips pending instances whose predicate holds. The
// transition is terminal: a completed challenge never reverts and its
// reward is granted exactly once.
func (e *Engine) checkChallenges(snap Snapshot, dayEnd bool, res *Result) {
	for i := range e.cohort {
		c := &e.cohort[i]
		if c.Completed {
			continue
		}
		def, ok := e.poolIdx[c.ID]
		if !ok {
			continue
		}
		if def.EndOfDay && !dayEnd {
			continue
		}
		if !def.Check(e.view(snap)) {
			continue
		}
		c.Completed = true
		e.progress.ChallengesCompleted++
		e.GrantXP(c.Reward, "Completed: "+def.Title)
		res.CompletedChallenges = append(res.CompletedChallenges, *c)
		slog.Info("Challenge completed", "id", c.ID, "reward", c.Reward)
	}
}

// scanAchievements walks the catalog in order and unlocks every
// definition that newly holds. The unlocked set is a one-way ratchet:
// already-unlocked IDs are skipped and never removed, so the scan is
// idempotent. The view is rebuilt per predicate so earlier unlocks and
// grants in this pass are visible to later entries.
func (e *Engine) scanAchievements(snap Snapshot, res *Result) {
	for _, def := range e.catalog {
		if e.unlockedIdx[def.ID] {
			continue
		}
		if !def.Check(e.view(snap)) {
			continue
		}
		e.unlocked = append(e.unlocked, Unlocked{AchievementID: def.ID, UnlockedAt: snap.Now})
		e.unlockedIdx[def.ID] = true
		res.UnlockedAchievements = append(res.UnlockedAchievements, def)
		slog.Info("Achievement unlocked", "id", def.ID, "tier", string(def.Tier))
	}
}

func alertKey(c core.Category, kind string, d core.Date) string {
	return fmt.Sprintf("alert_%s_%s_%s", c, kind, d.Key())
}
