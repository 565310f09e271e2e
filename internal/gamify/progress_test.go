package gamify

import (
	"math/rand"
	"testing"

	"fintrack/internal/core"
)

func newTestEngine(state State) *Engine {
	return New(state, newFakeFlags(), rand.New(rand.NewSource(1)))
}

func TestGrantXP(t *testing.T) {
	tests := []struct {
		name        string
		start       core.ProgressState
		amount      int
		wantXP      int
		wantLevel   int
		wantLevelUp bool
	}{
		{
			name:      "accumulates below threshold",
			start:     core.ProgressState{XP: 0, Level: 1, Karma: 100},
			amount:    10,
			wantXP:    10,
			wantLevel: 1,
		},
		{
			name:        "exact threshold levels up and resets",
			start:       core.ProgressState{XP: 0, Level: 1, Karma: 100},
			amount:      500,
			wantXP:      0,
			wantLevel:   2,
			wantLevelUp: true,
		},
		{
			name:        "overflow is discarded on level up",
			start:       core.ProgressState{XP: 490, Level: 1, Karma: 100},
			amount:      200,
			wantXP:      0,
			wantLevel:   2,
			wantLevelUp: true,
		},
		{
			name:        "huge grant still advances a single level",
			start:       core.ProgressState{XP: 0, Level: 1, Karma: 100},
			amount:      5000,
			wantXP:      0,
			wantLevel:   2,
			wantLevelUp: true,
		},
		{
			name:      "threshold scales with level",
			start:     core.ProgressState{XP: 0, Level: 3, Karma: 100},
			amount:    1499,
			wantXP:    1499,
			wantLevel: 3,
		},
		{
			name:      "zero grant is ignored",
			start:     core.ProgressState{XP: 42, Level: 1, Karma: 100},
			amount:    0,
			wantXP:    42,
			wantLevel: 1,
		},
		{
			name:      "negative grant is ignored",
			start:     core.ProgressState{XP: 42, Level: 1, Karma: 100},
			amount:    -100,
			wantXP:    42,
			wantLevel: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(State{Progress: tt.start})
			e.GrantXP(tt.amount, "test")

			got := e.Progress()
			if got.XP != tt.wantXP {
				t.Errorf("XP = %d, want %d", got.XP, tt.wantXP)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", got.Level, tt.wantLevel)
			}
			if e.leveledUp != tt.wantLevelUp {
				t.Errorf("leveledUp = %v, want %v", e.leveledUp, tt.wantLevelUp)
			}
		})
	}
}

func TestAdjustKarma(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		delta     int
		wantKarma int
		wantDelta int
	}{
		{name: "simple decrease", start: 100, delta: -10, wantKarma: 90, wantDelta: -10},
		{name: "clamped at zero", start: 5, delta: -1000, wantKarma: 0, wantDelta: -5},
		{name: "clamped at hundred", start: 95, delta: 1000, wantKarma: 100, wantDelta: 5},
		{name: "no-op at ceiling", start: 100, delta: 10, wantKarma: 100, wantDelta: 0},
		{name: "no-op at floor", start: 0, delta: -10, wantKarma: 0, wantDelta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(State{Progress: core.ProgressState{XP: 0, Level: 1, Karma: tt.start}})
			e.AdjustKarma(tt.delta)

			if got := e.Progress().Karma; got != tt.wantKarma {
				t.Errorf("Karma = %d, want %d", got, tt.wantKarma)
			}
			if e.karmaDelta != tt.wantDelta {
				t.Errorf("karmaDelta = %d, want %d", e.karmaDelta, tt.wantDelta)
			}
		})
	}
}

func TestLifetimeXP(t *testing.T) {
	e := newTestEngine(State{})
	e.GrantXP(500, "test") // level 2, xp 0
	e.GrantXP(120, "test")

	if got := e.Progress().LifetimeXP(); got != 620 {
		t.Errorf("LifetimeXP() = %d, want 620", got)
	}
}
