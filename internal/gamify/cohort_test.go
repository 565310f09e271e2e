package gamify

import (
	"math/rand"
	"testing"

	"fintrack/internal/core"
)

func TestNewCohort(t *testing.T) {
	pool := ChallengePool()
	date := core.NewDate(2026, 8, 31)

	t.Run("draws are distinct across many seeds", func(t *testing.T) {
		for seed := int64(0); seed < 100; seed++ {
			rng := rand.New(rand.NewSource(seed))
			cohort := NewCohort(date, pool, CohortSize, rng)
			if len(cohort) != CohortSize {
				t.Fatalf("seed %d: size = %d, want %d", seed, len(cohort), CohortSize)
			}
			seen := make(map[string]bool, len(cohort))
			for _, c := range cohort {
				if seen[c.ID] {
					t.Fatalf("seed %d: duplicate challenge %s", seed, c.ID)
				}
				seen[c.ID] = true
			}
		}
	})

	t.Run("instances carry the date and pool reward", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		idx := poolIndex(pool)
		for _, c := range NewCohort(date, pool, CohortSize, rng) {
			def, ok := idx[c.ID]
			if !ok {
				t.Fatalf("challenge %s is not in the pool", c.ID)
			}
			if c.Reward != def.Reward {
				t.Errorf("challenge %s reward = %d, want %d", c.ID, c.Reward, def.Reward)
			}
			if !c.Date.Equal(date.Time) {
				t.Errorf("challenge %s date = %s, want %s", c.ID, c.Date.Key(), date.Key())
			}
			if c.Completed {
				t.Errorf("challenge %s starts completed", c.ID)
			}
		}
	})

	t.Run("request larger than pool is clamped", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		cohort := NewCohort(date, pool, len(pool)+10, rng)
		if len(cohort) != len(pool) {
			t.Errorf("size = %d, want %d", len(cohort), len(pool))
		}
	})

	t.Run("every pool entry appears under some seed", func(t *testing.T) {
		appeared := make(map[string]bool)
		for seed := int64(0); seed < 200; seed++ {
			rng := rand.New(rand.NewSource(seed))
			for _, c := range NewCohort(date, pool, CohortSize, rng) {
				appeared[c.ID] = true
			}
		}
		for _, def := range pool {
			if !appeared[def.ID] {
				t.Errorf("challenge %s never drawn in 200 seeds", def.ID)
			}
		}
	})
}
