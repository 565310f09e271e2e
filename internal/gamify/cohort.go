package gamify

import (
	"math/rand"

	"fintrack/internal/core"
)

// NewCohort draws n distinct challenges from the pool for the given date
// using a partial Fisher-Yates shuffle, so every subset is equally likely.
// If the pool holds fewer than n entries the whole pool is used.
func NewCohort(date core.Date, pool []ChallengeDef, n int, rng *rand.Rand) []Challenge {
	if n > len(pool) {
		n = len(pool)
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	cohort := make([]Challenge, 0, n)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		def := pool[idx[i]]
		cohort = append(cohort, Challenge{
			ID:     def.ID,
			Date:   date,
			Reward: def.Reward,
		})
	}
	return cohort
}
