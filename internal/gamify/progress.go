package gamify

import "log/slog"

// GrantXP adds XP and performs at most one level-up check. On level-up
// the XP counter resets to 0 and any overflow beyond the threshold is
// discarded, not carried into the new level. A grant of twice the
// threshold therefore still advances a single level; lifetime-XP
// achievement math depends on this exact behavior.
func (e *Engine) GrantXP(amount int, reason string) {
	if amount <= 0 {
		return
	}
	e.progress.XP += amount
	e.xpGained += amount
	if e.progress.XP >= e.progress.NextLevelXP() {
		e.progress.Level++
		e.progress.XP = 0
		e.leveledUp = true
		slog.Info("Level up", "level", e.progress.Level, "reason", reason)
	}
}

// AdjustKarma shifts karma by delta, clamped to [0,100]. The reported
// delta is the applied change after clamping.
func (e *Engine) AdjustKarma(delta int) {
	before := e.progress.Karma
	karma := before + delta
	if karma > 100 {
		karma = 100
	}
	if karma < 0 {
		karma = 0
	}
	e.progress.Karma = karma
	e.karmaDelta += karma - before
}
