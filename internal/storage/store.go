// Package storage is the persistence collaborator: a key/value store of
// JSON documents plus write-once per-day flag keys. The engine and the
// ledger never talk to SQL directly; everything goes through Store.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("key not found")

// Well-known document keys.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
	KeyProgress     = "progress"
	KeyChallenges   = "challenges"
	KeyUnlocked     = "unlocked_achievements"
	KeyDarkMode     = "dark_mode"
	KeyHasExported  = "has_exported"
)

// Store persists JSON documents under string keys. Has/Set manage
// composite flag keys (alert_<category>_<kind>_<date>, recur_<id>_<date>)
// used for per-day idempotency gates; both are best-effort and log
// instead of failing, since a lost flag only risks a duplicate
// notification, never corrupted ledger state.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Has(ctx context.Context, key string) bool
	Set(ctx context.Context, key string)
	Close() error
}
