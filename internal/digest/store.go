package digest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/storage"
)

// KeyPrefix prefixes the per-day storage key, e.g.
// "jobTrackerDigest_2026-03-04".
const KeyPrefix = "jobTrackerDigest_"

// Key returns the storage key of the digest for date's calendar day in
// date's location.
func Key(date time.Time) string {
	return KeyPrefix + date.Format(time.DateOnly)
}

// Store persists one digest per calendar day.
type Store struct {
	db  storage.Adapter
	log *zap.Logger
}

// NewStore returns a Store over db.
func NewStore(db storage.Adapter, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Save writes entries as the digest for date, replacing any earlier one.
func (s *Store) Save(ctx context.Context, date time.Time, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := storage.SaveJSON(ctx, s.db, Key(date), entries); err != nil {
		return fmt.Errorf("save digest: %w", err)
	}
	return nil
}

// Load returns the digest for date. ok is false when none has been generated
// (or the stored value is unreadable); a generated digest with no entries
// returns an empty, non-nil slice and ok true.
func (s *Store) Load(ctx context.Context, date time.Time) (entries []Entry, ok bool, err error) {
	var stored []Entry
	found, err := storage.LoadJSON(ctx, s.db, s.log, Key(date), &stored)
	if err != nil {
		return nil, false, fmt.Errorf("load digest: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	if stored == nil {
		stored = []Entry{}
	}
	return stored, true, nil
}
