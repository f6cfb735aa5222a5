// Package profile persists the user's preference profile.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/model"
	"jobmate/job-tracker/internal/storage"
)

// Key is the storage key of the persisted profile.
const Key = "jobTrackerPreferences"

// Store holds the current profile and whether one was ever saved. The
// zero-profile state ("no preferences set") differs from a saved profile
// whose fields are all empty.
type Store struct {
	mu    sync.RWMutex
	db    storage.Adapter
	prefs model.Preferences
	saved bool
}

// Open rehydrates the profile from db. A stored profile is merged over the
// defaults, so fields missing from older blobs keep their default values.
// The presence of the key alone marks the profile as saved; an unparseable
// blob keeps the defaults.
func Open(ctx context.Context, db storage.Adapter, log *zap.Logger) (*Store, error) {
	s := &Store{db: db, prefs: model.DefaultPreferences()}

	raw, ok, err := db.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	if !ok {
		return s, nil
	}
	s.saved = true

	merged := model.DefaultPreferences()
	if err := json.Unmarshal(raw, &merged); err != nil {
		log.Warn("discarding unparseable preferences", zap.Error(err))
		return s, nil
	}
	s.prefs = merged.Normalized()
	return s, nil
}

// Get returns the current profile and whether one has been saved.
func (s *Store) Get() (model.Preferences, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePrefs(s.prefs), s.saved
}

// Saved returns a pointer to a copy of the profile, or nil when none has been
// saved. This is the form the ranking pipeline expects.
func (s *Store) Saved() *model.Preferences {
	p, ok := s.Get()
	if !ok {
		return nil
	}
	return &p
}

// Save replaces the profile wholesale. The threshold is clamped before it is
// written.
func (s *Store) Save(ctx context.Context, p model.Preferences) (model.Preferences, error) {
	p = clonePrefs(p.Normalized())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.SaveJSON(ctx, s.db, Key, p); err != nil {
		return model.Preferences{}, err
	}
	s.prefs = p
	s.saved = true
	return clonePrefs(p), nil
}

func clonePrefs(p model.Preferences) model.Preferences {
	p.PreferredLocations = append([]string{}, p.PreferredLocations...)
	p.PreferredModes = append([]string{}, p.PreferredModes...)
	return p
}
