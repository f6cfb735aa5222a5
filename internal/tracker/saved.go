package tracker

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/storage"
)

// SavedKey is the storage key of the bookmarked job ids.
const SavedKey = "kodnest-saved-jobs"

// SavedStore is the set of bookmarked job ids, kept in the order they were
// saved.
type SavedStore struct {
	mu  sync.RWMutex
	db  storage.Adapter
	ids []int
}

// OpenSaved rehydrates the saved set. Absent or unparseable state starts
// empty.
func OpenSaved(ctx context.Context, db storage.Adapter, log *zap.Logger) (*SavedStore, error) {
	s := &SavedStore{db: db, ids: []int{}}

	var ids []int
	found, err := storage.LoadJSON(ctx, db, log, SavedKey, &ids)
	if err != nil {
		return nil, err
	}
	if found {
		for _, id := range ids {
			if !slices.Contains(s.ids, id) {
				s.ids = append(s.ids, id)
			}
		}
	}
	return s, nil
}

// Toggle saves id if it is not saved and unsaves it otherwise. It returns
// the new state.
func (s *SavedStore) Toggle(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.ids)
	saved := false
	if i := slices.Index(next, id); i >= 0 {
		next = slices.Delete(next, i, i+1)
	} else {
		next = append(next, id)
		saved = true
	}

	if err := storage.SaveJSON(ctx, s.db, SavedKey, next); err != nil {
		return !saved, err
	}
	s.ids = next
	return saved, nil
}

// IsSaved reports whether id is bookmarked.
func (s *SavedStore) IsSaved(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns the saved ids in the order they were saved.
func (s *SavedStore) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}
