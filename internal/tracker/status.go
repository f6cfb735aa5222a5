package tracker

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobmate/job-tracker/internal/model"
	"jobmate/job-tracker/internal/storage"
)

// Storage keys of the status map and its change log.
const (
	StatusKey  = "jobTrackerStatus"
	ChangesKey = "jobTrackerStatusChanges"
)

// MaxChanges caps the change log; the oldest entries are evicted first.
const MaxChanges = 50

// StatusChange is one immutable change-log entry.
type StatusChange struct {
	ID     string       `json:"id,omitempty"`
	JobID  int          `json:"jobId"`
	Status model.Status `json:"status"`
	Date   time.Time    `json:"date"`
}

// StatusStore maps job ids to application statuses and keeps a log of
// non-default changes, newest first.
type StatusStore struct {
	mu       sync.RWMutex
	db       storage.Adapter
	now      func() time.Time
	statuses map[int]model.Status
	changes  []StatusChange
}

// OpenStatus rehydrates the status map and change log. Unknown status values
// in stored state are dropped.
func OpenStatus(ctx context.Context, db storage.Adapter, log *zap.Logger, now func() time.Time) (*StatusStore, error) {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &StatusStore{
		db:       db,
		now:      now,
		statuses: make(map[int]model.Status),
		changes:  []StatusChange{},
	}

	var raw map[int]string
	if _, err := storage.LoadJSON(ctx, db, log, StatusKey, &raw); err != nil {
		return nil, err
	}
	for id, v := range raw {
		st, err := model.ParseStatus(v)
		if err != nil {
			log.Warn("dropping stored status", zap.Int("jobId", id), zap.Error(err))
			continue
		}
		s.statuses[id] = st
	}

	var changes []StatusChange
	found, err := storage.LoadJSON(ctx, db, log, ChangesKey, &changes)
	if err != nil {
		return nil, err
	}
	if found {
		if len(changes) > MaxChanges {
			changes = changes[:MaxChanges]
		}
		s.changes = changes
	}
	return s, nil
}

// Get returns the status of id, Not Applied when none was set.
func (s *StatusStore) Get(id int) model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.statuses[id]; ok {
		return st
	}
	return model.StatusNotApplied
}

// All returns a copy of every explicitly set status.
func (s *StatusStore) All() map[int]model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]model.Status, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// Set records status for id. A non-default status also prepends exactly one
// change-log entry, which is returned; change is nil for the default status.
// Memory changes only once both the map and the log are stored; if the log
// write fails the previous map is written back.
func (s *StatusStore) Set(ctx context.Context, id int, status model.Status) (change *StatusChange, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int]model.Status, len(s.statuses)+1)
	for k, v := range s.statuses {
		next[k] = v
	}
	next[id] = status

	var entry *StatusChange
	changes := s.changes
	if !model.IsDefault(status) {
		entry = &StatusChange{
			ID:     uuid.NewString(),
			JobID:  id,
			Status: status,
			Date:   s.now().UTC(),
		}
		changes = append([]StatusChange{*entry}, s.changes...)
		if len(changes) > MaxChanges {
			changes = changes[:MaxChanges]
		}
	}

	if err := storage.SaveJSON(ctx, s.db, StatusKey, next); err != nil {
		return nil, err
	}
	if entry != nil {
		if err := storage.SaveJSON(ctx, s.db, ChangesKey, changes); err != nil {
			if rbErr := storage.SaveJSON(ctx, s.db, StatusKey, s.statuses); rbErr != nil {
				return nil, fmt.Errorf("%w (restoring status map: %v)", err, rbErr)
			}
			return nil, err
		}
	}

	s.statuses = next
	s.changes = changes
	return entry, nil
}

// Changes returns the change log, newest first.
func (s *StatusStore) Changes() []StatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.changes)
}
