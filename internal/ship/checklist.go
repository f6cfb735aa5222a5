// Package ship tracks release readiness: the manual test checklist and the
// proof-of-work links that together decide the ship status.
package ship

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/storage"
)

// ChecklistKey is the storage key of the checklist state.
const ChecklistKey = "jobTrackerTestChecklist"

// ErrUnknownItem is returned when toggling an id that is not on the checklist.
var ErrUnknownItem = errors.New("unknown checklist item")

// Item is one manual verification step.
type Item struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	HowToTest string `json:"howToTest"`
}

// Items is the fixed checklist, in display order.
var Items = []Item{
	{ID: "prefs-persist", Label: "Preferences persist after refresh", HowToTest: "Save preferences in Settings, refresh the page, and verify they're still there."},
	{ID: "match-score", Label: "Match score calculates correctly", HowToTest: "Set preferences with known keywords, check Dashboard for expected score badges."},
	{ID: "match-toggle", Label: `"Show only matches" toggle works`, HowToTest: "Enable the toggle on Dashboard and verify only jobs above your threshold appear."},
	{ID: "save-persist", Label: "Save job persists after refresh", HowToTest: "Save a job, refresh the page, and confirm it still appears in Saved."},
	{ID: "apply-tab", Label: "Apply opens in new tab", HowToTest: "Click the Apply button on a job card and verify it opens in a new browser tab."},
	{ID: "status-persist", Label: "Status update persists after refresh", HowToTest: "Change a job's status, refresh, and confirm the status badge remains."},
	{ID: "status-filter", Label: "Status filter works correctly", HowToTest: "Change a job to 'Applied', then filter by 'Applied' on Dashboard."},
	{ID: "digest-top10", Label: "Digest generates top 10 by score", HowToTest: "Generate a digest and verify it lists up to 10 jobs ordered by match score."},
	{ID: "digest-persist", Label: "Digest persists for the day", HowToTest: "Generate a digest, refresh, and confirm the same digest loads automatically."},
	{ID: "no-errors", Label: "No console errors on main pages", HowToTest: "Open browser DevTools, visit each page, and check for red errors in the console."},
}

func knownItem(id string) bool {
	for _, it := range Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Checklist holds the pass/fail mark of each item.
type Checklist struct {
	mu      sync.RWMutex
	db      storage.Adapter
	checked map[string]bool
}

// OpenChecklist rehydrates the checklist. Absent or unparseable state starts
// with nothing passed.
func OpenChecklist(ctx context.Context, db storage.Adapter, log *zap.Logger) (*Checklist, error) {
	c := &Checklist{db: db, checked: make(map[string]bool)}

	var stored map[string]bool
	found, err := storage.LoadJSON(ctx, db, log, ChecklistKey, &stored)
	if err != nil {
		return nil, err
	}
	if found && stored != nil {
		c.checked = stored
	}
	return c, nil
}

// Toggle flips the mark of item id and returns the new value.
func (c *Checklist) Toggle(ctx context.Context, id string) (bool, error) {
	if !knownItem(id) {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := maps.Clone(c.checked)
	next[id] = !next[id]
	if err := storage.SaveJSON(ctx, c.db, ChecklistKey, next); err != nil {
		return c.checked[id], err
	}
	c.checked = next
	return next[id], nil
}

// Reset clears every mark and removes the stored state.
func (c *Checklist) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Delete(ctx, ChecklistKey); err != nil {
		return fmt.Errorf("reset checklist: %w", err)
	}
	c.checked = make(map[string]bool)
	return nil
}

// Checked returns the mark of every checklist item.
func (c *Checklist) Checked() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]bool, len(Items))
	for _, it := range Items {
		out[it.ID] = c.checked[it.ID]
	}
	return out
}

// Passed counts the items marked as passed. Stale ids in stored state are
// not counted.
func (c *Checklist) Passed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range Items {
		if c.checked[it.ID] {
			n++
		}
	}
	return n
}

// AllPassed reports whether every item is marked.
func (c *Checklist) AllPassed() bool {
	return c.Passed() == len(Items)
}
