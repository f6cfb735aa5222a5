package digest

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule describes when the simulated daily digest is meant to go out.
// Nothing runs on it; generation stays a manual action, and the schedule
// only tells the caller whether today's digest is due.
type Schedule struct {
	spec  string
	sched cron.Schedule
}

// ParseSchedule parses a standard five-field cron expression.
func ParseSchedule(spec string) (*Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse digest schedule %q: %w", spec, err)
	}
	return &Schedule{spec: spec, sched: sched}, nil
}

// String returns the cron expression.
func (s *Schedule) String() string { return s.spec }

// NextRun returns the first scheduled time strictly after now.
func (s *Schedule) NextRun(now time.Time) time.Time {
	return s.sched.Next(now)
}

// Due reports whether a scheduled time has passed on now's calendar day.
func (s *Schedule) Due(now time.Time) bool {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	first := s.sched.Next(midnight.Add(-time.Nanosecond))
	return !first.After(now)
}
