// Package ranking filters and orders the catalog for display.
package ranking

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"jobmate/job-tracker/internal/match"
	"jobmate/job-tracker/internal/model"
)

// All is the sentinel filter value that disables an exact-match filter.
const All = "All"

// SortKey selects the ordering of ranked results.
type SortKey string

const (
	SortLatest     SortKey = "Latest"
	SortOldest     SortKey = "Oldest"
	SortMatchScore SortKey = "Match Score"
	SortSalary     SortKey = "Salary"
)

// SortKeys lists every sort key in display order.
var SortKeys = []SortKey{SortLatest, SortOldest, SortMatchScore, SortSalary}

// ParseSortKey validates a raw sort key. An empty string selects Latest.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortLatest, nil
	}
	k := SortKey(s)
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Filters is the ephemeral filter/sort state owned by the caller. Empty
// exact-match fields behave like All.
type Filters struct {
	Keyword     string
	Location    string
	Mode        string
	Experience  string
	Source      string
	Status      string
	Sort        SortKey
	OnlyMatches bool
}

// StatusLookup reports the application status of a job.
type StatusLookup func(jobID int) model.Status

// Scored pairs a job with its match score.
type Scored struct {
	Job   model.Job `json:"job"`
	Score int       `json:"matchScore"`
}

// Rank applies the filter pipeline to jobs and returns the surviving jobs in
// the selected order. prefs is nil when no profile has been saved; scores
// are then computed against the default profile and the only-matches filter
// is skipped. jobs is never modified.
func Rank(jobs []model.Job, prefs *model.Preferences, f Filters, status StatusLookup, scorer match.Scorer) []Scored {
	profile := model.DefaultPreferences()
	if prefs != nil {
		profile = *prefs
	}

	out := make([]Scored, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, Scored{Job: j, Score: scorer.Score(j, profile)})
	}

	if f.OnlyMatches && prefs != nil {
		threshold := model.ClampScore(prefs.MinMatchScore)
		out = slices.DeleteFunc(out, func(s Scored) bool { return s.Score < threshold })
	}

	if kw := match.Fold(strings.TrimSpace(f.Keyword)); kw != "" {
		out = slices.DeleteFunc(out, func(s Scored) bool {
			return !strings.Contains(match.Fold(s.Job.Title), kw) &&
				!strings.Contains(match.Fold(s.Job.Company), kw)
		})
	}

	out = keepEqual(out, f.Location, func(j model.Job) string { return j.Location })
	out = keepEqual(out, f.Mode, func(j model.Job) string { return string(j.Mode) })
	out = keepEqual(out, f.Experience, func(j model.Job) string { return j.Experience })
	out = keepEqual(out, f.Source, func(j model.Job) string { return string(j.Source) })
	if status == nil {
		status = func(int) model.Status { return model.StatusNotApplied }
	}
	out = keepEqual(out, f.Status, func(j model.Job) string { return string(status(j.ID)) })

	sortScored(out, f.Sort)
	return out
}

func keepEqual(in []Scored, want string, field func(model.Job) string) []Scored {
	if want == "" || want == All {
		return in
	}
	return slices.DeleteFunc(in, func(s Scored) bool { return field(s.Job) != want })
}

func sortScored(s []Scored, key SortKey) {
	switch key {
	case SortOldest:
		slices.SortStableFunc(s, func(a, b Scored) int { return b.Job.PostedDaysAgo - a.Job.PostedDaysAgo })
	case SortMatchScore:
		slices.SortStableFunc(s, func(a, b Scored) int { return b.Score - a.Score })
	case SortSalary:
		slices.SortStableFunc(s, func(a, b Scored) int {
			return MaxSalary(b.Job.SalaryRange) - MaxSalary(a.Job.SalaryRange)
		})
	default:
		slices.SortStableFunc(s, func(a, b Scored) int { return a.Job.PostedDaysAgo - b.Job.PostedDaysAgo })
	}
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// MaxSalary extracts every digit run from a salary range and returns the
// largest. A range without digits yields 0.
func MaxSalary(salaryRange string) int {
	best := 0
	for _, run := range digitRun.FindAllString(salaryRange, -1) {
		v, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		best = max(best, v)
	}
	return best
}
