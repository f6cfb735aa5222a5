// Package digest builds, persists and renders the daily top-matches digest.
package digest

import (
	"cmp"
	"slices"

	"jobmate/job-tracker/internal/match"
	"jobmate/job-tracker/internal/model"
)

// Size is the maximum number of entries in a digest.
const Size = 10

// Entry is a job projected into the digest, with its score at generation
// time.
type Entry struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	MatchScore int    `json:"matchScore"`
	ApplyURL   string `json:"applyUrl"`
}

// Build scores every job against prefs and returns the top Size entries:
// highest score first, more recent postings winning ties. Remaining ties keep
// catalog order.
func Build(jobs []model.Job, prefs model.Preferences, scorer match.Scorer) []Entry {
	type ranked struct {
		job   model.Job
		score int
	}
	all := make([]ranked, 0, len(jobs))
	for _, j := range jobs {
		all = append(all, ranked{job: j, score: scorer.Score(j, prefs)})
	}

	slices.SortStableFunc(all, func(a, b ranked) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.job.PostedDaysAgo, b.job.PostedDaysAgo)
	})

	n := min(len(all), Size)
	out := make([]Entry, 0, n)
	for _, r := range all[:n] {
		out = append(out, Entry{
			ID:         r.job.ID,
			Title:      r.job.Title,
			Company:    r.job.Company,
			Location:   r.job.Location,
			Experience: r.job.Experience,
			MatchScore: r.score,
			ApplyURL:   r.job.ApplyURL,
		})
	}
	return out
}
