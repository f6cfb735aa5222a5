// Package match computes the relevance of a job posting to a preference
// profile.
//
// Scoring is additive: every rule below contributes independently and the
// total is capped at 100.
//
//	title keyword hit        +25
//	description keyword hit  +15
//	preferred location       +15
//	preferred mode           +10
//	experience band          +10
//	skill overlap            +15
//	posted within 2 days      +5
//	premium source            +5
package match

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"jobmate/job-tracker/internal/model"
)

const (
	pointsTitle       = 25
	pointsDescription = 15
	pointsLocation    = 15
	pointsMode        = 10
	pointsExperience  = 10
	pointsSkills      = 15
	pointsRecent      = 5
	pointsSource      = 5

	recentDays = 2
	maxScore   = 100
)

// DefaultPremiumSource is the source that earns the source bonus unless a
// Scorer is configured otherwise.
const DefaultPremiumSource = model.SourceLinkedIn

// Scorer scores jobs against preferences. The zero value uses
// DefaultPremiumSource.
type Scorer struct {
	PremiumSource model.Source
}

// NewScorer returns a Scorer awarding the source bonus to premium. An empty
// premium falls back to DefaultPremiumSource.
func NewScorer(premium string) Scorer {
	return Scorer{PremiumSource: model.Source(premium)}
}

// Score returns the match score of job for prefs using the default scorer.
func Score(job model.Job, prefs model.Preferences) int {
	return Scorer{}.Score(job, prefs)
}

// Score returns an integer in [0,100]. It never fails: empty preference
// fields simply contribute nothing.
func (s Scorer) Score(job model.Job, prefs model.Preferences) int {
	keywords := SplitList(prefs.RoleKeywords)
	userSkills := SplitList(prefs.Skills)

	score := 0
	if len(keywords) > 0 {
		if containsAny(Fold(job.Title), keywords) {
			score += pointsTitle
		}
		if containsAny(Fold(job.Description), keywords) {
			score += pointsDescription
		}
	}
	if slices.Contains(prefs.PreferredLocations, job.Location) {
		score += pointsLocation
	}
	if slices.Contains(prefs.PreferredModes, string(job.Mode)) {
		score += pointsMode
	}
	if prefs.ExperienceLevel != "" && prefs.ExperienceLevel == job.Experience {
		score += pointsExperience
	}
	if len(userSkills) > 0 && overlaps(job.Skills, userSkills) {
		score += pointsSkills
	}
	if job.PostedDaysAgo <= recentDays {
		score += pointsRecent
	}
	if job.Source == s.premium() {
		score += pointsSource
	}

	return min(score, maxScore)
}

func (s Scorer) premium() model.Source {
	if s.PremiumSource == "" {
		return DefaultPremiumSource
	}
	return s.PremiumSource
}

// SplitList splits a comma-separated field into case-folded, trimmed,
// non-empty tokens.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = Fold(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func overlaps(jobSkills, userSkills []string) bool {
	for _, s := range jobSkills {
		if slices.Contains(userSkills, Fold(s)) {
			return true
		}
	}
	return false
}

// Fold applies full Unicode case folding ("Straße" and "STRASSE" fold alike).
// Every case-insensitive comparison in scoring and filtering goes through it.
// A Caser keeps state, so one is built per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Band buckets a score the way job cards colour it.
func Band(score int) string {
	switch {
	case score >= 80:
		return "strong"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	}
	return "weak"
}
