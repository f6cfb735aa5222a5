package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmate/job-tracker/internal/model"
)

func baseJob() model.Job {
	return model.Job{
		ID:            1,
		Title:         "Senior React Developer",
		Company:       "Acme",
		Location:      "Pune",
		Mode:          model.ModeHybrid,
		Experience:    "3-5",
		SalaryRange:   "12–18 LPA",
		Skills:        []string{"React", "TypeScript"},
		Description:   "Build react dashboards for enterprise customers.",
		Source:        model.SourceNaukri,
		PostedDaysAgo: 5,
		ApplyURL:      "https://example.com/apply/1",
	}
}

func TestScore_EmptyProfileOldNonPremiumJobIsZero(t *testing.T) {
	assert.Equal(t, 0, Score(baseJob(), model.DefaultPreferences()))
}

func TestScore_TitleAndDescriptionKeyword(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = "react"
	assert.Equal(t, 40, Score(baseJob(), prefs))

	job := baseJob()
	job.Description = "Frontend work."
	assert.Equal(t, 25, Score(job, prefs))
}

func TestScore_KeywordsAreTrimmedAndCaseFolded(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = " , REACT  ,,"
	assert.Equal(t, 40, Score(baseJob(), prefs))
}

func TestScore_KeywordsUseFullCaseFolding(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = "strasse"
	job := baseJob()
	job.Title = "Straße Developer"
	assert.Equal(t, 25, Score(job, prefs))
}

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("STRASSE"), Fold("Straße"))
	assert.Equal(t, "react", Fold("ReAcT"))
}

func TestScore_EmptyKeywordTokensNeverMatch(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = " , ,"
	assert.Equal(t, 0, Score(baseJob(), prefs))
}

func TestScore_IndividualRules(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*model.Job, *model.Preferences)
		want int
	}{
		{"location", func(_ *model.Job, p *model.Preferences) { p.PreferredLocations = []string{"Pune"} }, 15},
		{"location case sensitive", func(_ *model.Job, p *model.Preferences) { p.PreferredLocations = []string{"pune"} }, 0},
		{"mode", func(_ *model.Job, p *model.Preferences) { p.PreferredModes = []string{"Hybrid"} }, 10},
		{"experience", func(_ *model.Job, p *model.Preferences) { p.ExperienceLevel = "3-5" }, 10},
		{"experience mismatch", func(_ *model.Job, p *model.Preferences) { p.ExperienceLevel = "1-3" }, 0},
		{"skills", func(_ *model.Job, p *model.Preferences) { p.Skills = "go, typescript" }, 15},
		{"skills no overlap", func(_ *model.Job, p *model.Preferences) { p.Skills = "go, rust" }, 0},
		{"recent", func(j *model.Job, _ *model.Preferences) { j.PostedDaysAgo = 2 }, 5},
		{"not recent", func(j *model.Job, _ *model.Preferences) { j.PostedDaysAgo = 3 }, 0},
		{"premium source", func(j *model.Job, _ *model.Preferences) { j.Source = model.SourceLinkedIn }, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			job, prefs := baseJob(), model.DefaultPreferences()
			c.mod(&job, &prefs)
			assert.Equal(t, c.want, Score(job, prefs))
		})
	}
}

func TestScore_AllRulesCapAt100(t *testing.T) {
	job := baseJob()
	job.PostedDaysAgo = 0
	job.Source = model.SourceLinkedIn
	prefs := model.Preferences{
		RoleKeywords:       "react",
		PreferredLocations: []string{"Pune"},
		PreferredModes:     []string{"Hybrid"},
		ExperienceLevel:    "3-5",
		Skills:             "react",
		MinMatchScore:      40,
	}
	// 25+15+15+10+10+15+5+5 = 100
	assert.Equal(t, 100, Score(job, prefs))
}

func TestScore_MonotonicPerRule(t *testing.T) {
	job := baseJob()
	prefs := model.DefaultPreferences()
	steps := []func(){
		func() { prefs.RoleKeywords = "react" },
		func() { prefs.PreferredLocations = []string{"Pune"} },
		func() { prefs.PreferredModes = []string{"Hybrid"} },
		func() { prefs.ExperienceLevel = "3-5" },
		func() { prefs.Skills = "React" },
		func() { job.PostedDaysAgo = 1 },
		func() { job.Source = model.SourceLinkedIn },
	}
	prev := Score(job, prefs)
	for i, step := range steps {
		step()
		got := Score(job, prefs)
		assert.GreaterOrEqual(t, got, prev, "step %d decreased score", i)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
}

func TestScorer_ConfigurablePremiumSource(t *testing.T) {
	job := baseJob()
	prefs := model.DefaultPreferences()

	assert.Equal(t, 0, NewScorer("").Score(job, prefs))
	assert.Equal(t, 5, NewScorer("Naukri").Score(job, prefs))

	job.Source = model.SourceLinkedIn
	assert.Equal(t, 5, NewScorer("").Score(job, prefs))
	assert.Equal(t, 0, NewScorer("Indeed").Score(job, prefs))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"go", "react native"}, SplitList(" Go ,, React Native ,"))
	assert.Empty(t, SplitList(""))
}

func TestBand(t *testing.T) {
	assert.Equal(t, "strong", Band(80))
	assert.Equal(t, "good", Band(79))
	assert.Equal(t, "good", Band(60))
	assert.Equal(t, "fair", Band(40))
	assert.Equal(t, "weak", Band(39))
}
