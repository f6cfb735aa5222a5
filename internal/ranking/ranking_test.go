package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/job-tracker/internal/match"
	"jobmate/job-tracker/internal/model"
)

func fixture() []model.Job {
	return []model.Job{
		{ID: 1, Title: "Go Backend Engineer", Company: "Razorpay", Location: "Bangalore", Mode: model.ModeRemote, Experience: "1-3", SalaryRange: "10–18 LPA", Source: model.SourceLinkedIn, PostedDaysAgo: 4, Description: "go services"},
		{ID: 2, Title: "React Developer", Company: "Swiggy", Location: "Pune", Mode: model.ModeHybrid, Experience: "0-1", SalaryRange: "₹25k–₹40k/month", Source: model.SourceNaukri, PostedDaysAgo: 1, Description: "react frontend"},
		{ID: 3, Title: "Data Analyst", Company: "Infosys", Location: "Pune", Mode: model.ModeOnsite, Experience: "Fresher", SalaryRange: "Not disclosed", Source: model.SourceIndeed, PostedDaysAgo: 9},
		{ID: 4, Title: "SDE Intern", Company: "Go Digit", Location: "Bangalore", Mode: model.ModeRemote, Experience: "Fresher", SalaryRange: "3–5 LPA", Source: model.SourceLinkedIn, PostedDaysAgo: 1},
		{ID: 5, Title: "Platform Engineer", Company: "Zoho", Location: "Chennai", Mode: model.ModeOnsite, Experience: "3-5", SalaryRange: "18–30 LPA", Source: model.SourceIndeed, PostedDaysAgo: 0, Description: "kubernetes and go"},
	}
}

func ids(s []Scored) []int {
	out := make([]int, 0, len(s))
	for _, x := range s {
		out = append(out, x.Job.ID)
	}
	return out
}

func TestRank_DefaultIsLatestAndStable(t *testing.T) {
	got := Rank(fixture(), nil, Filters{}, nil, match.Scorer{})
	assert.Equal(t, []int{5, 2, 4, 1, 3}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Job.PostedDaysAgo, got[i].Job.PostedDaysAgo)
	}
}

func TestRank_Oldest(t *testing.T) {
	got := Rank(fixture(), nil, Filters{Sort: SortOldest}, nil, match.Scorer{})
	assert.Equal(t, []int{3, 1, 2, 4, 5}, ids(got))
}

func TestRank_Salary(t *testing.T) {
	got := Rank(fixture(), nil, Filters{Sort: SortSalary}, nil, match.Scorer{})
	// 40 (k/month), 30, 18, 5, 0
	assert.Equal(t, []int{2, 5, 1, 4, 3}, ids(got))
}

func TestRank_MatchScoreDescending(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = "go"
	got := Rank(fixture(), &prefs, Filters{Sort: SortMatchScore}, nil, match.Scorer{})
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	assert.Equal(t, 1, got[0].Job.ID)
}

func TestRank_KeywordMatchesTitleOrCompany(t *testing.T) {
	got := Rank(fixture(), nil, Filters{Keyword: "  GO "}, nil, match.Scorer{})
	assert.ElementsMatch(t, []int{1, 4}, ids(got))
}

func TestRank_KeywordFoldsLikeScorer(t *testing.T) {
	jobs := append(fixture(), model.Job{ID: 6, Title: "Straße Developer", Company: "Bahn", Location: "Pune", PostedDaysAgo: 2})

	got := Rank(jobs, nil, Filters{Keyword: "STRASSE"}, nil, match.Scorer{})
	assert.Equal(t, []int{6}, ids(got))

	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = "strasse"
	got = Rank(jobs, &prefs, Filters{Keyword: "strasse", Sort: SortMatchScore}, nil, match.Scorer{})
	require.Len(t, got, 1)
	assert.Positive(t, got[0].Score)
}

func TestRank_ExactFilters(t *testing.T) {
	cases := []struct {
		name  string
		f     Filters
		field func(model.Job) string
		want  string
	}{
		{"location", Filters{Location: "Pune"}, func(j model.Job) string { return j.Location }, "Pune"},
		{"mode", Filters{Mode: "Remote"}, func(j model.Job) string { return string(j.Mode) }, "Remote"},
		{"experience", Filters{Experience: "Fresher"}, func(j model.Job) string { return j.Experience }, "Fresher"},
		{"source", Filters{Source: "Indeed"}, func(j model.Job) string { return string(j.Source) }, "Indeed"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Rank(fixture(), nil, c.f, nil, match.Scorer{})
			require.NotEmpty(t, got)
			for _, s := range got {
				assert.Equal(t, c.want, c.field(s.Job))
			}
		})
	}
}

func TestRank_AllSentinelKeepsEverything(t *testing.T) {
	f := Filters{Location: All, Mode: All, Experience: All, Source: All, Status: All}
	assert.Len(t, Rank(fixture(), nil, f, nil, match.Scorer{}), 5)
}

func TestRank_StatusFilter(t *testing.T) {
	statuses := map[int]model.Status{2: model.StatusApplied, 5: model.StatusApplied}
	lookup := func(id int) model.Status {
		if s, ok := statuses[id]; ok {
			return s
		}
		return model.StatusNotApplied
	}
	got := Rank(fixture(), nil, Filters{Status: "Applied"}, lookup, match.Scorer{})
	assert.Equal(t, []int{5, 2}, ids(got))

	got = Rank(fixture(), nil, Filters{Status: "Not Applied"}, lookup, match.Scorer{})
	assert.ElementsMatch(t, []int{1, 3, 4}, ids(got))
}

func TestRank_OnlyMatches(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.RoleKeywords = "react"
	prefs.MinMatchScore = 40

	got := Rank(fixture(), &prefs, Filters{OnlyMatches: true}, nil, match.Scorer{})
	assert.Equal(t, []int{2}, ids(got))
	for _, s := range got {
		assert.GreaterOrEqual(t, s.Score, prefs.MinMatchScore)
	}

	// Without a saved profile the toggle has no effect.
	assert.Len(t, Rank(fixture(), nil, Filters{OnlyMatches: true}, nil, match.Scorer{}), 5)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	jobs := fixture()
	_ = Rank(jobs, nil, Filters{Sort: SortOldest, Location: "Pune"}, nil, match.Scorer{})
	assert.Equal(t, fixture(), jobs)
}

func TestMaxSalary(t *testing.T) {
	assert.Equal(t, 18, MaxSalary("10–18 LPA"))
	assert.Equal(t, 40, MaxSalary("₹25k–₹40k/month"))
	assert.Equal(t, 0, MaxSalary("Not disclosed"))
	assert.Equal(t, 0, MaxSalary(""))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortLatest, k)

	for _, want := range SortKeys {
		k, err := ParseSortKey(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, k)
	}

	_, err = ParseSortKey("Relevance")
	assert.Error(t, err)
}
