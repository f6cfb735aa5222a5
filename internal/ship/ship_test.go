package ship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobmate/job-tracker/internal/storage"
)

func passAll(t *testing.T, c *Checklist) {
	t.Helper()
	for _, it := range Items {
		on, err := c.Toggle(context.Background(), it.ID)
		require.NoError(t, err)
		require.True(t, on)
	}
}

var validLinks = Links{
	LovableLink:  "https://lovable.dev/projects/tracker",
	GithubLink:   "https://github.com/someone/tracker",
	DeployedLink: "https://tracker.example.app",
}

// ── Checklist ────────────────────────────────────────────────────────────────

func TestChecklist_HasTenUniqueItems(t *testing.T) {
	require.Len(t, Items, 10)
	seen := map[string]bool{}
	for _, it := range Items {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
		assert.NotEmpty(t, it.Label)
		assert.NotEmpty(t, it.HowToTest)
	}
}

func TestChecklist_ToggleAndPersist(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()

	c, err := OpenChecklist(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Passed())

	on, err := c.Toggle(ctx, "match-score")
	require.NoError(t, err)
	assert.True(t, on)

	reopened, err := OpenChecklist(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Passed())
	assert.True(t, reopened.Checked()["match-score"])
	assert.Len(t, reopened.Checked(), len(Items))

	on, err = reopened.Toggle(ctx, "match-score")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, 0, reopened.Passed())
}

func TestChecklist_UnknownItem(t *testing.T) {
	c, err := OpenChecklist(context.Background(), storage.NewMemory(), zap.NewNop())
	require.NoError(t, err)

	_, err = c.Toggle(context.Background(), "fly-to-moon")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestChecklist_AllPassedAndReset(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()
	c, err := OpenChecklist(ctx, db, zap.NewNop())
	require.NoError(t, err)

	passAll(t, c)
	assert.True(t, c.AllPassed())

	require.NoError(t, c.Reset(ctx))
	assert.False(t, c.AllPassed())
	assert.Equal(t, 0, c.Passed())

	_, ok, err := db.Get(ctx, ChecklistKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecklist_IgnoresStaleStoredIDs(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()
	require.NoError(t, db.Set(ctx, ChecklistKey, []byte(`{"old-item":true,"apply-tab":true}`)))

	c, err := OpenChecklist(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Passed())
	assert.NotContains(t, c.Checked(), "old-item")
}

// ── Proof links ──────────────────────────────────────────────────────────────

func TestIsValidURL(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/x":    true,
		"http://a.b":              true,
		"  https://a.example.com": true,
		"https://localhost":       false,
		"ftp://files.example.com": false,
		"github.com/x":            false,
		"":                        false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidURL(in), in)
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusNotStarted, StatusOf(Links{}, true))
	assert.Equal(t, StatusInProgress, StatusOf(Links{GithubLink: "not a url"}, true))
	assert.Equal(t, StatusInProgress, StatusOf(validLinks, false))
	assert.Equal(t, StatusShipped, StatusOf(validLinks, true))

	broken := validLinks
	broken.DeployedLink = "tracker"
	assert.Equal(t, StatusInProgress, StatusOf(broken, true))
}

func TestSubmissionText(t *testing.T) {
	got := SubmissionText(Links{GithubLink: "https://github.com/someone/tracker"})
	want := "Job Notification Tracker — Final Submission\n\n" +
		"Lovable Project:\n(not provided)\n\n" +
		"GitHub Repository:\nhttps://github.com/someone/tracker\n\n" +
		"Live Deployment:\n(not provided)\n\n" +
		"Core Features:\n" +
		"- Intelligent match scoring\n" +
		"- Daily digest simulation\n" +
		"- Status tracking\n" +
		"- Test checklist enforced"
	assert.Equal(t, want, got)
}

func TestProofStore_UpdateAndReload(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()

	s, err := OpenProof(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Links{}, s.Links())

	for _, f := range Fields {
		_, err := s.UpdateField(ctx, f, "https://x.example.com/"+string(f))
		require.NoError(t, err)
	}

	reopened, err := OpenProof(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "https://x.example.com/githubLink", reopened.Links().GithubLink)
	assert.True(t, reopened.Links().AllValid())
}

func TestProofStore_UnknownField(t *testing.T) {
	s, err := OpenProof(context.Background(), storage.NewMemory(), zap.NewNop())
	require.NoError(t, err)

	_, err = s.UpdateField(context.Background(), Field("figmaLink"), "https://figma.com/x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestOpenProof_MergesPartialAndSurvivesGarbage(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()

	require.NoError(t, db.Set(ctx, ProofKey, []byte(`{"githubLink":"https://github.com/a/b"}`)))
	s, err := OpenProof(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Links{GithubLink: "https://github.com/a/b"}, s.Links())

	require.NoError(t, db.Set(ctx, ProofKey, []byte(`[1,2`)))
	s, err = OpenProof(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Links{}, s.Links())
}
