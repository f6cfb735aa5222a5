package ship

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/storage"
)

// ProofKey is the storage key of the proof links.
const ProofKey = "jobTrackerProofLinks"

// ErrUnknownField is returned by UpdateField for a field outside Fields.
var ErrUnknownField = errors.New("unknown proof field")

// Field names a proof link, using its JSON name.
type Field string

const (
	FieldLovable  Field = "lovableLink"
	FieldGithub   Field = "githubLink"
	FieldDeployed Field = "deployedLink"
)

// Fields lists every proof link field.
var Fields = []Field{FieldLovable, FieldGithub, FieldDeployed}

// Links are the three artifacts handed in at submission.
type Links struct {
	LovableLink  string `json:"lovableLink"`
	GithubLink   string `json:"githubLink"`
	DeployedLink string `json:"deployedLink"`
}

var urlPattern = regexp.MustCompile(`^https?://.+\..+`)

// IsValidURL reports whether s, trimmed, looks like an http(s) URL with a
// dotted host. It is a hint for the user, not a full URL parser.
func IsValidURL(s string) bool {
	return urlPattern.MatchString(strings.TrimSpace(s))
}

// AllValid reports whether every link passes IsValidURL.
func (l Links) AllValid() bool {
	return IsValidURL(l.LovableLink) && IsValidURL(l.GithubLink) && IsValidURL(l.DeployedLink)
}

// Any reports whether at least one link has been filled in.
func (l Links) Any() bool {
	return l.LovableLink != "" || l.GithubLink != "" || l.DeployedLink != ""
}

// Status is the overall ship state.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusShipped    Status = "Shipped"
)

// StatusOf derives the ship status. Shipping needs valid links and a fully
// passed checklist.
func StatusOf(l Links, allPassed bool) Status {
	switch {
	case l.AllValid() && allPassed:
		return StatusShipped
	case l.Any():
		return StatusInProgress
	}
	return StatusNotStarted
}

// SubmissionText formats the links for handing in.
func SubmissionText(l Links) string {
	orMissing := func(s string) string {
		if s == "" {
			return "(not provided)"
		}
		return s
	}
	return "Job Notification Tracker — Final Submission\n" +
		"\n" +
		"Lovable Project:\n" + orMissing(l.LovableLink) + "\n" +
		"\n" +
		"GitHub Repository:\n" + orMissing(l.GithubLink) + "\n" +
		"\n" +
		"Live Deployment:\n" + orMissing(l.DeployedLink) + "\n" +
		"\n" +
		"Core Features:\n" +
		"- Intelligent match scoring\n" +
		"- Daily digest simulation\n" +
		"- Status tracking\n" +
		"- Test checklist enforced"
}

// ProofStore persists the proof links.
type ProofStore struct {
	mu    sync.RWMutex
	db    storage.Adapter
	links Links
}

// OpenProof rehydrates the links, merging stored fields over empty defaults.
func OpenProof(ctx context.Context, db storage.Adapter, log *zap.Logger) (*ProofStore, error) {
	s := &ProofStore{db: db}

	raw, ok, err := db.Get(ctx, ProofKey)
	if err != nil {
		return nil, fmt.Errorf("load proof links: %w", err)
	}
	if ok {
		var stored Links
		if err := json.Unmarshal(raw, &stored); err != nil {
			if log != nil {
				log.Warn("discarding unparseable proof links", zap.Error(err))
			}
		} else {
			s.links = stored
		}
	}
	return s, nil
}

// Links returns the current links.
func (s *ProofStore) Links() Links {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.links
}

// UpdateField sets one link, stored as given, and returns the updated set.
func (s *ProofStore) UpdateField(ctx context.Context, field Field, value string) (Links, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.links
	switch field {
	case FieldLovable:
		next.LovableLink = value
	case FieldGithub:
		next.GithubLink = value
	case FieldDeployed:
		next.DeployedLink = value
	default:
		return s.links, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	if err := storage.SaveJSON(ctx, s.db, ProofKey, next); err != nil {
		return s.links, err
	}
	s.links = next
	return next, nil
}
