// Package tracker is the transport-agnostic application layer. It owns the
// catalog, every persisted store and the scorer, and is used by the HTTP
// API, the gRPC server and the CLI alike.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jobmate/job-tracker/internal/catalog"
	"jobmate/job-tracker/internal/digest"
	"jobmate/job-tracker/internal/events"
	"jobmate/job-tracker/internal/match"
	"jobmate/job-tracker/internal/model"
	"jobmate/job-tracker/internal/profile"
	"jobmate/job-tracker/internal/ranking"
	"jobmate/job-tracker/internal/ship"
	"jobmate/job-tracker/internal/storage"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Options tunes a Service. Zero values pick the defaults.
type Options struct {
	Scorer   match.Scorer
	Schedule *digest.Schedule // nil disables the due hint
	Events   events.Publisher // nil means events.Nop
	Logger   *zap.Logger
	Now      func() time.Time
}

// Service encapsulates the tracker's business logic.
type Service struct {
	catalog   *catalog.Catalog
	prefs     *profile.Store
	saved     *SavedStore
	status    *StatusStore
	digests   *digest.Store
	checklist *ship.Checklist
	proof     *ship.ProofStore

	scorer   match.Scorer
	schedule *digest.Schedule
	events   events.Publisher
	log      *zap.Logger
	now      func() time.Time
	validate *validator.Validate
}

// NewService rehydrates every store from db and returns a ready Service.
func NewService(ctx context.Context, cat *catalog.Catalog, db storage.Adapter, opts Options) (*Service, error) {
	s := &Service{
		catalog:  cat,
		scorer:   opts.Scorer,
		schedule: opts.Schedule,
		events:   opts.Events,
		log:      opts.Logger,
		now:      opts.Now,
		validate: validator.New(),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	var err error
	if s.prefs, err = profile.Open(ctx, db, s.log); err != nil {
		return nil, err
	}
	if s.saved, err = OpenSaved(ctx, db, s.log); err != nil {
		return nil, fmt.Errorf("load saved jobs: %w", err)
	}
	if s.status, err = OpenStatus(ctx, db, s.log, s.now); err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	if s.checklist, err = ship.OpenChecklist(ctx, db, s.log); err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	if s.proof, err = ship.OpenProof(ctx, db, s.log); err != nil {
		return nil, err
	}
	s.digests = digest.NewStore(db, s.log)
	return s, nil
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

// JobView is a posting as shown to the user: its score against the saved
// profile plus the user's own marks.
type JobView struct {
	model.Job
	MatchScore int          `json:"matchScore"`
	Band       string       `json:"band"`
	Saved      bool         `json:"saved"`
	Status     model.Status `json:"status"`
	Posted     string       `json:"posted"`
}

func (s *Service) view(j model.Job, score int) JobView {
	return JobView{
		Job:        j,
		MatchScore: score,
		Band:       match.Band(score),
		Saved:      s.saved.IsSaved(j.ID),
		Status:     s.status.Get(j.ID),
		Posted:     j.PostedLabel(),
	}
}

func (s *Service) currentPrefs() model.Preferences {
	p, _ := s.prefs.Get()
	return p
}

// ListJobs filters and sorts the catalog. Filter values are validated here so
// the pipeline itself stays total.
func (s *Service) ListJobs(f ranking.Filters) ([]JobView, error) {
	sortKey, err := ranking.ParseSortKey(string(f.Sort))
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	f.Sort = sortKey
	if f.Status != "" && f.Status != ranking.All {
		if _, err := model.ParseStatus(f.Status); err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
	}

	ranked := ranking.Rank(s.catalog.Jobs(), s.prefs.Saved(), f, s.status.Get, s.scorer)
	out := make([]JobView, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, s.view(r.Job, r.Score))
	}
	return out, nil
}

// GetJob returns one posting by id.
func (s *Service) GetJob(id int) (*JobView, error) {
	j, ok := s.catalog.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	v := s.view(j, s.scorer.Score(j, s.currentPrefs()))
	return &v, nil
}

// ─── Saved jobs ──────────────────────────────────────────────────────────────

// ToggleSave bookmarks or un-bookmarks a posting and returns the new state.
func (s *Service) ToggleSave(ctx context.Context, id int) (bool, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return false, ErrNotFound
	}
	saved, err := s.saved.Toggle(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggleSave: %w", err)
	}
	s.log.Debug("saved set changed", zap.Int("jobId", id), zap.Bool("saved", saved))
	return saved, nil
}

// SavedJobs returns the bookmarked postings in the order they were saved.
// Ids no longer in the catalog are skipped.
func (s *Service) SavedJobs() []JobView {
	prefs := s.currentPrefs()
	ids := s.saved.IDs()
	out := make([]JobView, 0, len(ids))
	for _, id := range ids {
		j, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		out = append(out, s.view(j, s.scorer.Score(j, prefs)))
	}
	return out
}

// ─── Status ──────────────────────────────────────────────────────────────────

// ChangeView is a change-log entry joined with its posting.
type ChangeView struct {
	StatusChange
	Title   string `json:"title"`
	Company string `json:"company"`
}

// SetStatus records a new application status for a posting. The returned
// change is nil when the status was reset to the default.
func (s *Service) SetStatus(ctx context.Context, id int, statusStr string) (*ChangeView, error) {
	st, err := model.ParseStatus(statusStr)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	j, ok := s.catalog.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	change, err := s.status.Set(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("setStatus: %w", err)
	}

	events.Emit(ctx, s.events, s.log, events.StatusChanged, map[string]any{
		"type":    events.StatusChanged,
		"jobId":   id,
		"title":   j.Title,
		"company": j.Company,
		"status":  string(st),
	})

	if change == nil {
		return nil, nil
	}
	return &ChangeView{StatusChange: *change, Title: j.Title, Company: j.Company}, nil
}

// Status returns the application status of a posting.
func (s *Service) Status(id int) (model.Status, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return "", ErrNotFound
	}
	return s.status.Get(id), nil
}

// Statuses returns every explicitly set status keyed by job id. Jobs absent
// from the map are Not Applied.
func (s *Service) Statuses() map[int]model.Status {
	return s.status.All()
}

// StatusChanges returns the change log, newest first. Entries whose posting
// left the catalog keep empty titles.
func (s *Service) StatusChanges() []ChangeView {
	changes := s.status.Changes()
	out := make([]ChangeView, 0, len(changes))
	for _, c := range changes {
		v := ChangeView{StatusChange: c}
		if j, ok := s.catalog.Get(c.JobID); ok {
			v.Title, v.Company = j.Title, j.Company
		}
		out = append(out, v)
	}
	return out
}

// ─── Preferences ─────────────────────────────────────────────────────────────

// Preferences returns the current profile and whether one has been saved.
func (s *Service) Preferences() (model.Preferences, bool) {
	return s.prefs.Get()
}

// SavePreferences validates and stores a whole profile. The threshold is
// clamped rather than rejected.
func (s *Service) SavePreferences(ctx context.Context, p model.Preferences) (model.Preferences, error) {
	if err := s.validate.Struct(p); err != nil {
		return model.Preferences{}, fromValidator(err)
	}
	saved, err := s.prefs.Save(ctx, p)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("savePreferences: %w", err)
	}
	s.log.Info("preferences saved",
		zap.Int("minMatchScore", saved.MinMatchScore),
		zap.Int("keywords", len(match.SplitList(saved.RoleKeywords))),
	)
	return saved, nil
}

// ─── Digest ──────────────────────────────────────────────────────────────────

// Digest is a generated digest with its shareable renderings.
type Digest struct {
	Date    string         `json:"date"`
	Entries []digest.Entry `json:"entries"`
	Text    string         `json:"text"`
	Mailto  string         `json:"mailto"`
}

func newDigest(date time.Time, entries []digest.Entry) *Digest {
	return &Digest{
		Date:    date.Format(time.DateOnly),
		Entries: entries,
		Text:    digest.Render(entries, date),
		Mailto:  digest.MailtoURL(entries, date),
	}
}

// GenerateDigest builds today's digest from the saved profile, replacing any
// digest already generated today.
func (s *Service) GenerateDigest(ctx context.Context) (*Digest, error) {
	prefs := s.prefs.Saved()
	if prefs == nil {
		return nil, ErrNoPreferences
	}

	today := s.now()
	entries := digest.Build(s.catalog.Jobs(), *prefs, s.scorer)
	if err := s.digests.Save(ctx, today, entries); err != nil {
		return nil, fmt.Errorf("generateDigest: %w", err)
	}

	events.Emit(ctx, s.events, s.log, events.DigestGenerated, map[string]any{
		"type":    events.DigestGenerated,
		"date":    today.Format(time.DateOnly),
		"entries": len(entries),
	})
	s.log.Info("digest generated", zap.String("date", today.Format(time.DateOnly)), zap.Int("entries", len(entries)))
	return newDigest(today, entries), nil
}

// TodayDigest returns today's digest. ok is false when it has not been
// generated yet; a generated digest may still have no entries.
func (s *Service) TodayDigest(ctx context.Context) (d *Digest, ok bool, err error) {
	today := s.now()
	entries, ok, err := s.digests.Load(ctx, today)
	if err != nil || !ok {
		return nil, false, err
	}
	return newDigest(today, entries), true, nil
}

// DigestText returns today's digest as plain text, or ErrNotFound.
func (s *Service) DigestText(ctx context.Context) (string, error) {
	d, err := s.requireToday(ctx)
	if err != nil {
		return "", err
	}
	return d.Text, nil
}

// DigestMailto returns the mail draft link for today's digest, or
// ErrNotFound.
func (s *Service) DigestMailto(ctx context.Context) (string, error) {
	d, err := s.requireToday(ctx)
	if err != nil {
		return "", err
	}
	return d.Mailto, nil
}

func (s *Service) requireToday(ctx context.Context) (*Digest, error) {
	d, ok, err := s.TodayDigest(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// ScheduleInfo tells the caller whether today's simulated digest is due.
type ScheduleInfo struct {
	Schedule  string    `json:"schedule"`
	Due       bool      `json:"due"`
	Generated bool      `json:"generated"`
	NextRun   time.Time `json:"nextRun"`
}

// DigestSchedule reports the schedule hint. It never generates anything.
func (s *Service) DigestSchedule(ctx context.Context) (*ScheduleInfo, error) {
	if s.schedule == nil {
		return nil, ErrNotFound
	}
	now := s.now()
	_, generated, err := s.digests.Load(ctx, now)
	if err != nil {
		return nil, err
	}
	return &ScheduleInfo{
		Schedule:  s.schedule.String(),
		Due:       s.schedule.Due(now) && !generated,
		Generated: generated,
		NextRun:   s.schedule.NextRun(now),
	}, nil
}

// ─── Checklist and proof ─────────────────────────────────────────────────────

// ChecklistItem is a checklist step with its mark.
type ChecklistItem struct {
	ship.Item
	Passed bool `json:"passed"`
}

// ChecklistView summarises the test checklist.
type ChecklistView struct {
	Items     []ChecklistItem `json:"items"`
	Passed    int             `json:"passed"`
	Total     int             `json:"total"`
	AllPassed bool            `json:"allPassed"`
}

// Checklist returns every item with its mark.
func (s *Service) Checklist() ChecklistView {
	checked := s.checklist.Checked()
	v := ChecklistView{Items: make([]ChecklistItem, 0, len(ship.Items)), Total: len(ship.Items)}
	for _, it := range ship.Items {
		v.Items = append(v.Items, ChecklistItem{Item: it, Passed: checked[it.ID]})
		if checked[it.ID] {
			v.Passed++
		}
	}
	v.AllPassed = v.Passed == v.Total
	return v
}

// ToggleChecklistItem flips one item.
func (s *Service) ToggleChecklistItem(ctx context.Context, id string) (ChecklistView, error) {
	if _, err := s.checklist.Toggle(ctx, id); err != nil {
		if errors.Is(err, ship.ErrUnknownItem) {
			return ChecklistView{}, &ValidationError{Msg: err.Error()}
		}
		return ChecklistView{}, fmt.Errorf("toggleChecklistItem: %w", err)
	}
	return s.Checklist(), nil
}

// ResetChecklist clears every mark.
func (s *Service) ResetChecklist(ctx context.Context) (ChecklistView, error) {
	if err := s.checklist.Reset(ctx); err != nil {
		return ChecklistView{}, err
	}
	return s.Checklist(), nil
}

// ProofView is the submission state: the links, which ones look invalid, the
// ship status and the submission text.
type ProofView struct {
	Links          ship.Links   `json:"links"`
	InvalidFields  []ship.Field `json:"invalidFields"`
	AllLinksValid  bool         `json:"allLinksValid"`
	ChecklistDone  bool         `json:"checklistDone"`
	ShipStatus     ship.Status  `json:"shipStatus"`
	SubmissionText string       `json:"submissionText"`
}

// Proof returns the current submission state.
func (s *Service) Proof() ProofView {
	links := s.proof.Links()
	allPassed := s.checklist.AllPassed()

	invalidFields := []ship.Field{}
	for _, f := range ship.Fields {
		v := linkValue(links, f)
		if v != "" && !ship.IsValidURL(v) {
			invalidFields = append(invalidFields, f)
		}
	}
	return ProofView{
		Links:          links,
		InvalidFields:  invalidFields,
		AllLinksValid:  links.AllValid(),
		ChecklistDone:  allPassed,
		ShipStatus:     ship.StatusOf(links, allPassed),
		SubmissionText: ship.SubmissionText(links),
	}
}

// UpdateProofLink stores one link. Invalid URLs are stored anyway and
// reported through InvalidFields.
func (s *Service) UpdateProofLink(ctx context.Context, field, value string) (ProofView, error) {
	if _, err := s.proof.UpdateField(ctx, ship.Field(field), value); err != nil {
		if errors.Is(err, ship.ErrUnknownField) {
			return ProofView{}, &ValidationError{Msg: err.Error()}
		}
		return ProofView{}, fmt.Errorf("updateProofLink: %w", err)
	}
	return s.Proof(), nil
}

func linkValue(l ship.Links, f ship.Field) string {
	switch f {
	case ship.FieldLovable:
		return l.LovableLink
	case ship.FieldGithub:
		return l.GithubLink
	case ship.FieldDeployed:
		return l.DeployedLink
	}
	return ""
}

// ParseJobID parses a job id from a path or argument.
func ParseJobID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, invalid("invalid job id %q", raw)
	}
	return id, nil
}
