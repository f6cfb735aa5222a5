// Package httpapi implements the local JSON API of the tracker.
//
// Routes:
//
//	GET    /health                      → liveness
//	GET    /jobs                        → filtered, sorted job list
//	GET    /jobs/{id}                   → one job
//	POST   /jobs/{id}/save              → toggle bookmark
//	POST   /jobs/{id}/status            → set application status
//	GET    /saved                       → bookmarked jobs
//	GET    /status                      → explicitly set statuses by job id
//	GET    /status/changes              → status change log, newest first
//	GET    /preferences                 → current profile
//	PUT    /preferences                 → replace profile
//	GET    /digest                      → today's digest, if generated
//	POST   /digest                      → generate today's digest
//	GET    /digest/text                 → today's digest as plain text
//	GET    /digest/mailto               → mail draft link for today's digest
//	GET    /digest/schedule             → 9AM due hint
//	GET    /checklist                   → test checklist
//	POST   /checklist/{id}/toggle       → flip one item
//	DELETE /checklist                   → reset
//	GET    /proof                       → submission links and ship status
//	PUT    /proof                       → update one link
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/model"
	"jobmate/job-tracker/internal/ranking"
	"jobmate/job-tracker/internal/tracker"
)

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	svc     *tracker.Service
	log     *zap.Logger
	version string
}

// NewHandler returns a configured Handler.
func NewHandler(svc *tracker.Service, log *zap.Logger, version string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log, version: version}
}

// RegisterRoutes mounts every route on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/jobs", h.handleJobs)
	mux.HandleFunc("/jobs/", h.handleJobAction)
	mux.HandleFunc("/saved", h.handleSaved)
	mux.HandleFunc("/status", h.handleStatuses)
	mux.HandleFunc("/status/changes", h.handleStatusChanges)
	mux.HandleFunc("/preferences", h.handlePreferences)
	mux.HandleFunc("/digest", h.handleDigest)
	mux.HandleFunc("/digest/text", h.handleDigestText)
	mux.HandleFunc("/digest/mailto", h.handleDigestMailto)
	mux.HandleFunc("/digest/schedule", h.handleDigestSchedule)
	mux.HandleFunc("/checklist", h.handleChecklist)
	mux.HandleFunc("/checklist/", h.handleChecklistToggle)
	mux.HandleFunc("/proof", h.handleProof)
}

// Routes returns a mux with every route mounted.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

// ─── Route dispatch ──────────────────────────────────────────────────────────

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, map[string]string{
		"status":  "ok",
		"service": "job-tracker",
		"version": h.version,
	})
}

// handleJobs handles GET /jobs
func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, err := filtersFromQuery(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	jobs, err := h.svc.ListJobs(f)
	if err != nil {
		h.serviceError(w, "listJobs", err)
		return
	}
	jsonOK(w, jobs)
}

// handleJobAction handles GET /jobs/{id} and POST /jobs/{id}/save|status
func (h *Handler) handleJobAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	id, err := tracker.ParseJobID(parts[1])
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(parts) == 2 {
		if r.Method != http.MethodGet {
			jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		job, err := h.svc.GetJob(id)
		if err != nil {
			h.serviceError(w, "getJob", err)
			return
		}
		jsonOK(w, job)
		return
	}

	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch action := parts[2]; action {
	case "save":
		h.toggleSave(w, r, id)
	case "status":
		h.setStatus(w, r, id)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
	}
}

func (h *Handler) handleSaved(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonOK(w, h.svc.SavedJobs())
}

func (h *Handler) handleStatuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonOK(w, h.svc.Statuses())
}

func (h *Handler) handleStatusChanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonOK(w, h.svc.StatusChanges())
}

func (h *Handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prefs, saved := h.svc.Preferences()
		jsonOK(w, preferencesResponse{Preferences: prefs, Saved: saved})
	case http.MethodPut:
		var body model.Preferences
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			jsonError(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		prefs, err := h.svc.SavePreferences(r.Context(), body)
		if err != nil {
			h.serviceError(w, "savePreferences", err)
			return
		}
		jsonOK(w, preferencesResponse{Preferences: prefs, Saved: true})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleDigest(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		d, ok, err := h.svc.TodayDigest(r.Context())
		if err != nil {
			h.serviceError(w, "todayDigest", err)
			return
		}
		jsonOK(w, digestResponse{Generated: ok, Digest: d})
	case http.MethodPost:
		d, err := h.svc.GenerateDigest(r.Context())
		if err != nil {
			h.serviceError(w, "generateDigest", err)
			return
		}
		jsonOK(w, digestResponse{Generated: true, Digest: d})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleDigestText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	text, err := h.svc.DigestText(r.Context())
	if err != nil {
		h.serviceError(w, "digestText", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *Handler) handleDigestMailto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	link, err := h.svc.DigestMailto(r.Context())
	if err != nil {
		h.serviceError(w, "digestMailto", err)
		return
	}
	jsonOK(w, map[string]string{"mailto": link})
}

func (h *Handler) handleDigestSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	info, err := h.svc.DigestSchedule(r.Context())
	if err != nil {
		h.serviceError(w, "digestSchedule", err)
		return
	}
	jsonOK(w, info)
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonOK(w, h.svc.Checklist())
	case http.MethodDelete:
		v, err := h.svc.ResetChecklist(r.Context())
		if err != nil {
			h.serviceError(w, "resetChecklist", err)
			return
		}
		jsonOK(w, v)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleChecklistToggle handles POST /checklist/{id}/toggle
func (h *Handler) handleChecklistToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "toggle" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	v, err := h.svc.ToggleChecklistItem(r.Context(), parts[1])
	if err != nil {
		h.serviceError(w, "toggleChecklistItem", err)
		return
	}
	jsonOK(w, v)
}

func (h *Handler) handleProof(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonOK(w, h.svc.Proof())
	case http.MethodPut:
		var body struct {
			Field string `json:"field"`
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Field == "" {
			jsonError(w, "body must contain field", http.StatusBadRequest)
			return
		}
		v, err := h.svc.UpdateProofLink(r.Context(), body.Field, body.Value)
		if err != nil {
			h.serviceError(w, "updateProofLink", err)
			return
		}
		jsonOK(w, v)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── Individual handlers ─────────────────────────────────────────────────────

func (h *Handler) toggleSave(w http.ResponseWriter, r *http.Request, id int) {
	saved, err := h.svc.ToggleSave(r.Context(), id)
	if err != nil {
		h.serviceError(w, "toggleSave", err)
		return
	}
	jsonOK(w, map[string]any{"jobId": id, "saved": saved})
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, id int) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		jsonError(w, "body must contain status", http.StatusBadRequest)
		return
	}
	change, err := h.svc.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		h.serviceError(w, "setStatus", err)
		return
	}
	jsonOK(w, map[string]any{"jobId": id, "status": body.Status, "change": change})
}

// ─── Response types ──────────────────────────────────────────────────────────

type preferencesResponse struct {
	Preferences model.Preferences `json:"preferences"`
	Saved       bool              `json:"saved"`
}

type digestResponse struct {
	Generated bool            `json:"generated"`
	Digest    *tracker.Digest `json:"digest,omitempty"`
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func filtersFromQuery(r *http.Request) (ranking.Filters, error) {
	q := r.URL.Query()
	f := ranking.Filters{
		Keyword:    q.Get("keyword"),
		Location:   q.Get("location"),
		Mode:       q.Get("mode"),
		Experience: q.Get("experience"),
		Source:     q.Get("source"),
		Status:     q.Get("status"),
		Sort:       ranking.SortKey(q.Get("sort")),
	}
	if raw := q.Get("onlyMatches"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, fmt.Errorf("invalid onlyMatches %q", raw)
		}
		f.OnlyMatches = v
	}
	return f, nil
}

// serviceError maps tracker errors to HTTP statuses. Anything unexpected is
// logged and reported as 500.
func (h *Handler) serviceError(w http.ResponseWriter, op string, err error) {
	var ve *tracker.ValidationError
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Msg, http.StatusBadRequest)
	case errors.Is(err, tracker.ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, tracker.ErrNoPreferences):
		jsonError(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("request failed", zap.String("op", op), zap.Error(err))
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
