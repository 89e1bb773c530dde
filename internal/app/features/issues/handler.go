package issues

import (
	"context"
	"net/http"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/system/sanitize"
	"github.com/carebridge/carebridge/internal/app/system/timeouts"
	"github.com/carebridge/carebridge/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the issue-reporting and review endpoints.
type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func NewHandler(coord *coordinator.Coordinator, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Log: logger}
}

type reportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Report handles POST / — a citizen or volunteer filing a new issue.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req reportRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	issue, err := h.Coord.ReportIssue(ctx, actor, coordinator.ReportIssueInput{
		Title:       sanitize.Text(req.Title),
		Description: sanitize.Text(req.Description),
		Category:    sanitize.Text(req.Category),
		Location:    sanitize.Text(req.Location),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, issue)
}

// Visible handles GET /visible — the issues the acting NGO reviewer
// may see, per its focus areas.
func (h *Handler) Visible(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	issues, err := h.Coord.VisibleIssues(ctx, actor)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, issues)
}

type transitionRequest struct {
	Status string `json:"status"`
}

// Transition handles POST /{id}/status — a reviewer moving an issue
// through its lifecycle.
func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req transitionRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	issue, err := h.Coord.TransitionIssue(ctx, actor, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, issue)
}
