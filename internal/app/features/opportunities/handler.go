package opportunities

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

// Handler serves the volunteer-opportunity endpoints.
type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func NewHandler(coord *coordinator.Coordinator, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Log: logger}
}

type createRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Spots    int    `json:"spots"`
}

// Create handles POST / — an NGO posting a new opportunity.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	opp, err := h.Coord.CreateOpportunity(ctx, actor, coordinator.CreateOpportunityInput{
		Title:    sanitize.Text(req.Title),
		Category: sanitize.Text(req.Category),
		Location: sanitize.Text(req.Location),
		Date:     req.Date,
		Time:     req.Time,
		Spots:    req.Spots,
	})
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, opp)
}

// List handles GET / — recent opportunities for any signed-in actor.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	opps, err := h.Coord.ListOpportunities(ctx)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, opps)
}

// SignUp handles POST /{id}/signup.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := h.Coord.SignUp(ctx, actor, chi.URLParam(r, "id")); err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, map[string]string{"result": "added"})
}

// Cancel handles POST /{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := h.Coord.CancelSignUp(ctx, actor, chi.URLParam(r, "id")); err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, map[string]string{"result": "removed"})
}

// Close handles POST /{id}/close — the owning NGO's manual override.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := h.Coord.CloseOpportunity(ctx, actor, chi.URLParam(r, "id")); err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, map[string]string{"result": "closed"})
}
