package requests

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

// Handler serves the NGO food-request endpoints.
type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func NewHandler(coord *coordinator.Coordinator, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Log: logger}
}

type createRequest struct {
	FoodType    string `json:"food_type"`
	Quantity    string `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// Create handles POST / — an NGO filing a request.
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

	out, err := h.Coord.CreateFoodRequest(ctx, actor, coordinator.CreateFoodRequestInput{
		FoodType:    sanitize.Text(req.FoodType),
		Quantity:    sanitize.Text(req.Quantity),
		Description: sanitize.Text(req.Description),
	})
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, out)
}

// Mine handles GET /mine — the acting NGO's own requests.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	out, err := h.Coord.RequestsForNGO(ctx, actor)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, out)
}

// Pending handles GET /pending — requests awaiting the acting
// restaurant's answer.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	out, err := h.Coord.PendingRequests(ctx, actor)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, out)
}

// Accept handles POST /{id}/accept.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

// Reject handles POST /{id}/reject.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, accept bool) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	out, err := h.Coord.ResolveFoodRequest(ctx, actor, chi.URLParam(r, "id"), accept)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, out)
}
