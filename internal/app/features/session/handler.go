package session

import (
	"context"
	"net/http"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/system/timeouts"
	"github.com/carebridge/carebridge/internal/app/system/webjson"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exchanges an upstream identity assertion for a session
// cookie. Authentication itself happens outside this service; the
// front door verifies the assertion and posts the resulting actor
// here. First sign-in also creates the actor's profile document.
type Handler struct {
	Coord    *coordinator.Coordinator
	Provider *identity.Provider
	Log      *zap.Logger
}

func NewHandler(coord *coordinator.Coordinator, provider *identity.Provider, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Provider: provider, Log: logger}
}

type signInRequest struct {
	ActorID     string `json:"actor_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// SignIn handles POST /.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}
	actor := identity.Actor{
		ID:          req.ActorID,
		Role:        models.Role(req.Role),
		DisplayName: req.DisplayName,
	}
	if actor.ID == "" || !models.ValidRole(actor.Role) {
		webjson.BadRequest(w, "actor_id and a valid role are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	profile, err := h.Coord.EnsureProfile(ctx, actor)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	if err := h.Provider.SignIn(w, r, actor); err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, profile)
}

// SignOut handles DELETE /.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Provider.SignOut(w, r); err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me — the acting actor's role-specific overview.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	overview, err := h.Coord.ActorOverview(ctx, actor)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, overview)
}

type profileRequest struct {
	Name       string   `json:"name,omitempty"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	FocusAreas []string `json:"focus_areas,omitempty"`
}

// UpdateProfile handles PATCH /profile. Role is not accepted here;
// it is fixed at account creation.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req profileRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	profile, err := h.Coord.UpdateProfile(ctx, actor, coordinator.ProfileUpdate{
		Name:       req.Name,
		PhotoURL:   req.PhotoURL,
		FocusAreas: req.FocusAreas,
	})
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, profile)
}

// Routes returns the session subrouter, mounted under /session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SignIn)
	r.Delete("/", h.SignOut)
	r.Get("/me", h.Me)
	r.Patch("/profile", h.UpdateProfile)
	return r
}
