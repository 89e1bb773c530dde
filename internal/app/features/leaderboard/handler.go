package leaderboard

import (
	"context"
	"net/http"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	"github.com/carebridge/carebridge/internal/app/system/timeouts"
	"github.com/carebridge/carebridge/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the two public leaderboards. Both are computed from
// current documents on every read.
type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func NewHandler(coord *coordinator.Coordinator, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Log: logger}
}

// Donations handles GET /donations.
func (h *Handler) Donations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	entries, err := h.Coord.DonationLeaderboard(ctx)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, entries)
}

// Monetary handles GET /monetary.
func (h *Handler) Monetary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	entries, err := h.Coord.MonetaryLeaderboard(ctx)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, entries)
}

// Routes returns the leaderboard subrouter, mounted under
// /leaderboard. Leaderboards are public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/donations", h.Donations)
	r.Get("/monetary", h.Monetary)
	return r
}
