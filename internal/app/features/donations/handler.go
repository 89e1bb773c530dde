package donations

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

// Handler serves the surplus-food donation endpoints.
type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func NewHandler(coord *coordinator.Coordinator, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Log: logger}
}

type createRequest struct {
	FoodType           string `json:"food_type"`
	Quantity           string `json:"quantity"`
	PickupLocation     string `json:"pickup_location"`
	PickupInstructions string `json:"pickup_instructions,omitempty"`
	BestBefore         string `json:"best_before,omitempty"`
}

// Create handles POST / — a restaurant posting surplus food.
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

	d, err := h.Coord.CreateDonation(ctx, actor, coordinator.CreateDonationInput{
		FoodType:           sanitize.Text(req.FoodType),
		Quantity:           sanitize.Text(req.Quantity),
		PickupLocation:     sanitize.Text(req.PickupLocation),
		PickupInstructions: sanitize.Text(req.PickupInstructions),
		BestBefore:         req.BestBefore,
	})
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, d)
}

// Available handles GET /available.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	out, err := h.Coord.AvailableDonations(ctx)
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, out)
}

type claimRequest struct {
	PickupNotes string `json:"pickup_notes,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Claim handles POST /{id}/claim — the exclusive volunteer claim.
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req claimRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	d, err := h.Coord.ClaimDonation(ctx, actor, chi.URLParam(r, "id"),
		sanitize.Text(req.PickupNotes), sanitize.Text(req.PhoneNumber))
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, d)
}

// Unavailable handles POST /{id}/unavailable — restaurant withdrawal.
func (h *Handler) Unavailable(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.CurrentActor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := h.Coord.MarkDonationUnavailable(ctx, actor, chi.URLParam(r, "id")); err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, map[string]string{"result": "updated"})
}
