package donations

import (
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes returns the donation subrouter, mounted under /donations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(identity.RequireActor)
	r.Post("/", h.Create)
	r.Get("/available", h.Available)
	r.Post("/{id}/claim", h.Claim)
	r.Post("/{id}/unavailable", h.Unavailable)
	return r
}
