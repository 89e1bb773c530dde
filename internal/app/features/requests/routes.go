package requests

import (
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes returns the food-request subrouter, mounted under /requests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(identity.RequireActor)
	r.Post("/", h.Create)
	r.Get("/mine", h.Mine)
	r.Get("/pending", h.Pending)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/reject", h.Reject)
	return r
}
