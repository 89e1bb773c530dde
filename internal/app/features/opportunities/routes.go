package opportunities

import (
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes returns the opportunity subrouter, mounted under
// /opportunities.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(identity.RequireActor)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/{id}/signup", h.SignUp)
	r.Post("/{id}/cancel", h.Cancel)
	r.Post("/{id}/close", h.Close)
	return r
}
