package issues

import (
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/go-chi/chi/v5"
)

// Routes returns the issue subrouter, mounted under /issues.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(identity.RequireActor)
	r.Post("/", h.Report)
	r.Get("/visible", h.Visible)
	r.Post("/{id}/status", h.Transition)
	return r
}
