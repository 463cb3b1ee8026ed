package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all dasha routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashas", func(r chi.Router) {
		r.Post("/compute", h.HandleCompute)
		r.Get("/systems", h.HandleListSystems)
	})
}
