package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all chart routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/charts", func(r chi.Router) {
		r.Post("/", h.HandleCreateChart)
		r.Get("/", h.HandleListCharts)

		r.Route("/{chartID}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				h.HandleGetChart(w, r, chi.URLParam(r, "chartID"))
			})
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				h.HandleDeleteChart(w, r, chi.URLParam(r, "chartID"))
			})
			r.Get("/dashas/{system}", func(w http.ResponseWriter, r *http.Request) {
				h.HandleGetTree(w, r, chi.URLParam(r, "chartID"), chi.URLParam(r, "system"))
			})
			r.Get("/dashas/{system}/current", func(w http.ResponseWriter, r *http.Request) {
				h.HandleGetCurrent(w, r, chi.URLParam(r, "chartID"), chi.URLParam(r, "system"))
			})
		})
	})
}
