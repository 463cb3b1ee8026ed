// Package handlers provides HTTP handlers for stateless dasha computation.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jyotishlab/jyotish/internal/modules/charts"
	"github.com/jyotishlab/jyotish/internal/modules/dasha"
)

// Handler handles dasha computation HTTP requests
type Handler struct {
	service *charts.Service
	log     zerolog.Logger
}

// NewHandler creates a new dasha handler
func NewHandler(service *charts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dasha").Logger(),
	}
}

// computeRequest is the body for POST /api/dashas/compute
type computeRequest struct {
	MoonLongitude float64 `json:"moon_longitude"`
	BirthUTC      string  `json:"birth_utc"` // RFC3339
	System        string  `json:"system"`    // "vimshottari" or "yogini"
}

// HandleCompute handles POST /api/dashas/compute
// Builds a full dasha tree for an ad-hoc (longitude, birth) pair without
// persisting anything.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	birth, err := time.Parse(time.RFC3339, req.BirthUTC)
	if err != nil {
		http.Error(w, "birth_utc must be an RFC3339 timestamp", http.StatusBadRequest)
		return
	}

	tree, err := h.service.Compute(req.MoonLongitude, birth, req.System)
	if err != nil {
		h.log.Warn().Err(err).Str("system", req.System).Msg("Dasha computation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"system":  req.System,
			"periods": tree,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleListSystems handles GET /api/dashas/systems
func (h *Handler) HandleListSystems(w http.ResponseWriter, r *http.Request) {
	systems := []map[string]interface{}{}
	for _, s := range []dasha.System{dasha.Vimshottari(), dasha.Yogini()} {
		systems = append(systems, map[string]interface{}{
			"name":          s.Name,
			"lords":         s.Sequence,
			"cycle_years":   s.CycleYears,
			"horizon_years": s.HorizonYears,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"systems": systems,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
