// Package handlers provides HTTP handlers for chart and dasha timeline operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jyotishlab/jyotish/internal/modules/charts"
)

// Handler handles chart HTTP requests
type Handler struct {
	service *charts.Service
	log     zerolog.Logger
}

// NewHandler creates a new charts handler
func NewHandler(service *charts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "charts").Logger(),
	}
}

// createChartRequest is the body for POST /api/charts
type createChartRequest struct {
	Name          string  `json:"name"`
	BirthUTC      string  `json:"birth_utc"`      // RFC3339
	MoonLongitude float64 `json:"moon_longitude"` // Sidereal degrees
}

// HandleCreateChart handles POST /api/charts
func (h *Handler) HandleCreateChart(w http.ResponseWriter, r *http.Request) {
	var req createChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	birth, err := time.Parse(time.RFC3339, req.BirthUTC)
	if err != nil {
		http.Error(w, "birth_utc must be an RFC3339 timestamp", http.StatusBadRequest)
		return
	}

	chart, err := h.service.Create(req.Name, birth, req.MoonLongitude)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to create chart")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(chart))
}

// HandleListCharts handles GET /api/charts
func (h *Handler) HandleListCharts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list charts")
		http.Error(w, "failed to list charts", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"charts": list,
		"count":  len(list),
	}))
}

// HandleGetChart handles GET /api/charts/{chartID}
func (h *Handler) HandleGetChart(w http.ResponseWriter, r *http.Request, chartID string) {
	chart, err := h.service.Get(chartID)
	if err != nil {
		h.respondError(w, chartID, err, "get chart")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(chart))
}

// HandleDeleteChart handles DELETE /api/charts/{chartID}
func (h *Handler) HandleDeleteChart(w http.ResponseWriter, r *http.Request, chartID string) {
	if err := h.service.Delete(chartID); err != nil {
		h.respondError(w, chartID, err, "delete chart")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"deleted": chartID,
	}))
}

// HandleGetTree handles GET /api/charts/{chartID}/dashas/{system}
// Returns the complete three-level period hierarchy.
func (h *Handler) HandleGetTree(w http.ResponseWriter, r *http.Request, chartID, system string) {
	tree, err := h.service.Tree(chartID, system)
	if err != nil {
		h.respondError(w, chartID, err, "build dasha tree")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"chart_id": chartID,
		"system":   system,
		"periods":  tree,
	}))
}

// HandleGetCurrent handles GET /api/charts/{chartID}/dashas/{system}/current?at=RFC3339
// Returns the active maha, antar and pratyantar periods. The `at` parameter
// defaults to now - the convenience lives here, not in the pure locator.
func (h *Handler) HandleGetCurrent(w http.ResponseWriter, r *http.Request, chartID, system string) {
	at := time.Now().UTC()
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			http.Error(w, "at must be an RFC3339 timestamp", http.StatusBadRequest)
			return
		}
		at = parsed
	}

	active, err := h.service.Current(chartID, system, at)
	if err != nil {
		h.respondError(w, chartID, err, "locate current dasha")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"chart_id": chartID,
		"system":   system,
		"at":       at.Format(time.RFC3339),
		"active":   active,
	}))
}

// respondError maps service errors to HTTP status codes.
func (h *Handler) respondError(w http.ResponseWriter, chartID string, err error, action string) {
	if errors.Is(err, charts.ErrChartNotFound) {
		http.Error(w, "chart not found", http.StatusNotFound)
		return
	}

	h.log.Error().Err(err).Str("chart_id", chartID).Msgf("Failed to %s", action)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// envelope wraps response payloads in the standard {data, metadata} shape.
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
