package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyotishlab/jyotish/internal/chartcache"
	"github.com/jyotishlab/jyotish/internal/modules/charts"
	testhelpers "github.com/jyotishlab/jyotish/internal/testing"
)

func newTestRouter(t *testing.T) (*chi.Mux, func()) {
	t.Helper()

	chartsDB, cleanupCharts := testhelpers.NewTestDB(t, "charts")
	cacheDB, cleanupCache := testhelpers.NewTestDB(t, "cache")

	svc := charts.NewService(
		charts.NewRepository(chartsDB.Conn()),
		chartcache.NewRepository(cacheDB.Conn()),
		time.Hour,
		zerolog.Nop(),
	)

	r := chi.NewRouter()
	NewHandler(svc, zerolog.Nop()).RegisterRoutes(r)

	return r, func() {
		cleanupCharts()
		cleanupCache()
	}
}

func TestComputeEndpoint(t *testing.T) {
	r, cleanup := newTestRouter(t)
	defer cleanup()

	body := map[string]interface{}{
		"moon_longitude": 127.0,
		"birth_utc":      "1985-02-06T03:45:00Z",
		"system":         "vimshottari",
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/dashas/compute", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	periods := data["periods"].([]interface{})
	require.NotEmpty(t, periods)

	first := periods[0].(map[string]interface{})
	assert.Equal(t, "Ketu", first["lord"])
	assert.NotEmpty(t, first["children"])
}

func TestComputeEndpointRejectsBadInput(t *testing.T) {
	r, cleanup := newTestRouter(t)
	defer cleanup()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"bad timestamp", `{"moon_longitude":127,"birth_utc":"someday","system":"vimshottari"}`},
		{"unknown system", `{"moon_longitude":127,"birth_utc":"1985-02-06T03:45:00Z","system":"ashtottari"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/dashas/compute", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListSystemsEndpoint(t *testing.T) {
	r, cleanup := newTestRouter(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/dashas/systems", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	systems := data["systems"].([]interface{})
	require.Len(t, systems, 2)

	first := systems[0].(map[string]interface{})
	assert.Equal(t, "vimshottari", first["name"])
	assert.Equal(t, float64(120), first["cycle_years"])

	second := systems[1].(map[string]interface{})
	assert.Equal(t, "yogini", second["name"])
	assert.Equal(t, float64(36), second["cycle_years"])
	assert.Equal(t, float64(120), second["horizon_years"])
}
