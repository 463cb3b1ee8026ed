package charts

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jyotishlab/jyotish/internal/chartcache"
	"github.com/jyotishlab/jyotish/internal/modules/dasha"
)

// ErrChartNotFound is returned when an operation references a chart ID that
// doesn't exist. Handlers translate it to 404.
var ErrChartNotFound = errors.New("chart not found")

// Service provides chart operations and dasha computation for stored charts.
// Computed trees are immutable, so they are memoized in the tree cache keyed
// by (chart, system).
type Service struct {
	repo     *Repository
	cache    *chartcache.Repository
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewService creates a new charts service.
func NewService(
	repo *Repository,
	cache *chartcache.Repository,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With().Str("service", "charts").Logger(),
	}
}

// Create validates and stores a new chart. The Moon longitude is normalized
// into [0, 360) before storage so the dasha engine always sees its documented
// domain.
func (s *Service) Create(name string, birthUTC time.Time, moonLongitude float64) (*Chart, error) {
	if name == "" {
		return nil, fmt.Errorf("chart name is required")
	}
	if birthUTC.IsZero() {
		return nil, fmt.Errorf("birth timestamp is required")
	}
	if math.IsNaN(moonLongitude) || math.IsInf(moonLongitude, 0) {
		return nil, fmt.Errorf("moon longitude must be a finite degree value, got %v", moonLongitude)
	}

	chart := &Chart{
		ID:            uuid.New().String(),
		Name:          name,
		BirthUTC:      birthUTC.UTC(),
		MoonLongitude: dasha.NormalizeLongitude(moonLongitude),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(chart); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("chart_id", chart.ID).
		Str("name", chart.Name).
		Float64("moon_longitude", chart.MoonLongitude).
		Msg("Chart created")

	return chart, nil
}

// Get returns a stored chart.
func (s *Service) Get(id string) (*Chart, error) {
	chart, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if chart == nil {
		return nil, ErrChartNotFound
	}
	return chart, nil
}

// List returns all stored charts, newest first.
func (s *Service) List() ([]Chart, error) {
	return s.repo.List()
}

// Delete removes a chart and purges its cached trees.
func (s *Service) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChartNotFound
	}

	// Cache purge is best effort; expired entries are reaped by the cleanup
	// job anyway.
	if err := s.cache.DeleteForChart(id); err != nil {
		s.log.Warn().Err(err).Str("chart_id", id).Msg("Failed to purge cached trees for deleted chart")
	}

	s.log.Info().Str("chart_id", id).Msg("Chart deleted")
	return nil
}

// Tree returns the full three-level dasha hierarchy for a stored chart,
// serving from the cache when fresh.
func (s *Service) Tree(chartID, systemName string) ([]dasha.Period, error) {
	chart, err := s.Get(chartID)
	if err != nil {
		return nil, err
	}

	system, err := dasha.ByName(systemName)
	if err != nil {
		return nil, err
	}

	cacheKey := chartcache.Key(chartID, system.Name)

	var cached []dasha.Period
	hit, err := s.cache.GetIfFresh(cacheKey, &cached)
	if err != nil {
		// A broken cache entry should never block computation.
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("Tree cache read failed, recomputing")
	} else if hit {
		return cached, nil
	}

	tree, err := system.BuildTree(chart.MoonLongitude, chart.BirthUTC)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s tree for chart %s: %w", system.Name, chartID, err)
	}

	if err := s.cache.Store(cacheKey, tree, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache dasha tree")
	}

	return tree, nil
}

// Current returns the periods active at the given instant for a stored chart.
func (s *Service) Current(chartID, systemName string, at time.Time) (dasha.Active, error) {
	tree, err := s.Tree(chartID, systemName)
	if err != nil {
		return dasha.Active{}, err
	}

	return dasha.Locate(tree, at), nil
}

// Compute builds a dasha tree for an unsaved (longitude, birth) pair.
// Nothing is persisted or cached.
func (s *Service) Compute(moonLongitude float64, birthUTC time.Time, systemName string) ([]dasha.Period, error) {
	if math.IsNaN(moonLongitude) || math.IsInf(moonLongitude, 0) {
		return nil, fmt.Errorf("moon longitude must be a finite degree value, got %v", moonLongitude)
	}

	system, err := dasha.ByName(systemName)
	if err != nil {
		return nil, err
	}

	return system.BuildTree(dasha.NormalizeLongitude(moonLongitude), birthUTC.UTC())
}
