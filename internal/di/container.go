// Package di wires up the application's services and repositories.
package di

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jyotishlab/jyotish/internal/chartcache"
	"github.com/jyotishlab/jyotish/internal/config"
	"github.com/jyotishlab/jyotish/internal/database"
	"github.com/jyotishlab/jyotish/internal/modules/charts"
)

// Container holds all constructed services and their databases.
type Container struct {
	ChartsDB *database.DB
	CacheDB  *database.DB

	ChartRepo    *charts.Repository
	TreeCache    *chartcache.Repository
	ChartService *charts.Service

	CacheCleanupJob *chartcache.CleanupJob
}

// Wire constructs the full dependency graph. Databases are opened and
// migrated here; the caller owns their lifecycle via Close.
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	chartsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "charts.db"),
		Profile: database.ProfileStandard,
		Name:    "charts",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open charts database: %w", err)
	}
	if err := chartsDB.Migrate(); err != nil {
		chartsDB.Close()
		return nil, fmt.Errorf("failed to migrate charts database: %w", err)
	}

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		chartsDB.Close()
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := cacheDB.Migrate(); err != nil {
		chartsDB.Close()
		cacheDB.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	chartRepo := charts.NewRepository(chartsDB.Conn())
	treeCache := chartcache.NewRepository(cacheDB.Conn())
	chartService := charts.NewService(chartRepo, treeCache, cfg.TreeCacheTTL, log)

	return &Container{
		ChartsDB:        chartsDB,
		CacheDB:         cacheDB,
		ChartRepo:       chartRepo,
		TreeCache:       treeCache,
		ChartService:    chartService,
		CacheCleanupJob: chartcache.NewCleanupJob(treeCache, log),
	}, nil
}

// Close releases the container's databases.
func (c *Container) Close() {
	if c.ChartsDB != nil {
		c.ChartsDB.Close()
	}
	if c.CacheDB != nil {
		c.CacheDB.Close()
	}
}
