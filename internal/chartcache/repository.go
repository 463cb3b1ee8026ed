// Package chartcache provides persistent caching for computed dasha trees.
// Trees are immutable once built, so they are memoized by (chart, system) as
// msgpack blobs with expiration timestamps for cache-first behavior.
package chartcache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Repository provides cache operations for dasha trees.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new tree cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Key builds the cache key for a chart/system pair.
func Key(chartID, system string) string {
	return chartID + ":" + system
}

// Store saves a value with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert.
func (r *Repository) Store(key string, value interface{}, ttl time.Duration) error {
	blob, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO dasha_trees (cache_key, data, expires_at) VALUES (?, ?, ?)",
		key, blob, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry %s: %w", key, err)
	}

	return nil
}

// GetIfFresh decodes the cached value into dest only if expires_at > now.
// Returns false if the key doesn't exist or the entry is expired.
func (r *Repository) GetIfFresh(key string, dest interface{}) (bool, error) {
	now := time.Now().Unix()

	var blob []byte
	err := r.db.QueryRow(
		"SELECT data FROM dasha_trees WHERE cache_key = ? AND expires_at > ?",
		key, now,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache entry %s: %w", key, err)
	}

	if err := msgpack.Unmarshal(blob, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache entry %s: %w", key, err)
	}

	return true, nil
}

// Delete removes a specific entry.
func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM dasha_trees WHERE cache_key = ?", key); err != nil {
		return fmt.Errorf("failed to delete cache entry %s: %w", key, err)
	}
	return nil
}

// DeleteForChart removes every cached tree belonging to a chart,
// across all dasha systems. Called when the chart itself is deleted.
func (r *Repository) DeleteForChart(chartID string) error {
	if _, err := r.db.Exec("DELETE FROM dasha_trees WHERE cache_key LIKE ?", chartID+":%"); err != nil {
		return fmt.Errorf("failed to delete cache entries for chart %s: %w", chartID, err)
	}
	return nil
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired() (int64, error) {
	now := time.Now().Unix()

	result, err := r.db.Exec("DELETE FROM dasha_trees WHERE expires_at < ?", now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
