// Package charts provides storage and dasha computation for birth charts.
package charts

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository provides chart persistence operations.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new chart repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new chart.
func (r *Repository) Create(chart *Chart) error {
	_, err := r.db.Exec(
		`INSERT INTO charts (id, name, birth_utc, moon_longitude, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		chart.ID,
		chart.Name,
		chart.BirthUTC.UTC().Format(time.RFC3339Nano),
		chart.MoonLongitude,
		chart.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chart %s: %w", chart.ID, err)
	}

	return nil
}

// Get returns a chart by ID. Returns nil, nil if the chart doesn't exist.
func (r *Repository) Get(id string) (*Chart, error) {
	row := r.db.QueryRow(
		`SELECT id, name, birth_utc, moon_longitude, created_at FROM charts WHERE id = ?`,
		id,
	)

	chart, err := scanChart(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chart %s: %w", id, err)
	}

	return chart, nil
}

// List returns all charts, newest first.
func (r *Repository) List() ([]Chart, error) {
	rows, err := r.db.Query(
		`SELECT id, name, birth_utc, moon_longitude, created_at FROM charts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	defer rows.Close()

	var result []Chart
	for rows.Next() {
		chart, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chart row: %w", err)
		}
		result = append(result, *chart)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chart rows: %w", err)
	}

	return result, nil
}

// Delete removes a chart. Returns whether a row was actually deleted.
func (r *Repository) Delete(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete chart %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for chart %s: %w", id, err)
	}

	return affected > 0, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanChart.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChart(row rowScanner) (*Chart, error) {
	var (
		chart     Chart
		birthStr  string
		createdAt string
	)

	if err := row.Scan(&chart.ID, &chart.Name, &birthStr, &chart.MoonLongitude, &createdAt); err != nil {
		return nil, err
	}

	birth, err := time.Parse(time.RFC3339Nano, birthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid birth timestamp %q: %w", birthStr, err)
	}
	chart.BirthUTC = birth

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at timestamp %q: %w", createdAt, err)
	}
	chart.CreatedAt = created

	return &chart, nil
}
