// Package targets persists the configured scrape targets: which
// platform pages and attractions a collection run covers. It stores
// configuration only; collected prices never land here.
package targets

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Custom errors for target operations
var (
	ErrTargetNotFound  = errors.New("target not found")
	ErrDuplicateURL    = errors.New("target with this URL already exists")
	ErrInvalidPlatform = errors.New("platform must be ticketmaster or vividseats")
)

// Valid platform values for a target.
const (
	PlatformTicketmaster = "ticketmaster"
	PlatformVividSeats   = "vividseats"
)

// Store manages scrape-target configurations using SQLite.
type Store struct {
	db *sql.DB
}

// Target represents one configured scrape target. Ticketmaster targets
// carry an attraction ID and no URL requirement; Vivid Seats targets
// carry a date-windowed listing URL.
type Target struct {
	TargetID     uuid.UUID  `json:"target_id"`
	Platform     string     `json:"platform"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	AttractionID string     `json:"attraction_id,omitempty"`
	EnabledAt    *time.Time `json:"enabled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsEnabled returns true if the target is currently enabled.
func (t *Target) IsEnabled() bool {
	return t.EnabledAt != nil
}

// NewStore creates a target store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the targets table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS targets (
		target_id TEXT PRIMARY KEY,
		platform TEXT NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		attraction_id TEXT,
		enabled_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create creates a new target, enabled immediately.
func (s *Store) Create(platform, name, url, attractionID string) (*Target, error) {
	if platform != PlatformTicketmaster && platform != PlatformVividSeats {
		return nil, ErrInvalidPlatform
	}

	now := time.Now()
	target := &Target{
		TargetID:     uuid.New(),
		Platform:     platform,
		Name:         name,
		URL:          url,
		AttractionID: attractionID,
		EnabledAt:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO targets (
			target_id, platform, name, url, attraction_id,
			enabled_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		target.TargetID.String(),
		target.Platform,
		target.Name,
		target.URL,
		target.AttractionID,
		formatTime(target.EnabledAt),
		formatTime(&target.CreatedAt),
		formatTime(&target.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint") {
			return nil, ErrDuplicateURL
		}
		return nil, fmt.Errorf("failed to insert target: %w", err)
	}

	return target, nil
}

// Get retrieves a target by ID.
func (s *Store) Get(targetID uuid.UUID) (*Target, error) {
	query := `
		SELECT target_id, platform, name, url, attraction_id,
		       enabled_at, created_at, updated_at
		FROM targets
		WHERE target_id = ?
	`

	row := s.db.QueryRow(query, targetID.String())
	target, err := scanTarget(row)
	if err == sql.ErrNoRows {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query target: %w", err)
	}
	return target, nil
}

// List returns targets, optionally filtered to one platform, ordered by
// creation time.
func (s *Store) List(platform string) ([]Target, error) {
	query := `
		SELECT target_id, platform, name, url, attraction_id,
		       enabled_at, created_at, updated_at
		FROM targets
	`
	var args []any
	if platform != "" {
		query += " WHERE platform = ?"
		args = append(args, platform)
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query targets: %w", err)
	}
	defer rows.Close()

	var targets []Target
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, *target)
	}
	return targets, rows.Err()
}

// ListEnabled returns the enabled targets for one platform.
func (s *Store) ListEnabled(platform string) ([]Target, error) {
	all, err := s.List(platform)
	if err != nil {
		return nil, err
	}
	enabled := make([]Target, 0, len(all))
	for _, t := range all {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled, nil
}

// Delete removes a target by ID.
func (s *Store) Delete(targetID uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM targets WHERE target_id = ?", targetID.String())
	if err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return ErrTargetNotFound
	}
	return nil
}

// SeedDefaults inserts the default Lakers targets when the store is
// empty: the Discovery API attraction plus one Vivid Seats listing URL
// per month so every window fits on a single page.
func (s *Store) SeedDefaults() error {
	existing, err := s.List("")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []struct {
		platform, name, url, attractionID string
	}{
		{
			PlatformTicketmaster, "Los Angeles Lakers",
			"https://app.ticketmaster.com/discovery/v2/events.json",
			"K8vZ91718T0",
		},
		{
			PlatformVividSeats, "Los Angeles Lakers",
			"https://www.vividseats.com/los-angeles-lakers-tickets--sports-nba-basketball/performer/483?startDate=2025-12-10&endDate=2026-01-31",
			"",
		},
		{
			PlatformVividSeats, "Los Angeles Lakers",
			"https://www.vividseats.com/los-angeles-lakers-tickets--sports-nba-basketball/performer/483?startDate=2026-02-01&endDate=2026-02-28",
			"",
		},
		{
			PlatformVividSeats, "Los Angeles Lakers",
			"https://www.vividseats.com/los-angeles-lakers-tickets--sports-nba-basketball/performer/483?startDate=2026-03-01&endDate=2026-03-31",
			"",
		},
	}

	for _, d := range defaults {
		if _, err := s.Create(d.platform, d.name, d.url, d.attractionID); err != nil {
			return fmt.Errorf("failed to seed default target: %w", err)
		}
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanTarget.
type scanner interface {
	Scan(dest ...any) error
}

func scanTarget(row scanner) (*Target, error) {
	var idStr, platform, name, url, createdAtStr, updatedAtStr string
	var attractionID, enabledAtStr sql.NullString

	err := row.Scan(&idStr, &platform, &name, &url,
		&attractionID, &enabledAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target ID: %w", err)
	}

	target := &Target{
		TargetID:     id,
		Platform:     platform,
		Name:         name,
		URL:          url,
		AttractionID: attractionID.String,
	}

	if target.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if target.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if enabledAtStr.Valid && enabledAtStr.String != "" {
		ts, err := time.Parse(time.RFC3339, enabledAtStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse enabled_at: %w", err)
		}
		target.EnabledAt = &ts
	}

	return target, nil
}

// formatTime renders an optional time as RFC3339, or nil for NULL.
func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
