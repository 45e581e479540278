// Package config loads pipeline configuration from
// ~/.ticketprices/config.yaml with environment-variable overrides for
// the externally supplied credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything a collection run needs. Credentials (the API
// key and the client identity header) are configuration, never embedded
// in adapter logic.
type Config struct {
	// APIKey authenticates against the Ticketmaster Discovery API.
	// Override with TICKETPRICES_API_KEY.
	APIKey string `yaml:"api_key"`

	// AttractionID is the team's Discovery API attraction.
	AttractionID string `yaml:"attraction_id"`

	CountryCode string `yaml:"country_code"`

	// StartDateTime and EndDateTime bound the event search, in the
	// API's Zulu format.
	StartDateTime string `yaml:"start_datetime"`
	EndDateTime   string `yaml:"end_datetime"`

	// UserAgent is the client identity sent on listing-page fetches.
	// Override with TICKETPRICES_USER_AGENT.
	UserAgent string `yaml:"user_agent"`

	// Headless controls the browser session. Defaults to true.
	Headless *bool `yaml:"headless"`

	// PageDelay paces Discovery API pages; EventDelay paces browser
	// scrapes. Both are Go duration strings ("300ms", "3s").
	PageDelay  string `yaml:"page_delay"`
	EventDelay string `yaml:"event_delay"`

	// OutputCSV is where the collected table lands.
	OutputCSV string `yaml:"output_csv"`

	// TargetsDB is the scrape-target store path. Override with
	// TICKETPRICES_DB.
	TargetsDB string `yaml:"targets_db"`
}

// Default returns the built-in configuration: the Lakers attraction,
// the 2025-26 remaining-season window, and the original pacing.
func Default() *Config {
	headless := true
	return &Config{
		AttractionID:  "K8vZ91718T0",
		CountryCode:   "US",
		StartDateTime: "2025-12-01T00:00:00Z",
		EndDateTime:   "2026-06-30T23:59:59Z",
		Headless:      &headless,
		PageDelay:     "300ms",
		EventDelay:    "3s",
		OutputCSV:     "lakers_remaining_games_with_min_price.csv",
		TargetsDB:     "targets.db",
	}
}

// Load reads ~/.ticketprices/config.yaml over the defaults, then applies
// environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	if err := cfg.mergeFile(filepath.Join(homeDir, ".ticketprices", "config.yaml")); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads the given config file over the defaults, then applies
// environment overrides. Used by tests and the --config flag.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // File doesn't exist -- not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TICKETPRICES_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("TICKETPRICES_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("TICKETPRICES_DB"); v != "" {
		c.TargetsDB = v
	}
}

// IsHeadless reports the browser mode, defaulting to headless.
func (c *Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

// PageDelayDuration parses PageDelay, falling back to the default when
// unset or malformed.
func (c *Config) PageDelayDuration() time.Duration {
	return parseDelay(c.PageDelay, 300*time.Millisecond)
}

// EventDelayDuration parses EventDelay, falling back to the default
// when unset or malformed.
func (c *Config) EventDelayDuration() time.Duration {
	return parseDelay(c.EventDelay, 3*time.Second)
}

func parseDelay(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
