// Package ticket defines the canonical event-price record shared by all
// source adapters, and the flat result table the pipeline exports.
package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies which source produced a record.
type Platform string

const (
	// PlatformTicketmasterAPI marks records from the Discovery API.
	PlatformTicketmasterAPI Platform = "TicketmasterAPI"
	// PlatformTicketmasterScrape marks minimum prices read off an event
	// page by the headless browser.
	PlatformTicketmasterScrape Platform = "TicketmasterScrape"
	// PlatformVividSeats marks records scraped from a Vivid Seats
	// listing page.
	PlatformVividSeats Platform = "VividSeats"
)

// Record is one (platform, event) price observation. Fields are
// independently optional: a missing venue does not invalidate a price
// and a present RawPriceText does not guarantee a PriceValue. A non-nil
// PriceValue always holds a successfully parsed positive number.
type Record struct {
	ID       uuid.UUID `json:"id"`
	Platform Platform  `json:"platform"`
	Team     string    `json:"team,omitempty"`

	// EventID is the platform's own identifier when it publishes one.
	// Uniqueness across platforms is not guaranteed.
	EventID string `json:"event_id,omitempty"`
	Title   string `json:"title"`

	// StartUTC is the parsed UTC start instant, nil when the platform
	// reported none or it failed to parse. LocalDate and LocalTime are
	// the platform's separately reported local fields, preserved
	// verbatim; they are display-only and are never reconciled against
	// StartUTC.
	StartUTC  *time.Time `json:"start_utc,omitempty"`
	LocalDate string     `json:"local_date,omitempty"`
	LocalTime string     `json:"local_time,omitempty"`

	Venue   string `json:"venue,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`

	// RawPriceText is the untouched string observed on the source.
	// PriceValue is the amount parsed from it, nil on parse failure.
	RawPriceText string   `json:"raw_price_text,omitempty"`
	PriceValue   *float64 `json:"price_value,omitempty"`

	// APIMinPrice, APIMaxPrice and Currency come from the Discovery
	// API's published price range; only the API source fills them.
	APIMinPrice *float64 `json:"api_min_price,omitempty"`
	APIMaxPrice *float64 `json:"api_max_price,omitempty"`
	Currency    string   `json:"currency,omitempty"`

	// ScrapedMinPrice is filled in place by the browser adapter,
	// keyed by this record's own URL.
	ScrapedMinPrice *float64 `json:"scraped_min_price,omitempty"`

	// URL is the event's canonical page on the platform. The browser
	// adapter uses it as a scrape target.
	URL string `json:"url,omitempty"`
}
