// Package pipeline orchestrates a collection run: the Discovery API
// table first, then a per-event browser scrape that fills each row's
// minimum observed price in place, and finally the flat CSV export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/scott324/STA-141B-Ticket-Comparison/browse"
	"github.com/scott324/STA-141B-Ticket-Comparison/pacing"
	"github.com/scott324/STA-141B-Ticket-Comparison/ticket"
	"github.com/scott324/STA-141B-Ticket-Comparison/ticketmaster"
	"github.com/scott324/STA-141B-Ticket-Comparison/vividseats"
)

// SessionFactory opens the browser session a run shares across events.
type SessionFactory func(ctx context.Context) (browse.Session, error)

// Options wires a collection run together.
type Options struct {
	API    *ticketmaster.Client
	Window ticketmaster.Window

	// OpenSession acquires the one browser session for the run. A
	// failure here is fatal: without a session there is no per-event
	// scraping.
	OpenSession SessionFactory

	// EventPace is consulted after each scraped event.
	EventPace pacing.Policy

	// Extraction timeouts; zero values use the browse defaults.
	ReadyTimeout  time.Duration
	SliderTimeout time.Duration
}

// Collect fetches the event table and augments it row by row with the
// scraped minimum price from each event's own page. Per-event failures
// leave that row's scraped price absent and move on; the session is
// closed exactly once no matter where the loop stops.
func Collect(ctx context.Context, opts Options) (*ticket.Table, error) {
	table, err := opts.API.FetchEvents(ctx, opts.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if table.Len() == 0 {
		slog.Warn("no events found; check the API key, dates, or attraction ID")
		return table, nil
	}

	slog.Info("starting per-event price scraping", "events", table.Len())

	sess, err := opts.OpenSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer sess.Close()

	pace := opts.EventPace
	if pace == nil {
		pace = pacing.None()
	}

	extractor := &browse.Extractor{
		Session:       sess,
		ReadyTimeout:  opts.ReadyTimeout,
		SliderTimeout: opts.SliderTimeout,
	}

	for i := range table.Records {
		r := &table.Records[i]
		if r.URL == "" {
			slog.Warn("event has no URL, skipping", "event", r.Title)
			continue
		}

		slog.Info("scraping event", "n", i+1, "of", table.Len(), "event", r.Title)
		r.ScrapedMinPrice = extractor.MinPrice(ctx, r.URL)

		if err := pace.Wait(ctx); err != nil {
			slog.Warn("run canceled mid-scrape", "err", err)
			break
		}
	}

	return table, nil
}

// CollectListings scrapes each date-windowed listing URL and
// concatenates the results. Overlapping windows are not deduplicated;
// windows are chosen so each fits on one page.
func CollectListings(ctx context.Context, s *vividseats.Scraper, urls []string, team string) (*ticket.Table, error) {
	combined := &ticket.Table{}
	for _, u := range urls {
		table, err := s.Scrape(ctx, u, team)
		if err != nil {
			return nil, fmt.Errorf("failed to scrape listing page: %w", err)
		}
		combined.Records = append(combined.Records, table.Records...)
	}
	return combined, nil
}

// Export writes the API event table to a CSV file.
func Export(table *ticket.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := table.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to export table: %w", err)
	}

	slog.Info("saved events with scraped prices", "count", table.Len(), "path", path)
	return nil
}

// ExportListings writes the listing-scrape table to a CSV file.
func ExportListings(table *ticket.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := table.WriteListingCSV(f); err != nil {
		return fmt.Errorf("failed to export table: %w", err)
	}

	slog.Info("saved listing records", "count", table.Len(), "path", path)
	return nil
}
