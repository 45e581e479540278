// Package vividseats scrapes a Vivid Seats performer listing page into
// canonical event-price records. The page is date-range filtered, so
// callers invoke Scrape once per window URL and concatenate the results.
package vividseats

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/scott324/STA-141B-Ticket-Comparison/priceparse"
	"github.com/scott324/STA-141B-Ticket-Comparison/ticket"
)

// Origin is the platform origin relative event links resolve against.
const Origin = "https://www.vividseats.com"

// Card and field selectors for the listing page. The MUI class chains
// are what the page actually serves; they change when the platform
// redeploys, so they live here in one place.
const (
	cardSelector  = `div[data-testid^="production-listing-"]`
	titleSelector = ".MuiTypography-root.MuiTypography-small-medium.styles_titleTruncate__XiZ53.mui-pc7loe"
	dateSelector  = ".MuiTypography-root.MuiTypography-small-bold.MuiTypography-noWrap.mui-1fmntk1"
	timeSelector  = ".MuiTypography-root.MuiTypography-caption.mui-1pgnteb"
	venueSelector = ".MuiTypography-root.MuiTypography-small-regular.styles_textTruncate__wsM3Q.mui-1insuh9"
	citySelector  = ".MuiTypography-root.MuiTypography-small-regular.styles_textTruncate__wsM3Q.mui-1wl3fj7"
	linkSelector  = `a[data-testid^="production-listing-row-"]`
)

// Scraper fetches and parses performer listing pages.
type Scraper struct {
	http   *resty.Client
	origin string
}

// New creates a Scraper that identifies itself with the given
// User-Agent on every fetch.
func New(userAgent string) *Scraper {
	return &Scraper{
		http:   resty.New().SetHeader("User-Agent", userAgent),
		origin: Origin,
	}
}

// WithOrigin overrides the origin used for relative link resolution and
// is intended for tests.
func (s *Scraper) WithOrigin(origin string) *Scraper {
	s.origin = origin
	return s
}

// Scrape fetches the listing page at pageURL and returns one record per
// event card found. A non-success status is logged and yields an empty
// table rather than an error; callers inspect the result size.
func (s *Scraper) Scrape(ctx context.Context, pageURL, team string) (*ticket.Table, error) {
	resp, err := s.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	slog.Info("fetched listing page", "team", team, "status", resp.StatusCode())
	if resp.IsError() {
		slog.Warn("listing page returned an error status",
			"team", team, "status", resp.StatusCode())
		return &ticket.Table{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	table := &ticket.Table{}
	cards := doc.Find(cardSelector)
	slog.Info("found event cards", "team", team, "count", cards.Length())

	cards.Each(func(i int, card *goquery.Selection) {
		table.Records = append(table.Records, s.extractCard(card, pageURL, team))
	})

	return table, nil
}

// extractCard pulls one event's fields out of a card fragment. Every
// field is independently optional: a card missing its venue still
// yields a record with the fields that were present.
func (s *Scraper) extractCard(card *goquery.Selection, pageURL, team string) ticket.Record {
	r := ticket.Record{
		ID:        uuid.New(),
		Platform:  ticket.PlatformVividSeats,
		Team:      team,
		Title:     cardText(card, titleSelector),
		LocalDate: cardText(card, dateSelector),
		LocalTime: cardText(card, timeSelector),
		Venue:     cardText(card, venueSelector),
		City:      cardText(card, citySelector),
	}

	// The displayed price is the span carrying the "From" marker. Keep
	// the raw text verbatim; the parsed value is nil for "Sold Out" and
	// similar markerless strings.
	priceEl := card.Find("span").FilterFunction(func(i int, sel *goquery.Selection) bool {
		return strings.Contains(sel.Text(), priceparse.Marker)
	}).First()
	if priceEl.Length() > 0 {
		r.RawPriceText = strings.TrimSpace(priceEl.Text())
		if v := priceparse.FromPrice(r.RawPriceText); v != nil {
			f := float64(*v)
			r.PriceValue = &f
		}
	}

	r.URL = s.resolveLink(card, pageURL)
	return r
}

// resolveLink finds the card's detail-page link. Relative hrefs resolve
// against the platform origin; a card with no link falls back to the
// listing page URL itself.
func (s *Scraper) resolveLink(card *goquery.Selection, pageURL string) string {
	href, ok := card.Find(linkSelector).First().Attr("href")
	if !ok || href == "" {
		return pageURL
	}
	if strings.HasPrefix(href, "/") {
		return s.origin + href
	}
	return href
}

// cardText returns the trimmed text of the first match, or "" when the
// selector finds nothing.
func cardText(card *goquery.Selection, selector string) string {
	return strings.TrimSpace(card.Find(selector).First().Text())
}
