// Package ticketmaster fetches a team's scheduled events from the
// Ticketmaster Discovery API and flattens them into the canonical
// event-price record.
package ticketmaster

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/scott324/STA-141B-Ticket-Comparison/pacing"
	"github.com/scott324/STA-141B-Ticket-Comparison/ticket"
)

// DefaultBaseURL is the production Discovery API origin.
const DefaultBaseURL = "https://app.ticketmaster.com"

const (
	searchPath      = "/discovery/v2/events.json"
	defaultPageSize = 200
)

// Window bounds the event search by start datetime, in the API's
// ISO-8601 Zulu format ("2025-12-01T00:00:00Z").
type Window struct {
	Start string
	End   string
}

// Client pages the Discovery API event search for one attraction.
type Client struct {
	http         *resty.Client
	apiKey       string
	attractionID string
	countryCode  string
	pageSize     int
	pace         pacing.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-production origin (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.http.SetBaseURL(u) }
}

// WithPageSize overrides the search page size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithPacing replaces the inter-page pacing policy.
func WithPacing(p pacing.Policy) Option {
	return func(c *Client) { c.pace = p }
}

// NewClient creates a Discovery API client for one attraction (the team)
// in one country. The default pacing spaces pages 300ms apart.
func NewClient(apiKey, attractionID, countryCode string, opts ...Option) *Client {
	c := &Client{
		http:         resty.New().SetBaseURL(DefaultBaseURL),
		apiKey:       apiKey,
		attractionID: attractionID,
		countryCode:  countryCode,
		pageSize:     defaultPageSize,
		pace:         pacing.Fixed(300 * time.Millisecond),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse mirrors the slice of the Discovery API response the
// pipeline reads: the embedded event list plus page metadata.
type searchResponse struct {
	Embedded struct {
		Events []apiEvent `json:"events"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

type apiEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			DateTime  string `json:"dateTime"`
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []apiVenue `json:"venues"`
	} `json:"_embedded"`
	PriceRanges []struct {
		Type     string  `json:"type"`
		Currency string  `json:"currency"`
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
	} `json:"priceRanges"`
}

type apiVenue struct {
	Name string `json:"name"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"state"`
	Country struct {
		Name        string `json:"name"`
		CountryCode string `json:"countryCode"`
	} `json:"country"`
}

// FetchEvents pages through the event search for the given window and
// returns every matching event, sorted ascending by UTC start instant
// (events with no parseable instant sort last).
//
// Pagination follows a partial-result policy: a transport or HTTP error
// on any page is logged and stops pagination, returning the rows
// accumulated so far rather than failing the run.
func (c *Client) FetchEvents(ctx context.Context, window Window) (*ticket.Table, error) {
	table := &ticket.Table{}

	page := 0
	for {
		if err := c.pace.Wait(ctx); err != nil {
			return table, err
		}

		slog.Info("requesting event search page", "page", page)

		var body searchResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"apikey":        c.apiKey,
				"attractionId":  c.attractionID,
				"countryCode":   c.countryCode,
				"startDateTime": window.Start,
				"endDateTime":   window.End,
				"size":          strconv.Itoa(c.pageSize),
				"page":          strconv.Itoa(page),
				"sort":          "date,asc",
				"locale":        "*",
			}).
			SetResult(&body).
			Get(searchPath)
		if err != nil {
			slog.Error("event search request failed, stopping pagination",
				"page", page, "err", err)
			break
		}
		if resp.IsError() {
			slog.Error("event search returned an error status, stopping pagination",
				"page", page, "status", resp.StatusCode(), "body", resp.String())
			break
		}

		events := body.Embedded.Events
		if len(events) == 0 {
			break
		}

		for _, e := range events {
			table.Records = append(table.Records, flattenEvent(e))
		}

		// The page metadata reports the total page count; stop once the
		// current index reaches it rather than issuing an extra request.
		if page >= body.Page.TotalPages-1 {
			break
		}
		page++
	}

	slog.Info("fetched events from Ticketmaster", "count", table.Len())

	table.SortByStartUTC()
	return table, nil
}

// flattenEvent maps one nested API event onto the flat canonical record:
// identity and URL, the UTC instant plus the separately reported local
// date/time (both preserved verbatim), the first associated venue, and
// the first published price range when the API republishes one.
func flattenEvent(e apiEvent) ticket.Record {
	r := ticket.Record{
		ID:        uuid.New(),
		Platform:  ticket.PlatformTicketmasterAPI,
		EventID:   e.ID,
		Title:     e.Name,
		URL:       e.URL,
		LocalDate: e.Dates.Start.LocalDate,
		LocalTime: e.Dates.Start.LocalTime,
	}

	if ts, err := time.Parse(time.RFC3339, e.Dates.Start.DateTime); err == nil {
		r.StartUTC = &ts
	}

	if len(e.Embedded.Venues) > 0 {
		v := e.Embedded.Venues[0]
		r.Venue = v.Name
		r.City = v.City.Name
		r.Region = v.State.StateCode
		if r.Region == "" {
			r.Region = v.State.Name
		}
		r.Country = v.Country.CountryCode
		if r.Country == "" {
			r.Country = v.Country.Name
		}
	}

	if len(e.PriceRanges) > 0 {
		pr := e.PriceRanges[0]
		// A zero minimum means the platform published no usable range.
		if pr.Min > 0 {
			min := pr.Min
			r.APIMinPrice = &min
		}
		if pr.Max > 0 {
			max := pr.Max
			r.APIMaxPrice = &max
		}
		r.Currency = pr.Currency
	}

	return r
}
