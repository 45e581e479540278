package vividseats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scott324/STA-141B-Ticket-Comparison/ticket"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<div data-testid="production-listing-5001">
  <span class="MuiTypography-root MuiTypography-small-medium styles_titleTruncate__XiZ53 mui-pc7loe">Lakers vs Celtics</span>
  <span class="MuiTypography-root MuiTypography-small-bold MuiTypography-noWrap mui-1fmntk1">Jan 14</span>
  <span class="MuiTypography-root MuiTypography-caption mui-1pgnteb">7:30 PM</span>
  <span class="MuiTypography-root MuiTypography-small-regular styles_textTruncate__wsM3Q mui-1insuh9">Crypto.com Arena</span>
  <span class="MuiTypography-root MuiTypography-small-regular styles_textTruncate__wsM3Q mui-1wl3fj7">Los Angeles, CA</span>
  <span>From $89</span>
  <a data-testid="production-listing-row-5001" href="/lakers-vs-celtics-1-14">details</a>
</div>
<div data-testid="production-listing-5002">
  <span class="MuiTypography-root MuiTypography-small-medium styles_titleTruncate__XiZ53 mui-pc7loe">Lakers vs Warriors</span>
  <span>Sold Out</span>
</div>
<div data-testid="production-listing-5003">
  <span class="MuiTypography-root MuiTypography-small-medium styles_titleTruncate__XiZ53 mui-pc7loe">Lakers vs Suns</span>
  <span>From $1,250</span>
  <a data-testid="production-listing-row-5003" href="https://partner.example.com/suns">details</a>
</div>
</body></html>`

func serveListing(t *testing.T, html string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestScrape_EventCards verifies card extraction: parsed price, raw
// price text, structured fields, and relative link resolution
func TestScrape_EventCards(t *testing.T) {
	srv := serveListing(t, listingHTML, http.StatusOK)
	s := New("test-agent/1.0")

	table, err := s.Scrape(context.Background(), srv.URL, "Lakers")
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	first := table.Records[0]
	assert.Equal(t, ticket.PlatformVividSeats, first.Platform)
	assert.Equal(t, "Lakers", first.Team)
	assert.Equal(t, "Lakers vs Celtics", first.Title)
	assert.Equal(t, "Jan 14", first.LocalDate)
	assert.Equal(t, "7:30 PM", first.LocalTime)
	assert.Equal(t, "Crypto.com Arena", first.Venue)
	assert.Equal(t, "Los Angeles, CA", first.City)
	assert.Equal(t, "From $89", first.RawPriceText)
	require.NotNil(t, first.PriceValue)
	assert.Equal(t, 89.0, *first.PriceValue)
	assert.Equal(t, Origin+"/lakers-vs-celtics-1-14", first.URL,
		"relative href should resolve against the platform origin")
}

// TestScrape_SoldOut verifies a markerless price string yields raw text
// absent and no parsed value
func TestScrape_SoldOut(t *testing.T) {
	srv := serveListing(t, listingHTML, http.StatusOK)
	s := New("test-agent/1.0")

	table, err := s.Scrape(context.Background(), srv.URL, "Lakers")
	require.NoError(t, err)

	soldOut := table.Records[1]
	assert.Equal(t, "Lakers vs Warriors", soldOut.Title)
	assert.Empty(t, soldOut.RawPriceText, "no span carries the marker token")
	assert.Nil(t, soldOut.PriceValue)
	assert.Equal(t, srv.URL, soldOut.URL, "cards without a link fall back to the listing URL")
	assert.Empty(t, soldOut.Venue, "missing fields default to empty")
	assert.Empty(t, soldOut.City)
}

// TestScrape_AbsoluteLinkAndThousands verifies absolute hrefs pass
// through and thousands separators parse
func TestScrape_AbsoluteLinkAndThousands(t *testing.T) {
	srv := serveListing(t, listingHTML, http.StatusOK)
	s := New("test-agent/1.0")

	table, err := s.Scrape(context.Background(), srv.URL, "Lakers")
	require.NoError(t, err)

	suns := table.Records[2]
	assert.Equal(t, "https://partner.example.com/suns", suns.URL)
	require.NotNil(t, suns.PriceValue)
	assert.Equal(t, 1250.0, *suns.PriceValue)
}

// TestScrape_ErrorStatus verifies a non-success status yields an empty
// table and no error
func TestScrape_ErrorStatus(t *testing.T) {
	srv := serveListing(t, "blocked", http.StatusForbidden)
	s := New("test-agent/1.0")

	table, err := s.Scrape(context.Background(), srv.URL, "Lakers")

	require.NoError(t, err, "an error status is logged, not surfaced")
	assert.Zero(t, table.Len())
}

// TestScrape_SendsUserAgent verifies the declared client identity header
func TestScrape_SendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte("<html></html>"))
	}))
	t.Cleanup(srv.Close)

	s := New("pricewatch/2.1")
	_, err := s.Scrape(context.Background(), srv.URL, "Lakers")

	require.NoError(t, err)
	assert.Equal(t, "pricewatch/2.1", got)
}
