package ticket

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Table is an ordered collection of records produced by one adapter run.
type Table struct {
	Records []Record
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.Records)
}

// SortByStartUTC orders records ascending by their parsed UTC start
// instant. Records with no parseable instant sort after all records
// that have one, keeping their relative order.
func (t *Table) SortByStartUTC() {
	sort.SliceStable(t.Records, func(i, j int) bool {
		a, b := t.Records[i].StartUTC, t.Records[j].StartUTC
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// eventColumns is the fixed export order for the API-plus-scraped-price
// table.
var eventColumns = []string{
	"event_id",
	"event_name",
	"start_date_local",
	"start_time_local",
	"venue_name",
	"city",
	"state",
	"country",
	"url",
	"api_min_price",
	"api_max_price",
	"currency",
	"scraped_min_price",
}

// WriteCSV exports the API event table with its fixed column order.
// Absent numeric values render as empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(eventColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range t.Records {
		row := []string{
			r.EventID,
			r.Title,
			r.LocalDate,
			r.LocalTime,
			r.Venue,
			r.City,
			r.Region,
			r.Country,
			r.URL,
			formatPrice(r.APIMinPrice),
			formatPrice(r.APIMaxPrice),
			r.Currency,
			formatPrice(r.ScrapedMinPrice),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// listingColumns is the fixed export order for the listing-page table.
var listingColumns = []string{
	"platform",
	"team",
	"event_title",
	"event_date",
	"event_time",
	"venue",
	"city",
	"price_text",
	"price_int",
	"url",
}

// WriteListingCSV exports the listing-scrape table (one row per event
// card found on a listing page).
func (t *Table) WriteListingCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(listingColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range t.Records {
		row := []string{
			string(r.Platform),
			r.Team,
			r.Title,
			r.LocalDate,
			r.LocalTime,
			r.Venue,
			r.City,
			r.RawPriceText,
			formatPrice(r.PriceValue),
			r.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatPrice renders an optional price: empty when absent, shortest
// decimal form otherwise ("45", "79.5").
func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
