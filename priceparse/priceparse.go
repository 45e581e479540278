// Package priceparse extracts numeric prices from the free-form strings
// the ticket platforms display. Every function treats malformed input as
// "no value" rather than an error: a listing with an unparseable price is
// still a valid listing, it just has no comparable price.
package priceparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker is the literal token whose presence signals that a listing
// string carries a parseable price ("From $89"). Strings without it, such
// as "Sold Out", never yield a value.
const Marker = "From"

// amountPattern matches a currency-like amount: an optional dollar sign,
// digits, and up to two fractional digits.
var amountPattern = regexp.MustCompile(`\$?\s*([0-9]+(?:\.[0-9]{1,2})?)`)

// FromPrice parses a marker-style price string ("From $1,234.50") into a
// whole-dollar amount. Returns nil when the input is empty, lacks the
// marker token, or the remainder is not numeric. Fractional cents are
// truncated, so "From $1,234.50" yields 1234.
func FromPrice(s string) *int64 {
	if s == "" || !strings.Contains(s, Marker) {
		return nil
	}

	// Strip the marker, the currency symbol, and thousands separators,
	// leaving only the digits (and a possible decimal point).
	cleaned := strings.ReplaceAll(s, Marker, "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	// Try a plain integer first, then a decimal with truncation.
	if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		if n <= 0 {
			return nil
		}
		return &n
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f <= 0 {
		return nil
	}
	n := int64(f)
	if n <= 0 {
		return nil
	}
	return &n
}

// Amount parses the first currency-like amount found anywhere in s. No
// marker token is required; this is the variant used on slider input
// values, which read like "$45" or "Minimum price 45". Returns nil when
// no positive amount is present.
func Amount(s string) *float64 {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil || f <= 0 {
		return nil
	}
	return &f
}

// ScanMin extracts every currency-like amount across all texts, parses
// each independently, and returns the minimum value strictly greater
// than zero. Returns nil when no text yields a positive amount. This is
// the full-page fallback used when the structured price source on a page
// cannot be located.
func ScanMin(texts []string) *float64 {
	var min *float64
	for _, txt := range texts {
		for _, m := range amountPattern.FindAllStringSubmatch(txt, -1) {
			f, err := strconv.ParseFloat(m[1], 64)
			if err != nil || f <= 0 {
				continue
			}
			if min == nil || f < *min {
				v := f
				min = &v
			}
		}
	}
	return min
}
