package browse

import (
	"context"
	"log/slog"
	"time"

	"github.com/scott324/STA-141B-Ticket-Comparison/priceparse"
)

// sliderMinInput addresses the minimum-value input of the price-range
// slider on a Ticketmaster event page.
const sliderMinInput = `//*[@data-bdd='exposed-mobile-filter-price-slider-min']//input`

// Extractor reads the minimum listed price off one event page at a
// time, reusing a single browser session across calls.
type Extractor struct {
	Session Session

	// ReadyTimeout bounds the wait for basic page readiness. Zero means
	// 25s, matching the page-load bound.
	ReadyTimeout time.Duration

	// SliderTimeout bounds the wait for the price slider to appear
	// before falling back to the full-page scan. Zero means 10s.
	SliderTimeout time.Duration

	// ConsentAttempts overrides the consent-dismissal sequence. Nil
	// means DefaultConsentAttempts.
	ConsentAttempts []DismissAttempt
}

// MinPrice returns the minimum price observed on the event page at url,
// or nil when none could be read. Every failure mode — navigation
// error, readiness timeout, missing slider, no dollar amounts anywhere —
// yields nil so the caller can move on to the next event.
//
// Extraction is two-stage: read the price-range slider's minimum input
// first, and only when that yields no value, scan every text node
// containing a dollar sign and take the minimum positive amount.
func (e *Extractor) MinPrice(ctx context.Context, url string) *float64 {
	slog.Info("scraping min price", "url", url)

	if err := e.Session.Navigate(ctx, url); err != nil {
		slog.Warn("failed to load event page", "url", url, "err", err)
		return nil
	}

	readyTimeout := e.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = DefaultNavTimeout
	}
	if err := e.Session.WaitReady(ctx, readyTimeout); err != nil {
		slog.Warn("timed out waiting for page readiness", "url", url, "err", err)
		return nil
	}

	attempts := e.ConsentAttempts
	if attempts == nil {
		attempts = DefaultConsentAttempts()
	}
	DismissConsent(ctx, e.Session, attempts)

	if v := e.sliderMin(ctx); v != nil {
		slog.Debug("read min price from slider", "url", url, "price", *v)
		return v
	}

	v := e.pageScanMin(ctx)
	if v == nil {
		slog.Debug("no dollar amounts found on page", "url", url)
	} else {
		slog.Debug("read min price from page scan", "url", url, "price", *v)
	}
	return v
}

// sliderMin is the primary strategy: the slider's minimum-value input,
// read as a value attribute with an aria-label fallback, parsed with the
// numeric-first variant (slider text carries no marker word).
func (e *Extractor) sliderMin(ctx context.Context) *float64 {
	timeout := e.SliderTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	raw, err := e.Session.InputValue(ctx, sliderMinInput, timeout)
	if err != nil {
		slog.Debug("price slider not found", "err", err)
		return nil
	}
	return priceparse.Amount(raw)
}

// pageScanMin is the fallback strategy: every text node containing a
// dollar sign, minimum over all positive amounts.
func (e *Extractor) pageScanMin(ctx context.Context) *float64 {
	texts, err := e.Session.TextsContaining(ctx, "$")
	if err != nil {
		slog.Warn("full-page price scan failed", "err", err)
		return nil
	}
	return priceparse.ScanMin(texts)
}
