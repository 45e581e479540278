// Package browse drives a headless browser over Ticketmaster event pages
// to read the minimum listed price. One session is shared across every
// event in a run, created once before the loop and torn down exactly
// once after it.
package browse

import (
	"context"
	"time"
)

// Session is the controllable browser abstraction the extractor runs
// against. The chromedp implementation is ChromeSession; tests supply
// fakes.
type Session interface {
	// Navigate loads the given URL in the session's page.
	Navigate(ctx context.Context, url string) error

	// WaitReady blocks until basic page readiness (the document body is
	// present) or the timeout elapses.
	WaitReady(ctx context.Context, timeout time.Duration) error

	// ClickButton waits up to timeout for a button whose text contains
	// label to become visible, then clicks it.
	ClickButton(ctx context.Context, label string, timeout time.Duration) error

	// InputValue waits up to timeout for the element addressed by the
	// XPath expression and reads its value, falling back to its
	// aria-label when the value is empty.
	InputValue(ctx context.Context, xpath string, timeout time.Duration) (string, error)

	// TextsContaining returns the text of every element on the current
	// page whose own text contains substr.
	TextsContaining(ctx context.Context, substr string) ([]string, error)

	// Close tears the session down. It is safe to call more than once;
	// only the first call has an effect.
	Close() error
}
