package browse

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeOptions configures the headless Chrome session.
type ChromeOptions struct {
	// Headless runs the browser without a window. On by default in the
	// pipeline; turn off when debugging selector changes.
	Headless bool

	// UserAgent is sent on every page load when non-empty.
	UserAgent string

	// NavTimeout bounds each page load. Zero means DefaultNavTimeout.
	NavTimeout time.Duration
}

// DefaultNavTimeout bounds a single page load.
const DefaultNavTimeout = 25 * time.Second

// ChromeSession is the chromedp-backed Session. The exec allocator and
// browser context are created once and shared by every page in the run.
type ChromeSession struct {
	browserCtx   context.Context
	cancelBrowse context.CancelFunc
	cancelAlloc  context.CancelFunc
	navTimeout   time.Duration
	closeOnce    sync.Once
}

// NewChromeSession launches headless Chrome. Failure here is the one
// fatal error of a collection run: without a session there is nothing to
// scrape per event.
func NewChromeSession(ctx context.Context, opts ChromeOptions) (*ChromeSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1400, 900),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowse := chromedp.NewContext(allocCtx)

	// Run with no actions forces the browser process to start now, so a
	// broken Chrome install fails the run up front instead of on the
	// first event.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowse()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	navTimeout := opts.NavTimeout
	if navTimeout <= 0 {
		navTimeout = DefaultNavTimeout
	}

	return &ChromeSession{
		browserCtx:   browserCtx,
		cancelBrowse: cancelBrowse,
		cancelAlloc:  cancelAlloc,
		navTimeout:   navTimeout,
	}, nil
}

// Navigate loads the URL, bounded by the session's nav timeout.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(s.browserCtx, s.navTimeout)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Navigate(url))
}

// WaitReady waits for the document body to be present.
func (s *ChromeSession) WaitReady(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.WaitReady("body", chromedp.ByQuery))
}

// ClickButton clicks the first visible button whose text contains label.
func (s *ChromeSession) ClickButton(ctx context.Context, label string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	xp := fmt.Sprintf(`//button[contains(., '%s')]`, label)
	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.WaitVisible(xp, chromedp.BySearch),
		chromedp.Click(xp, chromedp.BySearch),
	)
}

// InputValue reads the value of the element at xpath, falling back to
// its aria-label when the value is empty.
func (s *ChromeSession) InputValue(ctx context.Context, xpath string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	var value string
	if err := chromedp.Run(runCtx,
		chromedp.WaitReady(xpath, chromedp.BySearch),
		chromedp.Value(xpath, &value, chromedp.BySearch),
	); err != nil {
		return "", err
	}
	if strings.TrimSpace(value) != "" {
		return value, nil
	}

	var label string
	var ok bool
	if err := chromedp.Run(runCtx,
		chromedp.AttributeValue(xpath, "aria-label", &label, &ok, chromedp.BySearch),
	); err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return label, nil
}

// TextsContaining collects the text of every element whose own text
// contains substr, evaluated in the page.
func (s *ChromeSession) TextsContaining(ctx context.Context, substr string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runCtx, cancel := context.WithTimeout(s.browserCtx, s.navTimeout)
	defer cancel()

	script := fmt.Sprintf(`(() => {
		const needle = %q;
		const out = [];
		for (const el of document.querySelectorAll('*')) {
			const text = (el.innerText || '').trim();
			if (text && text.includes(needle)) {
				out.push(text);
			}
		}
		return out;
	})();`, substr)

	var texts []string
	if err := chromedp.Run(runCtx, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, err
	}
	return texts, nil
}

// Close tears down the browser and its allocator. Subsequent calls are
// no-ops.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.cancelBrowse()
		s.cancelAlloc()
	})
	return nil
}
