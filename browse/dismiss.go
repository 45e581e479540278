package browse

import (
	"context"
	"log/slog"
	"time"
)

// DismissAttempt is one candidate consent-dialog button: a label to look
// for, and how long to wait for it before moving on.
type DismissAttempt struct {
	Label   string
	Timeout time.Duration
}

// DefaultConsentAttempts lists the cookie/consent button labels seen on
// the marketplace pages, in priority order.
func DefaultConsentAttempts() []DismissAttempt {
	const wait = 3 * time.Second
	return []DismissAttempt{
		{Label: "Accept", Timeout: wait},
		{Label: "Agree", Timeout: wait},
		{Label: "Got it", Timeout: wait},
		{Label: "I Agree", Timeout: wait},
		{Label: "Accept All", Timeout: wait},
	}
}

// DismissConsent tries each attempt in order and stops at the first
// button that clicks. The whole sequence is optional: a dialog is not
// guaranteed to be present, so failing every attempt is a normal
// outcome, not an error. Returns true when a button was clicked.
func DismissConsent(ctx context.Context, s Session, attempts []DismissAttempt) bool {
	for _, a := range attempts {
		if ctx.Err() != nil {
			return false
		}
		if err := s.ClickButton(ctx, a.Label, a.Timeout); err == nil {
			slog.Debug("dismissed consent dialog", "label", a.Label)
			return true
		}
	}
	return false
}
