// Package pacing provides the wait-before-next-request policy injected
// into every adapter. Adapters never sleep directly; tests substitute
// the zero-delay policy to run instantly.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Policy is consulted before each outbound request or scraped page.
type Policy interface {
	Wait(ctx context.Context) error
}

type fixed struct {
	limiter *rate.Limiter
}

// Fixed returns a policy that spaces requests at least interval apart.
// The first wait is immediate; subsequent waits block until the interval
// has elapsed since the previous one.
func Fixed(interval time.Duration) Policy {
	return &fixed{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (f *fixed) Wait(ctx context.Context) error {
	return f.limiter.Wait(ctx)
}

type none struct{}

// None returns a policy that never waits.
func None() Policy {
	return none{}
}

func (none) Wait(ctx context.Context) error {
	return ctx.Err()
}
