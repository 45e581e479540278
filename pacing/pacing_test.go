package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNone verifies the zero-delay policy returns immediately
func TestNone(t *testing.T) {
	start := time.Now()
	require.NoError(t, None().Wait(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

// TestNone_CanceledContext verifies cancellation surfaces as an error
func TestNone_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, None().Wait(ctx))
}

// TestFixed verifies the second wait is spaced by the interval
func TestFixed(t *testing.T) {
	p := Fixed(30 * time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	first := time.Since(start)
	require.NoError(t, p.Wait(context.Background()))
	total := time.Since(start)

	assert.Less(t, first, 20*time.Millisecond, "first wait should be immediate")
	assert.GreaterOrEqual(t, total, 30*time.Millisecond, "second wait should honor the interval")
}

// TestFixed_CanceledContext verifies a canceled context aborts the wait
func TestFixed_CanceledContext(t *testing.T) {
	p := Fixed(time.Hour)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx))
}
