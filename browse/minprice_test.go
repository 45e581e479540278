package browse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession scripts every Session operation so extraction strategy
// decisions can be tested without a browser.
type fakeSession struct {
	navErr      error
	readyErr    error
	clickable   map[string]bool
	clicked     []string
	sliderValue string
	sliderErr   error
	pageTexts   []string
	textsErr    error
	closed      int
}

func (f *fakeSession) Navigate(ctx context.Context, url string) error { return f.navErr }

func (f *fakeSession) WaitReady(ctx context.Context, timeout time.Duration) error {
	return f.readyErr
}

func (f *fakeSession) ClickButton(ctx context.Context, label string, timeout time.Duration) error {
	if f.clickable[label] {
		f.clicked = append(f.clicked, label)
		return nil
	}
	return errors.New("no such button")
}

func (f *fakeSession) InputValue(ctx context.Context, xpath string, timeout time.Duration) (string, error) {
	return f.sliderValue, f.sliderErr
}

func (f *fakeSession) TextsContaining(ctx context.Context, substr string) ([]string, error) {
	return f.pageTexts, f.textsErr
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

// TestMinPrice_Slider verifies the primary strategy wins when the
// slider input parses
func TestMinPrice_Slider(t *testing.T) {
	sess := &fakeSession{
		sliderValue: "$45",
		pageTexts:   []string{"$9.99 parking"},
	}
	e := &Extractor{Session: sess}

	got := e.MinPrice(context.Background(), "https://example.com/evt")

	require.NotNil(t, got)
	assert.Equal(t, 45.0, *got, "slider value should win over page scan")
}

// TestMinPrice_FallbackWhenSliderMissing verifies the page scan runs
// when the slider cannot be found
func TestMinPrice_FallbackWhenSliderMissing(t *testing.T) {
	sess := &fakeSession{
		sliderErr: errors.New("wait timed out"),
		pageTexts: []string{"Tickets from $129", "Lot parking $45"},
	}
	e := &Extractor{Session: sess}

	got := e.MinPrice(context.Background(), "https://example.com/evt")

	require.NotNil(t, got)
	assert.Equal(t, 45.0, *got)
}

// TestMinPrice_FallbackWhenSliderUnparsable verifies an unparsable
// slider value hands off to the page scan
func TestMinPrice_FallbackWhenSliderUnparsable(t *testing.T) {
	sess := &fakeSession{
		sliderValue: "no numbers here",
		pageTexts:   []string{"$62 lower bowl"},
	}
	e := &Extractor{Session: sess}

	got := e.MinPrice(context.Background(), "https://example.com/evt")

	require.NotNil(t, got)
	assert.Equal(t, 62.0, *got)
}

// TestMinPrice_NavigationFailure verifies a load failure yields no
// value instead of an error
func TestMinPrice_NavigationFailure(t *testing.T) {
	sess := &fakeSession{navErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	e := &Extractor{Session: sess}

	assert.Nil(t, e.MinPrice(context.Background(), "https://bad.example/evt"))
}

// TestMinPrice_ReadinessTimeout verifies a readiness timeout yields no
// value
func TestMinPrice_ReadinessTimeout(t *testing.T) {
	sess := &fakeSession{readyErr: context.DeadlineExceeded}
	e := &Extractor{Session: sess}

	assert.Nil(t, e.MinPrice(context.Background(), "https://slow.example/evt"))
}

// TestMinPrice_NothingFound verifies both strategies failing yields no
// value
func TestMinPrice_NothingFound(t *testing.T) {
	sess := &fakeSession{
		sliderErr: errors.New("not found"),
		pageTexts: []string{"no prices on this page"},
	}
	e := &Extractor{Session: sess}

	assert.Nil(t, e.MinPrice(context.Background(), "https://example.com/evt"))
}

// TestDismissConsent_FirstSuccessStops verifies the attempt sequence
// halts at the first clickable label
func TestDismissConsent_FirstSuccessStops(t *testing.T) {
	sess := &fakeSession{clickable: map[string]bool{"Agree": true, "Accept All": true}}

	ok := DismissConsent(context.Background(), sess, DefaultConsentAttempts())

	assert.True(t, ok)
	assert.Equal(t, []string{"Agree"}, sess.clicked,
		"should stop after the first successful click")
}

// TestDismissConsent_AllFail verifies total failure is silent
func TestDismissConsent_AllFail(t *testing.T) {
	sess := &fakeSession{}

	ok := DismissConsent(context.Background(), sess, DefaultConsentAttempts())

	assert.False(t, ok)
	assert.Empty(t, sess.clicked)
}

// TestDismissConsent_CustomAttempts verifies the sequence is pluggable
func TestDismissConsent_CustomAttempts(t *testing.T) {
	sess := &fakeSession{clickable: map[string]bool{"Verstanden": true}}
	attempts := []DismissAttempt{{Label: "Verstanden", Timeout: time.Second}}

	assert.True(t, DismissConsent(context.Background(), sess, attempts))
	assert.Equal(t, []string{"Verstanden"}, sess.clicked)
}
