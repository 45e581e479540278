package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault verifies the built-in configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "K8vZ91718T0", cfg.AttractionID)
	assert.Equal(t, "US", cfg.CountryCode)
	assert.True(t, cfg.IsHeadless())
	assert.Equal(t, 300*time.Millisecond, cfg.PageDelayDuration())
	assert.Equal(t, 3*time.Second, cfg.EventDelayDuration())
	assert.Empty(t, cfg.APIKey, "no credential is built in")
}

// TestLoadFile_Missing verifies a missing config file yields defaults,
// not an error
func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default().AttractionID, cfg.AttractionID)
}

// TestLoadFile_Overrides verifies file values override defaults
func TestLoadFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_key: file-key
country_code: CA
event_delay: 500ms
headless: false
output_csv: out.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "CA", cfg.CountryCode)
	assert.Equal(t, 500*time.Millisecond, cfg.EventDelayDuration())
	assert.False(t, cfg.IsHeadless())
	assert.Equal(t, "out.csv", cfg.OutputCSV)
	assert.Equal(t, "K8vZ91718T0", cfg.AttractionID, "unset fields keep defaults")
}

// TestLoadFile_Malformed verifies parse failures surface as errors
func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: [broken"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

// TestEnvOverrides verifies environment variables win over file values
func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: file-key"), 0o600))

	t.Setenv("TICKETPRICES_API_KEY", "env-key")
	t.Setenv("TICKETPRICES_USER_AGENT", "env-agent")
	t.Setenv("TICKETPRICES_DB", "/tmp/env.db")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "env-agent", cfg.UserAgent)
	assert.Equal(t, "/tmp/env.db", cfg.TargetsDB)
}

// TestParseDelay_Malformed verifies bad durations fall back to defaults
func TestParseDelay_Malformed(t *testing.T) {
	cfg := Default()
	cfg.PageDelay = "soon"
	cfg.EventDelay = "-4s"

	assert.Equal(t, 300*time.Millisecond, cfg.PageDelayDuration())
	assert.Equal(t, 3*time.Second, cfg.EventDelayDuration())
}
