package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every PORTFOLIO_ env var that Load() reads.
var allConfigKeys = []string{
	"PORTFOLIO_LISTEN_ADDR",
	"PORTFOLIO_API_LISTEN_ADDR",
	"PORTFOLIO_API_BASE_URL",
	"PORTFOLIO_API_TIMEOUT",
	"PORTFOLIO_SUBMIT_ENCODING",
	"PORTFOLIO_REVIEW_VALIDATION",
	"PORTFOLIO_DB_PATH",
	"PORTFOLIO_REVIEW_KEY",
	"PORTFOLIO_SUBMIT_INTERVAL",
	"PORTFOLIO_SUBMIT_BURST",
	"PORTFOLIO_CORS_ORIGIN",
	"PORTFOLIO_SITE_TITLE",
	"PORTFOLIO_SITE_DESCRIPTION",
	"PORTFOLIO_OWNER_NAME",
	"PORTFOLIO_CONTACT_EMAIL",
}

// isolateConfigEnv saves and unsets all PORTFOLIO_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, "127.0.0.1:8080", cfg.APIListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, EncodingJSON, cfg.SubmitEncoding)
	assert.True(t, cfg.ReviewValidation)
	assert.Equal(t, "portfolio.db", cfg.DBPath)
	assert.Equal(t, 10*time.Second, cfg.SubmitInterval)
	assert.Equal(t, 3, cfg.SubmitBurst)
	assert.Empty(t, cfg.CORSOrigin)
	assert.NotEmpty(t, cfg.SiteTitle)
	assert.Equal(t, "Claudio Skala", cfg.OwnerName)
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PORTFOLIO_LISTEN_ADDR", "0.0.0.0:3000")
	t.Setenv("PORTFOLIO_API_BASE_URL", "https://api.cgsnascar.dev/")
	t.Setenv("PORTFOLIO_API_TIMEOUT", "5s")
	t.Setenv("PORTFOLIO_SUBMIT_ENCODING", "FORM")
	t.Setenv("PORTFOLIO_REVIEW_VALIDATION", "false")
	t.Setenv("PORTFOLIO_DB_PATH", "/tmp/test.db")
	t.Setenv("PORTFOLIO_REVIEW_KEY", "s3cret")
	t.Setenv("PORTFOLIO_SUBMIT_INTERVAL", "1m")
	t.Setenv("PORTFOLIO_SUBMIT_BURST", "5")
	t.Setenv("PORTFOLIO_CORS_ORIGIN", "https://cgsnascar.dev")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddr)
	assert.Equal(t, "https://api.cgsnascar.dev", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, EncodingForm, cfg.SubmitEncoding)
	assert.False(t, cfg.ReviewValidation)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.ReviewKey)
	assert.Equal(t, time.Minute, cfg.SubmitInterval)
	assert.Equal(t, 5, cfg.SubmitBurst)
	assert.Equal(t, "https://cgsnascar.dev", cfg.CORSOrigin)
	assert.NoError(t, cfg.RequireReviewKey())
}

func TestRequireReviewKey_Missing(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err, "the site starts without a review key")
	assert.ErrorIs(t, cfg.RequireReviewKey(), ErrReviewKeyNotSet)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "PORTFOLIO_API_BASE_URL", value: "localhost:8080"},
		{key: "PORTFOLIO_API_BASE_URL", value: "ftp://example.com"},
		{key: "PORTFOLIO_API_TIMEOUT", value: "soon"},
		{key: "PORTFOLIO_API_TIMEOUT", value: "-1s"},
		{key: "PORTFOLIO_SUBMIT_ENCODING", value: "xml"},
		{key: "PORTFOLIO_REVIEW_VALIDATION", value: "maybe"},
		{key: "PORTFOLIO_SUBMIT_INTERVAL", value: "not-a-duration"},
		{key: "PORTFOLIO_SUBMIT_BURST", value: "0"},
		{key: "PORTFOLIO_SUBMIT_BURST", value: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
