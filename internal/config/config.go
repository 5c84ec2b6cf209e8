// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrReviewKeyNotSet is returned by RequireReviewKey when PORTFOLIO_REVIEW_KEY
// is absent.
var ErrReviewKeyNotSet = errors.New("PORTFOLIO_REVIEW_KEY environment variable not set")

// Submission body encodings accepted in PORTFOLIO_SUBMIT_ENCODING.
const (
	EncodingJSON = "json"
	EncodingForm = "form"
)

// Config holds the application configuration loaded from environment variables.
// Both binaries read the same Config; each uses the fields that concern it.
type Config struct {
	// Site.
	ListenAddr       string
	APIBaseURL       string
	APITimeout       time.Duration
	SubmitEncoding   string
	ReviewValidation bool
	SiteTitle        string
	SiteDescription  string
	OwnerName        string
	ContactEmail     string

	// API.
	APIListenAddr  string
	DBPath         string
	ReviewKey      string
	SubmitInterval time.Duration
	SubmitBurst    int
	CORSOrigin     string
}

// RequireReviewKey returns ErrReviewKeyNotSet when no review key is
// configured. The API refuses to start without one; the site never needs it.
func (c *Config) RequireReviewKey() error {
	if c.ReviewKey == "" {
		return ErrReviewKeyNotSet
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional. Defaults: PORTFOLIO_LISTEN_ADDR (127.0.0.1:3000),
// PORTFOLIO_API_LISTEN_ADDR (127.0.0.1:8080), PORTFOLIO_API_BASE_URL
// (http://localhost:8080), PORTFOLIO_API_TIMEOUT (0, transport default),
// PORTFOLIO_SUBMIT_ENCODING (json), PORTFOLIO_REVIEW_VALIDATION (true),
// PORTFOLIO_DB_PATH (portfolio.db), PORTFOLIO_SUBMIT_INTERVAL (10s),
// PORTFOLIO_SUBMIT_BURST (3). Site chrome comes from PORTFOLIO_SITE_TITLE,
// PORTFOLIO_SITE_DESCRIPTION, PORTFOLIO_OWNER_NAME and PORTFOLIO_CONTACT_EMAIL.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:       "127.0.0.1:3000",
		APIBaseURL:       "http://localhost:8080",
		SubmitEncoding:   EncodingJSON,
		ReviewValidation: true,
		SiteTitle:        "Claudio Skala | Junior Web Developer",
		SiteDescription:  "Claudio Skala is an aspiring junior web developer.",
		OwnerName:        "Claudio Skala",
		ContactEmail:     "webmaster@cgsnascar.dev",
		APIListenAddr:    "127.0.0.1:8080",
		DBPath:           "portfolio.db",
		SubmitInterval:   10 * time.Second,
		SubmitBurst:      3,
	}

	lookupString("PORTFOLIO_LISTEN_ADDR", &cfg.ListenAddr)
	lookupString("PORTFOLIO_API_LISTEN_ADDR", &cfg.APIListenAddr)
	lookupString("PORTFOLIO_DB_PATH", &cfg.DBPath)
	lookupString("PORTFOLIO_SITE_TITLE", &cfg.SiteTitle)
	lookupString("PORTFOLIO_SITE_DESCRIPTION", &cfg.SiteDescription)
	lookupString("PORTFOLIO_OWNER_NAME", &cfg.OwnerName)
	lookupString("PORTFOLIO_CONTACT_EMAIL", &cfg.ContactEmail)
	lookupString("PORTFOLIO_CORS_ORIGIN", &cfg.CORSOrigin)
	cfg.ReviewKey = os.Getenv("PORTFOLIO_REVIEW_KEY")

	if v, ok := os.LookupEnv("PORTFOLIO_API_BASE_URL"); ok {
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("PORTFOLIO_API_BASE_URL must be an absolute http(s) URL, got %q", v)
		}
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}

	if v, ok := os.LookupEnv("PORTFOLIO_SUBMIT_ENCODING"); ok {
		enc := strings.ToLower(strings.TrimSpace(v))
		if enc != EncodingJSON && enc != EncodingForm {
			return nil, fmt.Errorf("PORTFOLIO_SUBMIT_ENCODING must be %q or %q, got %q", EncodingJSON, EncodingForm, v)
		}
		cfg.SubmitEncoding = enc
	}

	if v, ok := os.LookupEnv("PORTFOLIO_REVIEW_VALIDATION"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PORTFOLIO_REVIEW_VALIDATION has invalid boolean %q: %w", v, err)
		}
		cfg.ReviewValidation = parsed
	}

	if err := lookupDuration("PORTFOLIO_API_TIMEOUT", &cfg.APITimeout); err != nil {
		return nil, err
	}
	if err := lookupDuration("PORTFOLIO_SUBMIT_INTERVAL", &cfg.SubmitInterval); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("PORTFOLIO_SUBMIT_BURST"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("PORTFOLIO_SUBMIT_BURST must be a positive integer, got %q", v)
		}
		cfg.SubmitBurst = parsed
	}

	return cfg, nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed < 0 {
		return fmt.Errorf("%s must not be negative, got %q", key, v)
	}
	*dst = parsed
	return nil
}
