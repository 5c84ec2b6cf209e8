// Package portfolioapi implements the PortfolioAPI port over HTTP.
package portfolioapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
	"github.com/cgsnascar/portfolio/internal/observability"
)

// Compile-time interface satisfaction check.
var _ driven.PortfolioAPI = (*Client)(nil)

// Endpoint paths on the portfolio API.
const (
	ProjectsPath = "/api/projects"
	ReviewsPath  = "/api/reviews"
	SubmitPath   = "/api/review"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// ErrResponseTooLarge is returned when a response body exceeds the read cap.
var ErrResponseTooLarge = errors.New("response body too large")

// Encoding selects how review submissions are serialized.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingForm Encoding = "form"
)

// Client is a thin HTTP client for the portfolio API. It performs exactly one
// request per call: no retries, no caching.
type Client struct {
	http     *http.Client
	baseURL  string
	encoding Encoding
	metrics  *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithEncoding selects JSON or URL-encoded form bodies for submissions.
func WithEncoding(enc Encoding) Option {
	return func(c *Client) { c.encoding = enc }
}

// WithMetrics records every outbound call.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parsing base URL: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		http:     &http.Client{},
		baseURL:  strings.TrimRight(u.String(), "/"),
		encoding: EncodingJSON,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchProjects retrieves the project listing.
func (c *Client) FetchProjects(ctx context.Context) (model.Listing[model.Project], error) {
	return fetchListing[model.Project](ctx, c, ProjectsPath)
}

// FetchReviews retrieves the review listing.
func (c *Client) FetchReviews(ctx context.Context) (model.Listing[model.Review], error) {
	return fetchListing[model.Review](ctx, c, ReviewsPath)
}

// fetchListing issues one GET and classifies the body regardless of status:
// an error payload on a 5xx is a valid non-list body and decodes as
// Unexpected. Transport failures and unparseable bodies are errors.
func fetchListing[T any](ctx context.Context, c *Client, path string) (model.Listing[T], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return model.Listing[T]{}, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req, path)
	if err != nil {
		return model.Listing[T]{}, err
	}

	listing, err := model.DecodeListing[T](body)
	if err != nil {
		return model.Listing[T]{}, fmt.Errorf("fetching %s (status %d): %w", path, status, err)
	}
	return listing, nil
}

// SubmitReview posts one submission. Returns nil for any 2xx response and
// *driven.StatusError otherwise; the response body is not interpreted.
func (c *Client) SubmitReview(ctx context.Context, sub model.ReviewSubmission) error {
	payload, contentType, err := c.encode(sub)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SubmitPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", SubmitPath, err)
	}
	req.Header.Set("Content-Type", contentType)

	_, status, err := c.do(req, SubmitPath)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return &driven.StatusError{Code: status}
	}
	return nil
}

func (c *Client) encode(sub model.ReviewSubmission) ([]byte, string, error) {
	if c.encoding == EncodingForm {
		form := url.Values{}
		form.Set("company", sub.Company)
		form.Set("name", sub.Name)
		form.Set("review", sub.Review)
		form.Set("key", sub.Key)
		return []byte(form.Encode()), "application/x-www-form-urlencoded", nil
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, "", fmt.Errorf("encoding review submission: %w", err)
	}
	return payload, "application/json", nil
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, int, error) {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveExternal(endpoint, 0, time.Since(start))
		return nil, 0, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	c.metrics.ObserveExternal(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	if len(body) > maxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("reading %s response: %w (over %d bytes)", endpoint, ErrResponseTooLarge, maxBodyBytes)
	}

	return body, resp.StatusCode, nil
}
