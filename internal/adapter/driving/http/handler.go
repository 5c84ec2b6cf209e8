// Package httphandler implements the JSON API driving adapter: the portfolio
// API consumed by the site, plus middleware shared by both servers.
package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/cgsnascar/portfolio/internal/application"
	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
	"github.com/cgsnascar/portfolio/internal/observability"
)

// maxSubmitBytes caps the size of a review submission body.
const maxSubmitBytes = 64 << 10

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the HTTP driving adapter that serves the portfolio API.
type Handler struct {
	projectStore driven.ProjectStore
	reviewSvc    *application.ReviewService
	limiter      *rate.Limiter
	pinger       Pinger
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. limiter,
// pinger, and metrics may be nil.
func NewHandler(
	projectStore driven.ProjectStore,
	reviewSvc *application.ReviewService,
	limiter *rate.Limiter,
	pinger Pinger,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		projectStore: projectStore,
		reviewSvc:    reviewSvc,
		limiter:      limiter,
		pinger:       pinger,
		metrics:      metrics,
		logger:       logger,
	}
}

// RegisterAPIRoutes registers all API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/projects", h.ListProjects)
	mux.HandleFunc("GET /api/reviews", h.ListReviews)
	mux.HandleFunc("POST /api/review", h.SubmitReview)
	mux.HandleFunc("POST /api/submit-review", h.SubmitReview)
	mux.HandleFunc("GET /healthz", h.Health)
}

// NewServeMux creates an http.Handler with all API routes registered and
// wrapped with CORS, logging, metrics, and recovery middleware. The metrics
// endpoint is mounted when metrics is non-nil.
func NewServeMux(h *Handler, corsOrigin string) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}

	return ApplyMiddleware(CORS(corsOrigin, mux), h.logger, h.metrics)
}

// ListProjects returns all projects in id order.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectStore.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch projects")
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListReviews returns all published reviews in insertion order.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch reviews")
		return
	}

	resp := make([]ReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		resp = append(resp, toReviewResponse(rev))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SubmitReview stores a new review. The body is JSON or URL-encoded form
// data carrying company, name, review, and key. Only submissions that pass
// validation and the key check draw from the rate limiter.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBytes)
	req, err := decodeSubmission(r)
	if err != nil {
		h.metrics.ObserveSubmission("invalid")
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	sub := req.toSubmission()
	if !h.admit(w, req, h.reviewSvc.Authorize(sub)) {
		return
	}

	if h.limiter != nil && !h.limiter.Allow() {
		h.metrics.ObserveSubmission("limited")
		w.Header().Set("Retry-After", "10")
		writeError(w, http.StatusTooManyRequests, "too many submissions, try again later")
		return
	}

	stored, err := h.reviewSvc.Submit(r.Context(), sub)
	if !h.admit(w, req, err) {
		return
	}

	h.metrics.ObserveSubmission("accepted")
	h.logger.Info("review stored", "id", stored.ID, "company", stored.Company)
	writeJSON(w, http.StatusOK, SubmitReviewResponse{
		Message: "Review submitted successfully",
		Review:  toReviewResponse(stored),
	})
}

// admit writes the error response for a refused submission and reports
// whether the request may proceed.
func (h *Handler) admit(w http.ResponseWriter, req SubmitReviewRequest, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, model.ErrMissingFields):
		h.metrics.ObserveSubmission("invalid")
		writeError(w, http.StatusBadRequest, "all fields are required")
	case errors.Is(err, driven.ErrInvalidReviewKey):
		h.metrics.ObserveSubmission("unauthorized")
		h.logger.Warn("review submission with invalid key", "company", req.Company)
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.metrics.ObserveSubmission("error")
		h.logger.Error("failed to save review", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save review")
	}
	return false
}

// Health reports whether the API and its database are reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Time:   time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeSubmission reads a submission from a JSON or URL-encoded body. A
// missing Content-Type is treated as JSON.
func decodeSubmission(r *http.Request) (SubmitReviewRequest, error) {
	var req SubmitReviewRequest

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return req, err
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxSubmitBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, err
		}
		req.Company = r.PostFormValue("company")
		req.Name = r.PostFormValue("name")
		req.Review = r.PostFormValue("review")
		req.Key = r.PostFormValue("key")
	default:
		return req, errors.New("unsupported content type " + mediaType)
	}

	return req, nil
}
