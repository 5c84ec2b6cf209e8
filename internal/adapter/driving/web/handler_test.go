package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgsnascar/portfolio/internal/adapter/driving/web/templates"
	"github.com/cgsnascar/portfolio/internal/application"
	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
)

// --- Fake PortfolioAPI ---

type fakeAPI struct {
	projects    model.Listing[model.Project]
	projectsErr error
	reviews     model.Listing[model.Review]
	reviewsErr  error
	submitErr   error

	projectCalls atomic.Int32
	reviewCalls  atomic.Int32
	submitCalls  atomic.Int32
	submitted    model.ReviewSubmission
}

func (f *fakeAPI) FetchProjects(_ context.Context) (model.Listing[model.Project], error) {
	f.projectCalls.Add(1)
	return f.projects, f.projectsErr
}

func (f *fakeAPI) FetchReviews(_ context.Context) (model.Listing[model.Review], error) {
	f.reviewCalls.Add(1)
	return f.reviews, f.reviewsErr
}

func (f *fakeAPI) SubmitReview(_ context.Context, sub model.ReviewSubmission) error {
	f.submitCalls.Add(1)
	f.submitted = sub
	return f.submitErr
}

func newTestHandler(api *fakeAPI) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(
		application.NewPanelService(api, logger),
		application.NewSubmissionService(api, true, logger),
		SiteConfig{
			Title:        "Test Portfolio",
			Description:  "A test portfolio",
			OwnerName:    "Tester",
			ContactEmail: "me@example.com",
		},
		nil,
		logger,
	)
	h.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return mux
}

const testToken = "test-csrf-token"

func reviewPost(t *testing.T, values url.Values, htmx bool) *http.Request {
	t.Helper()
	values.Set(csrfFormField, testToken)
	req := httptest.NewRequest(http.MethodPost, "/review", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testToken})
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func completeForm() url.Values {
	return url.Values{
		"company": {"Acme"},
		"name":    {"Jane"},
		"review":  {"Great work"},
		"key":     {"secret"},
	}
}

// --- Home ---

func TestHome_RendersPanelsInServerOrder(t *testing.T) {
	api := &fakeAPI{
		projects: model.Sequence([]model.Project{
			{ID: "2", Title: "Portfolio", Description: "This site", URL: "https://github.com/me/portfolio", ActionLabel: model.ActionShowCode},
			{ID: "1", Title: "Blog", Description: "Writing", URL: "https://blog.example.com", ActionLabel: model.ActionShowWebsite},
		}),
		reviews: model.Sequence([]model.Review{
			{ID: "7", Name: "Jane", Company: "Acme", Review: "Great work"},
		}),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()

	assert.Contains(t, body, "<title>Test Portfolio</title>")
	assert.Contains(t, body, `<meta name="description" content="A test portfolio">`)
	assert.Less(t, strings.Index(body, "Portfolio</h2>"), strings.Index(body, "Blog</h2>"))
	assert.Contains(t, body, `<a href="https://github.com/me/portfolio" target="_blank" rel="noopener noreferrer">Show Code</a>`)
	assert.Contains(t, body, `<a href="https://blog.example.com" target="_blank" rel="noopener noreferrer">Show Website</a>`)
	assert.Contains(t, body, "<h2>Jane</h2><h3>Acme</h3><p>Great work</p>")
	assert.Contains(t, body, `id="about"`)
	assert.Contains(t, body, `<strong>Claudio</strong>`)
	assert.Contains(t, body, `id="contact"`)
	assert.Contains(t, body, `href="mailto:me@example.com"`)
	assert.Contains(t, body, "&copy; 2025 Tester")
	assert.Contains(t, body, templates.HTMXScriptURL)
	assert.NotContains(t, body, "form-status", "initial form has no status line")
}

func TestHome_FetchesEachPanelOnce(t *testing.T) {
	api := &fakeAPI{
		projects: model.Sequence([]model.Project{}),
		reviews:  model.Sequence([]model.Review{}),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, int32(1), api.projectCalls.Load())
	assert.Equal(t, int32(1), api.reviewCalls.Load())
	assert.Equal(t, int32(0), api.submitCalls.Load())
}

func TestHome_EmptyPanels(t *testing.T) {
	api := &fakeAPI{
		projects: model.Sequence([]model.Project{}),
		reviews:  model.Unexpected[model.Review]([]byte(`{"error":"boom"}`)),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, templates.ProjectsEmptyText)
	assert.Contains(t, body, templates.ReviewsEmptyText)
	assert.NotContains(t, body, templates.ProjectsErrorText)
	assert.NotContains(t, body, templates.ReviewsErrorText)
}

func TestHome_ReadFailuresShowInlineErrors(t *testing.T) {
	api := &fakeAPI{
		projectsErr: errors.New("connection refused"),
		reviewsErr:  errors.New("connection refused"),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, templates.ProjectsErrorText)
	assert.Contains(t, body, templates.ReviewsErrorText)
	assert.Contains(t, body, `id="review-form"`, "the form is still usable")
}

func TestHome_OnePanelFailureLeavesOtherIntact(t *testing.T) {
	api := &fakeAPI{
		projectsErr: errors.New("timeout"),
		reviews: model.Sequence([]model.Review{
			{ID: "1", Name: "Jane", Company: "Acme", Review: "Great work"},
		}),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, templates.ProjectsErrorText)
	assert.Contains(t, body, "<h2>Jane</h2>")
}

func TestHome_EscapesRemoteContent(t *testing.T) {
	api := &fakeAPI{
		projects: model.Sequence([]model.Project{
			{ID: "1", Title: "<script>alert(1)</script>", URL: "javascript:alert(1)", ActionLabel: model.ActionShowWebsite},
		}),
		reviews: model.Sequence([]model.Review{
			{ID: "1", Name: `"><img src=x>`, Company: "Acme", Review: "ok"},
		}),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "javascript:alert")
	assert.NotContains(t, body, "<img src=x>")
}

func TestHome_IssuesCSRFCookieAndField(t *testing.T) {
	api := &fakeAPI{}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, rec.Body.String(), `name="csrf_token" value="`+cookies[0].Value+`"`)
}

func TestHome_CancelledRequestRendersNothing(t *testing.T) {
	api := &fakeAPI{
		projects: model.Sequence([]model.Project{{ID: "1", Title: "Late"}}),
		reviews:  model.Sequence([]model.Review{}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, req)

	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

// --- SubmitReview ---

func TestSubmitReview_MissingCSRFRerendersPage(t *testing.T) {
	api := &fakeAPI{}
	req := httptest.NewRequest(http.MethodPost, "/review", strings.NewReader(completeForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(0), api.submitCalls.Load())

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Contains(t, body, csrfFailedMessage)
	assert.Contains(t, body, `value="Acme"`)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "a token is issued so the retry can succeed")
	assert.Contains(t, body, `name="csrf_token" value="`+cookies[0].Value+`"`)
}

func TestSubmitReview_MismatchedCSRFKeepsTypedValues(t *testing.T) {
	api := &fakeAPI{}
	values := completeForm()
	req := reviewPost(t, values, true)
	req.Header.Set("X-CSRF-Token", "forged")
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(0), api.submitCalls.Load())

	body := rec.Body.String()
	assert.False(t, strings.HasPrefix(body, "<!doctype html>"), "htmx gets the fragment only")
	assert.Contains(t, body, `<p class="form-status status-error" role="status">`+csrfFailedMessage+`</p>`)
	assert.Contains(t, body, `value="Acme"`)
	assert.Contains(t, body, `value="Jane"`)
	assert.Contains(t, body, ">Great work</textarea>")
	assert.Contains(t, body, `name="csrf_token" value="`+testToken+`"`)

	// The re-rendered token is accepted on retry.
	retry := httptest.NewRecorder()
	newTestHandler(api).ServeHTTP(retry, reviewPost(t, values, true))
	require.Equal(t, http.StatusOK, retry.Code)
	assert.Equal(t, int32(1), api.submitCalls.Load())
}

func TestSubmitReview_HTMXSuccessReturnsClearedFragment(t *testing.T) {
	api := &fakeAPI{}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, reviewPost(t, completeForm(), true))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<form id="review-form"`), "fragment only")
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, application.MessageSuccess)
	assert.Contains(t, body, "status-success")
	assert.Contains(t, body, `name="company" value=""`)
	assert.Contains(t, body, `name="key" value=""`)
	assert.Contains(t, body, `<textarea id="review" name="review" rows="4"></textarea>`)

	assert.Equal(t, int32(1), api.submitCalls.Load())
	assert.Equal(t, model.ReviewSubmission{Company: "Acme", Name: "Jane", Review: "Great work", Key: "secret"}, api.submitted)
	assert.Equal(t, int32(0), api.projectCalls.Load(), "fragment responses do not reload panels")
	assert.Equal(t, int32(0), api.reviewCalls.Load())
}

func TestSubmitReview_MissingFieldKeepsValuesWithoutCalling(t *testing.T) {
	api := &fakeAPI{}
	values := completeForm()
	values.Set("key", "")
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, reviewPost(t, values, true))

	body := rec.Body.String()
	assert.Contains(t, body, application.MessageRequired)
	assert.Contains(t, body, "status-error")
	assert.Contains(t, body, `name="company" value="Acme"`)
	assert.Contains(t, body, `name="name" value="Jane"`)
	assert.Contains(t, body, ">Great work</textarea>")
	assert.Equal(t, int32(0), api.submitCalls.Load())
}

func TestSubmitReview_RejectedKeepsValues(t *testing.T) {
	api := &fakeAPI{submitErr: &driven.StatusError{Code: http.StatusUnauthorized}}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, reviewPost(t, completeForm(), true))

	body := rec.Body.String()
	assert.Contains(t, body, application.MessageRejected)
	assert.Contains(t, body, `name="key" value="secret"`)
	assert.Equal(t, int32(1), api.submitCalls.Load())
}

func TestSubmitReview_TransportErrorKeepsValues(t *testing.T) {
	api := &fakeAPI{submitErr: errors.New("dial tcp: connection refused")}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, reviewPost(t, completeForm(), true))

	body := rec.Body.String()
	assert.Contains(t, body, application.MessageError)
	assert.Contains(t, body, `name="company" value="Acme"`)
}

func TestSubmitReview_PlainPostRendersFullPage(t *testing.T) {
	api := &fakeAPI{
		projects: model.Sequence([]model.Project{}),
		reviews:  model.Sequence([]model.Review{}),
	}
	rec := httptest.NewRecorder()

	newTestHandler(api).ServeHTTP(rec, reviewPost(t, completeForm(), false))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Contains(t, body, application.MessageSuccess)
	assert.Equal(t, int32(1), api.submitCalls.Load())
	assert.Equal(t, int32(1), api.projectCalls.Load())
	assert.Equal(t, int32(1), api.reviewCalls.Load())
}

// --- Misc routes ---

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()

	newTestHandler(&fakeAPI{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStaticAssets(t *testing.T) {
	rec := httptest.NewRecorder()

	newTestHandler(&fakeAPI{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".review-form")
}

func TestUnknownPathIsNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	newTestHandler(&fakeAPI{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
