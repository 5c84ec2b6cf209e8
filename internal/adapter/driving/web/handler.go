// Package web implements the HTML driving adapter using templ components.
package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/cgsnascar/portfolio/internal/adapter/driving/web/templates"
	vm "github.com/cgsnascar/portfolio/internal/adapter/driving/web/viewmodel"
	"github.com/cgsnascar/portfolio/internal/application"
	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/observability"
)

// maxFormBytes caps the size of a posted review form.
const maxFormBytes = 64 << 10

// csrfFailedMessage is shown under the form when its token does not match
// the cookie, typically a form left open across a cookie reset.
const csrfFailedMessage = "Your session expired. Please submit the form again."

// SiteConfig is the page chrome that comes from configuration.
type SiteConfig struct {
	Title        string
	Description  string
	OwnerName    string
	ContactEmail string
}

// Handler is the web driving adapter that serves the portfolio page.
type Handler struct {
	panels      *application.PanelService
	submissions *application.SubmissionService
	site        SiteConfig
	aboutHTML   string
	metrics     *observability.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

// NewHandler creates a Handler with all required dependencies. metrics may be
// nil.
func NewHandler(
	panels *application.PanelService,
	submissions *application.SubmissionService,
	site SiteConfig,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		panels:      panels,
		submissions: submissions,
		site:        site,
		aboutHTML:   RenderMarkdown(AboutMarkdown),
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Home renders the full page with both panels and an empty review form.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r)
	h.renderPage(w, r, application.FormState{}, token)
}

// SubmitReview handles the review form. htmx requests get the form fragment
// back; plain form posts get the whole page.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("invalid review form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sub := model.ReviewSubmission{
		Company: r.PostFormValue("company"),
		Name:    r.PostFormValue("name"),
		Review:  r.PostFormValue("review"),
		Key:     r.PostFormValue("key"),
	}

	var state application.FormState
	if validateCSRF(r) {
		state = h.submissions.Submit(r.Context(), sub)
		h.metrics.ObserveSubmission(submissionResult(state.Outcome))
	} else {
		// Nothing is sent; the form comes back with its values and the current token.
		h.logger.Warn("review form rejected: csrf token mismatch")
		h.metrics.ObserveSubmission("csrf")
		state = application.FormState{
			Values:  sub,
			Outcome: application.SubmissionFailed,
			Message: csrfFailedMessage,
		}
	}
	token := csrfToken(w, r)

	if r.Header.Get("HX-Request") == "true" {
		h.render(w, r, templates.ReviewForm(toReviewFormViewModel(state, token)))
		return
	}
	h.renderPage(w, r, state, token)
}

// Healthz reports that the site process is serving.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, form application.FormState, token string) {
	page := h.panels.LoadPage(r.Context())

	// The visitor left while the panels were loading; nothing to render to.
	if err := r.Context().Err(); err != nil {
		h.logger.Debug("page render abandoned", "error", err)
		return
	}

	h.render(w, r, templates.Page(vm.PageViewModel{
		Site:      h.siteViewModel(),
		AboutHTML: h.aboutHTML,
		Projects:  toProjectsPanelViewModel(page.Projects),
		Reviews:   toReviewsPanelViewModel(page.Reviews),
		Form:      toReviewFormViewModel(form, token),
	}))
}

// render buffers the component so a render error can still become a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) siteViewModel() vm.SiteViewModel {
	return vm.SiteViewModel{
		Title:        h.site.Title,
		Description:  h.site.Description,
		OwnerName:    h.site.OwnerName,
		ContactEmail: h.site.ContactEmail,
		Year:         h.now().Year(),
		Nav:          defaultNav(),
	}
}

func submissionResult(o application.SubmissionOutcome) string {
	if o == application.SubmissionNone {
		return "none"
	}
	return string(o)
}
