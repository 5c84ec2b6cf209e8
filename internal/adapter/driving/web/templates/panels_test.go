package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/cgsnascar/portfolio/internal/adapter/driving/web/viewmodel"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestProjectsPanel_States(t *testing.T) {
	tests := []struct {
		name  string
		panel vm.ProjectsPanelViewModel
		want  string
	}{
		{"loading", vm.ProjectsPanelViewModel{State: vm.PanelLoading}, ProjectsLoadingText},
		{"errored", vm.ProjectsPanelViewModel{State: vm.PanelErrored}, ProjectsErrorText},
		{"empty", vm.ProjectsPanelViewModel{State: vm.PanelLoaded}, ProjectsEmptyText},
		{
			"cards",
			vm.ProjectsPanelViewModel{State: vm.PanelLoaded, Cards: []vm.ProjectCardViewModel{
				{ID: "1", Title: "Site", URL: "https://example.com", ActionLabel: "Show Website"},
			}},
			`<a href="https://example.com" target="_blank" rel="noopener noreferrer">Show Website</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, ProjectsPanel(tt.panel))
			assert.Contains(t, out, `<section id="projects">`)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestReviewsPanel_States(t *testing.T) {
	tests := []struct {
		name  string
		panel vm.ReviewsPanelViewModel
		want  string
	}{
		{"loading", vm.ReviewsPanelViewModel{State: vm.PanelLoading}, ReviewsLoadingText},
		{"errored", vm.ReviewsPanelViewModel{State: vm.PanelErrored}, ReviewsErrorText},
		{"empty", vm.ReviewsPanelViewModel{State: vm.PanelLoaded}, ReviewsEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, ReviewsPanel(tt.panel, vm.ReviewFormViewModel{Action: "/review"}))
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, `id="`+ReviewFormID+`"`, "form renders in every state")
		})
	}
}

func TestReviewForm_HTMXAttributes(t *testing.T) {
	out := render(t, ReviewForm(vm.ReviewFormViewModel{Action: "/review", CSRFToken: "tok"}))

	assert.Contains(t, out, `method="post" action="/review"`)
	assert.Contains(t, out, `hx-post="/review"`)
	assert.Contains(t, out, `hx-swap="outerHTML"`)
	assert.Contains(t, out, `hx-disabled-elt="find button"`)
	assert.Contains(t, out, `<input type="hidden" name="csrf_token" value="tok">`)
	assert.Contains(t, out, `<input type="password" id="key" name="key" value="">`)
	assert.Contains(t, out, ">API Key</label>")
}

func TestReviewForm_StatusLine(t *testing.T) {
	ok := render(t, ReviewForm(vm.ReviewFormViewModel{Message: "done", Succeeded: true}))
	assert.Contains(t, ok, `<p class="form-status status-success" role="status">done</p>`)

	failed := render(t, ReviewForm(vm.ReviewFormViewModel{Message: "nope"}))
	assert.Contains(t, failed, `<p class="form-status status-error" role="status">nope</p>`)
}

func TestHeader_NavigationAnchors(t *testing.T) {
	out := render(t, Header(vm.SiteViewModel{Nav: []vm.NavLink{
		{Label: "About", Href: "#about"},
		{Label: "Contact", Href: "#contact"},
	}}))

	assert.Contains(t, out, `<a href="#about">About</a>`)
	assert.Contains(t, out, `<a href="#contact">Contact</a>`)
}
