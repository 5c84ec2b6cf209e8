// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PanelState mirrors the lifecycle of a collection panel for rendering.
type PanelState string

const (
	PanelLoading PanelState = "loading"
	PanelLoaded  PanelState = "loaded"
	PanelErrored PanelState = "errored"
)

// SiteViewModel holds page chrome that does not depend on the API.
type SiteViewModel struct {
	Title        string
	Description  string
	OwnerName    string
	ContactEmail string
	Year         int
	Nav          []NavLink
}

// NavLink is an in-page anchor in the header navigation.
type NavLink struct {
	Label string
	Href  string
}

// ProjectCardViewModel holds presentation-ready data for one project card.
type ProjectCardViewModel struct {
	ID          string
	Title       string
	Description string
	URL         string
	ActionLabel string
}

// ReviewCardViewModel holds presentation-ready data for one review card.
type ReviewCardViewModel struct {
	ID      string
	Name    string
	Company string
	Review  string
}

// ProjectsPanelViewModel is the projects section in one of its states.
type ProjectsPanelViewModel struct {
	State PanelState
	Cards []ProjectCardViewModel
}

// ReviewsPanelViewModel is the reviews section in one of its states.
type ReviewsPanelViewModel struct {
	State PanelState
	Cards []ReviewCardViewModel
}

// ReviewFormViewModel holds the review form's field values and status line.
type ReviewFormViewModel struct {
	Company   string
	Name      string
	Review    string
	Key       string
	Message   string
	Succeeded bool
	CSRFToken string
	Action    string
}

// PageViewModel is the whole portfolio page.
type PageViewModel struct {
	Site      SiteViewModel
	AboutHTML string
	Projects  ProjectsPanelViewModel
	Reviews   ReviewsPanelViewModel
	Form      ReviewFormViewModel
}
