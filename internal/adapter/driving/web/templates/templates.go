// Package templates holds the templ components that make up the portfolio
// page. Run `go tool templ generate` after editing a .templ file.
package templates

// HTMXScriptURL is the htmx build the layout loads for the review form.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// ReviewFormID is the element id htmx swaps on submission.
const ReviewFormID = "review-form"

// Panel status lines.
const (
	ProjectsLoadingText = "Loading projects..."
	ProjectsEmptyText   = "No projects available"
	ProjectsErrorText   = "Error loading projects."
	ReviewsLoadingText  = "Loading reviews..."
	ReviewsEmptyText    = "No Reviews found"
	ReviewsErrorText    = "Error loading reviews."
)
