package web

import (
	vm "github.com/cgsnascar/portfolio/internal/adapter/driving/web/viewmodel"
	"github.com/cgsnascar/portfolio/internal/application"
	"github.com/cgsnascar/portfolio/internal/domain/model"
)

// reviewActionPath is the form's POST target on the site.
const reviewActionPath = "/review"

func toPanelState(s application.PanelStatus) vm.PanelState {
	switch s {
	case application.PanelLoaded:
		return vm.PanelLoaded
	case application.PanelErrored:
		return vm.PanelErrored
	default:
		return vm.PanelLoading
	}
}

// toProjectsPanelViewModel converts a loaded projects panel. Cards keep the
// order the API returned.
func toProjectsPanelViewModel(p application.Panel[model.Project]) vm.ProjectsPanelViewModel {
	cards := make([]vm.ProjectCardViewModel, 0, len(p.Items))
	for _, project := range p.Items {
		cards = append(cards, vm.ProjectCardViewModel{
			ID:          project.ID.String(),
			Title:       project.Title,
			Description: project.Description,
			URL:         project.URL,
			ActionLabel: project.ActionLabel,
		})
	}
	return vm.ProjectsPanelViewModel{State: toPanelState(p.Status), Cards: cards}
}

// toReviewsPanelViewModel converts a loaded reviews panel.
func toReviewsPanelViewModel(p application.Panel[model.Review]) vm.ReviewsPanelViewModel {
	cards := make([]vm.ReviewCardViewModel, 0, len(p.Items))
	for _, review := range p.Items {
		cards = append(cards, vm.ReviewCardViewModel{
			ID:      review.ID.String(),
			Name:    review.Name,
			Company: review.Company,
			Review:  review.Review,
		})
	}
	return vm.ReviewsPanelViewModel{State: toPanelState(p.Status), Cards: cards}
}

// toReviewFormViewModel converts a form state; csrfToken is embedded as a
// hidden field.
func toReviewFormViewModel(state application.FormState, csrfToken string) vm.ReviewFormViewModel {
	return vm.ReviewFormViewModel{
		Company:   state.Values.Company,
		Name:      state.Values.Name,
		Review:    state.Values.Review,
		Key:       state.Values.Key,
		Message:   state.Message,
		Succeeded: state.Outcome == application.SubmissionSucceeded,
		CSRFToken: csrfToken,
		Action:    reviewActionPath,
	}
}

// defaultNav is the header navigation: in-page anchors only.
func defaultNav() []vm.NavLink {
	return []vm.NavLink{
		{Label: "About", Href: "#about"},
		{Label: "Projects", Href: "#projects"},
		{Label: "Reviews", Href: "#reviews"},
		{Label: "Contact", Href: "#contact"},
	}
}
