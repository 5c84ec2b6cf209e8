package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/cgsnascar/portfolio/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ProjectResponse is the JSON representation of a project.
type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ActionLabel string `json:"actionLabel"`
}

// ReviewResponse is the JSON representation of a published review.
type ReviewResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Review  string `json:"review"`
}

// SubmitReviewRequest is the JSON body accepted by the review submission
// endpoints. The same fields are accepted as URL-encoded form values.
type SubmitReviewRequest struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Review  string `json:"review"`
	Key     string `json:"key"`
}

// SubmitReviewResponse is returned when a review has been stored.
type SubmitReviewResponse struct {
	Message string         `json:"message"`
	Review  ReviewResponse `json:"review"`
}

// HealthResponse is the JSON response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func toProjectResponse(p model.Project) ProjectResponse {
	label := p.ActionLabel
	if label == "" {
		label = model.ActionLabelFor(p.URL)
	}
	return ProjectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		URL:         p.URL,
		ActionLabel: label,
	}
}

func toReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID.String(),
		Name:    r.Name,
		Company: r.Company,
		Review:  r.Review,
	}
}

func (req SubmitReviewRequest) toSubmission() model.ReviewSubmission {
	return model.ReviewSubmission{
		Name:    req.Name,
		Company: req.Company,
		Review:  req.Review,
		Key:     req.Key,
	}
}
