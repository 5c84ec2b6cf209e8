package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
)

// SubmissionOutcome records how the last review submission settled.
type SubmissionOutcome string

const (
	SubmissionNone      SubmissionOutcome = ""
	SubmissionInvalid   SubmissionOutcome = "invalid"
	SubmissionSucceeded SubmissionOutcome = "succeeded"
	SubmissionFailed    SubmissionOutcome = "failed"
)

// Default status messages shown under the review form.
const (
	MessageRequired = "All fields are required."
	MessageSuccess  = "Review submitted successfully!"
	MessageRejected = "Failed to submit review. Please try again later."
	MessageError    = "An error occurred. Please try again later."
)

// FormState is the display state of the review form. The zero value is the
// initial empty form with no status message.
type FormState struct {
	Values  model.ReviewSubmission
	Outcome SubmissionOutcome
	Message string
}

// SubmissionMessages overrides the status strings. Empty fields keep defaults.
type SubmissionMessages struct {
	Required string
	Success  string
	Rejected string
	Error    string
}

// SubmissionService sends review submissions to the portfolio API.
type SubmissionService struct {
	api      driven.PortfolioAPI
	validate bool
	messages SubmissionMessages
	logger   *slog.Logger
}

// NewSubmissionService creates a SubmissionService. When validate is true,
// a submission with any empty field is rejected locally without calling the API.
func NewSubmissionService(api driven.PortfolioAPI, validate bool, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		api:      api,
		validate: validate,
		messages: SubmissionMessages{
			Required: MessageRequired,
			Success:  MessageSuccess,
			Rejected: MessageRejected,
			Error:    MessageError,
		},
		logger: logger,
	}
}

// WithMessages replaces the non-empty status strings and returns the service.
func (s *SubmissionService) WithMessages(m SubmissionMessages) *SubmissionService {
	if m.Required != "" {
		s.messages.Required = m.Required
	}
	if m.Success != "" {
		s.messages.Success = m.Success
	}
	if m.Rejected != "" {
		s.messages.Rejected = m.Rejected
	}
	if m.Error != "" {
		s.messages.Error = m.Error
	}
	return s
}

// Submit sends one submission and returns the resulting form state. On
// success the fields are cleared; on any failure they are returned as typed.
func (s *SubmissionService) Submit(ctx context.Context, values model.ReviewSubmission) FormState {
	if s.validate {
		if missing := values.Missing(); len(missing) > 0 {
			return FormState{Values: values, Outcome: SubmissionInvalid, Message: s.messages.Required}
		}
	}

	err := s.api.SubmitReview(ctx, values)
	if err == nil {
		s.logger.Info("review submitted", "company", values.Company)
		return FormState{Outcome: SubmissionSucceeded, Message: s.messages.Success}
	}

	var statusErr *driven.StatusError
	if errors.As(err, &statusErr) {
		s.logger.Warn("review submission rejected", "status", statusErr.Code)
		return FormState{Values: values, Outcome: SubmissionFailed, Message: s.messages.Rejected}
	}

	s.logger.Error("review submission failed", "error", err)
	return FormState{Values: values, Outcome: SubmissionFailed, Message: s.messages.Error}
}
