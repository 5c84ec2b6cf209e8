package driven

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cgsnascar/portfolio/internal/domain/model"
)

// StatusError reports a portfolio API response outside the 2xx class.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("portfolio api responded %d %s", e.Code, http.StatusText(e.Code))
}

// PortfolioAPI defines the driven port for the remote portfolio API the site
// renders from. Read methods return a Listing so that a response of the wrong
// shape is an explicit branch rather than an error. SubmitReview returns nil
// only for a 2xx response and *StatusError for any other status.
type PortfolioAPI interface {
	FetchProjects(ctx context.Context) (model.Listing[model.Project], error)
	FetchReviews(ctx context.Context) (model.Listing[model.Review], error)
	SubmitReview(ctx context.Context, submission model.ReviewSubmission) error
}
