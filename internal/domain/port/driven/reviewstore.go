package driven

import (
	"context"
	"errors"

	"github.com/cgsnascar/portfolio/internal/domain/model"
)

// ErrInvalidReviewKey indicates a review submission whose key does not match
// the configured shared secret.
var ErrInvalidReviewKey = errors.New("invalid review key")

// ReviewStore defines the driven port for review persistence.
// ListAll returns reviews in insertion order. Add assigns the identifier and
// returns the stored review.
type ReviewStore interface {
	ListAll(ctx context.Context) ([]model.Review, error)
	Add(ctx context.Context, review model.Review) (model.Review, error)
}
