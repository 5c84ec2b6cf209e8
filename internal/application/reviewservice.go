package application

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
)

// ReviewService accepts review submissions on the API side. A submission is
// stored only when every field is present and its key matches the shared
// secret. It depends only on port interfaces.
type ReviewService struct {
	reviewStore driven.ReviewStore
	key         string
}

// NewReviewService creates a ReviewService gated by the given shared secret.
func NewReviewService(reviewStore driven.ReviewStore, key string) *ReviewService {
	return &ReviewService{
		reviewStore: reviewStore,
		key:         key,
	}
}

// List returns all published reviews in insertion order.
func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewStore.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Authorize reports whether a submission would be accepted without storing
// it. Returns model.ErrMissingFields or driven.ErrInvalidReviewKey.
func (s *ReviewService) Authorize(sub model.ReviewSubmission) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	if s.key == "" || subtle.ConstantTimeCompare([]byte(sub.Key), []byte(s.key)) != 1 {
		return driven.ErrInvalidReviewKey
	}
	return nil
}

// Submit authorizes and stores a submission. The key is checked before
// anything is written and is never persisted.
func (s *ReviewService) Submit(ctx context.Context, sub model.ReviewSubmission) (model.Review, error) {
	if err := s.Authorize(sub); err != nil {
		return model.Review{}, err
	}

	stored, err := s.reviewStore.Add(ctx, model.Review{
		Name:    sub.Name,
		Company: sub.Company,
		Review:  sub.Review,
	})
	if err != nil {
		return model.Review{}, fmt.Errorf("store review: %w", err)
	}

	return stored, nil
}
