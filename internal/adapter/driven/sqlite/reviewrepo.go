package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewStore = (*ReviewRepo)(nil)

// ReviewRepo is the SQLite implementation of the ReviewStore port interface.
type ReviewRepo struct {
	db *DB
}

// NewReviewRepo creates a new ReviewRepo backed by the given DB.
func NewReviewRepo(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// ListAll returns all reviews in insertion order.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	const query = `SELECT id, company, name, review FROM reviews ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var (
			id  int64
			rev model.Review
		)
		if err := rows.Scan(&id, &rev.Company, &rev.Name, &rev.Review); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rev.ID = model.RecordID(strconv.FormatInt(id, 10))
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// Add inserts a review and returns it with its assigned id. Any id on the
// input is ignored.
func (r *ReviewRepo) Add(ctx context.Context, review model.Review) (model.Review, error) {
	const query = `INSERT INTO reviews (company, name, review) VALUES (?, ?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, review.Company, review.Name, review.Review)
	if err != nil {
		return model.Review{}, fmt.Errorf("add review from %s: %w", review.Company, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Review{}, fmt.Errorf("read review id: %w", err)
	}

	review.ID = model.RecordID(strconv.FormatInt(id, 10))
	return review, nil
}
