package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) (*ReviewRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ReviewRepository{pool: pool}, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reviews (id, listing_id, reviewer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		review.ID, review.ListingID, review.ReviewerID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) list(ctx context.Context, column string, id uuid.UUID) ([]domain.Review, error) {
	query := fmt.Sprintf(`
		SELECT r.id, r.listing_id, r.reviewer_id, u.username, r.rating, r.comment, r.created_at
		FROM reviews r JOIN users u ON u.id = r.reviewer_id
		WHERE r.%s = $1
		ORDER BY r.created_at DESC, r.id ASC`, column)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ListingID, &rv.ReviewerID, &rv.ReviewerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	return r.list(ctx, "listing_id", listingID)
}

func (r *ReviewRepository) ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.Review, error) {
	return r.list(ctx, "reviewer_id", reviewerID)
}
