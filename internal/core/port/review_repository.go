package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type ReviewRepositoryPort interface {
	// Create возвращает domain.ErrDuplicateReview на нарушении уникальности
	Create(ctx context.Context, review *domain.Review) error
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error)
	ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.Review, error)
}
