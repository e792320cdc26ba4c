package usecases_port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type AddFavouriteUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID) error
}

type RemoveFavouriteUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID) error
}

type ListFavouritesUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal) ([]domain.FavouriteView, error)
}

type TopFavouritesUseCasePort interface {
	Execute(ctx context.Context) ([]domain.TopFavourite, error)
}

type CreateReviewUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, rating int, comment string) (*domain.Review, error)
}

type ListListingReviewsUseCasePort interface {
	Execute(ctx context.Context, listingID uuid.UUID) ([]domain.Review, domain.RatingSummary, error)
}

type ListMyReviewsUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal) ([]domain.Review, error)
}
