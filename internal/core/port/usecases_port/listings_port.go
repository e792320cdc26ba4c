package usecases_port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type CreateListingUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, in domain.ListingInput) (*domain.SavedListing, error)
}

type UpdateListingUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, patch domain.ListingPatch) (*domain.SavedListing, error)
}

type DeleteListingUseCasePort interface {
	// Снимает листинг с публикации, строки не удаляются
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID) error
}

type GetListingUseCasePort interface {
	Execute(ctx context.Context, listingID uuid.UUID) (*domain.ListingView, error)
}

type TrackListingViewUseCasePort interface {
	Execute(ctx context.Context, sessionKey string, listingID uuid.UUID) error
}

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error)
}

type AddListingMediaUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, media []domain.MediaInput) ([]domain.Media, []domain.MediaFailure, error)
}

type RemoveListingMediaUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID, mediaID uuid.UUID) error
}

type AttachNearbyPlaceUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID, placeID uuid.UUID) (*domain.ListingNearbyPlace, error)
}

type ListRecentlyViewedUseCasePort interface {
	Execute(ctx context.Context, sessionKey string) ([]domain.ListingView, error)
}

type ListAmenitiesUseCasePort interface {
	Execute(ctx context.Context) ([]domain.Amenity, error)
}
