package usecase

import (
	"context"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type CreateListingUseCase struct {
	listingRepo port.ListingRepositoryPort
	amenityRepo port.AmenityRepositoryPort
	mediaRepo   port.MediaRepositoryPort
}

func NewCreateListingUseCase(listingRepo port.ListingRepositoryPort, amenityRepo port.AmenityRepositoryPort, mediaRepo port.MediaRepositoryPort) *CreateListingUseCase {
	return &CreateListingUseCase{
		listingRepo: listingRepo,
		amenityRepo: amenityRepo,
		mediaRepo:   mediaRepo,
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, principal domain.Principal, in domain.ListingInput) (*domain.SavedListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateListing",
		"user_id":  principal.UserID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := principal.Require(domain.CapCreateListing); err != nil {
		ucLogger.Warn("Role is not allowed to create listings", port.Fields{"role": principal.Role})
		return nil, err
	}

	listing, err := domain.NewListing(principal.UserID, in, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Listing validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := validateMediaInputs(in.Media); err != nil {
		ucLogger.Warn("Media validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	amenityIDs := domain.DedupeIDs(in.AmenityIDs)
	if err := ensureAmenities(ctx, uc.amenityRepo, amenityIDs); err != nil {
		ucLogger.Warn("Amenity check failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"listing_id": listing.ID.String()})

	if err := uc.listingRepo.Create(ctx, listing, amenityIDs); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	// листинг и амениты уже закоммичены, медиа прикрепляются по одному
	_, failures := attachMedia(ctx, uc.mediaRepo, listing.ID, nil, in.Media, ucLogger)

	view, err := uc.listingRepo.GetView(ctx, listing.ID)
	if err != nil {
		ucLogger.Error("Failed to load created listing", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"media_failures": len(failures)})
	return &domain.SavedListing{Listing: view, MediaErrors: failures}, nil
}
