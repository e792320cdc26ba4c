package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type UpdateListingUseCase struct {
	listingRepo port.ListingRepositoryPort
	amenityRepo port.AmenityRepositoryPort
	mediaRepo   port.MediaRepositoryPort
}

func NewUpdateListingUseCase(listingRepo port.ListingRepositoryPort, amenityRepo port.AmenityRepositoryPort, mediaRepo port.MediaRepositoryPort) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		listingRepo: listingRepo,
		amenityRepo: amenityRepo,
		mediaRepo:   mediaRepo,
	}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, patch domain.ListingPatch) (*domain.SavedListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	current, err := loadManagedListing(ctx, uc.listingRepo, principal, listingID)
	if err != nil {
		ucLogger.Warn("Listing is not available for update", port.Fields{"error": err.Error()})
		return nil, err
	}

	updated, err := patch.Apply(current, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Listing validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := validateMediaInputs(patch.Media); err != nil {
		return nil, err
	}

	var amenityIDs *[]uuid.UUID
	if patch.AmenityIDs != nil {
		ids := domain.DedupeIDs(*patch.AmenityIDs)
		if err := ensureAmenities(ctx, uc.amenityRepo, ids); err != nil {
			ucLogger.Warn("Amenity check failed", port.Fields{"error": err.Error()})
			return nil, err
		}
		amenityIDs = &ids
	}

	if err := uc.listingRepo.Update(ctx, updated, amenityIDs); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	if patch.ReplaceMedia {
		if err := uc.mediaRepo.RemoveAll(ctx, listingID); err != nil {
			ucLogger.Error("Failed to clear listing media", err, nil)
			return nil, err
		}
	}
	var failures []domain.MediaFailure
	if len(patch.Media) > 0 {
		existing, err := uc.mediaRepo.ListByListing(ctx, listingID)
		if err != nil {
			ucLogger.Error("Failed to load listing media", err, nil)
			return nil, err
		}
		_, failures = attachMedia(ctx, uc.mediaRepo, listingID, existing, patch.Media, ucLogger)
		if len(failures) > 0 {
			ucLogger.Warn("Some media were not attached", port.Fields{"failed": len(failures)})
		}
	}

	view, err := uc.listingRepo.GetView(ctx, listingID)
	if err != nil {
		ucLogger.Error("Failed to load updated listing", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"media_failed": len(failures)})
	return &domain.SavedListing{Listing: view, MediaErrors: failures}, nil
}
