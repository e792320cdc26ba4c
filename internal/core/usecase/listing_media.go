package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type AddListingMediaUseCase struct {
	listingRepo port.ListingRepositoryPort
	mediaRepo   port.MediaRepositoryPort
}

func NewAddListingMediaUseCase(listingRepo port.ListingRepositoryPort, mediaRepo port.MediaRepositoryPort) *AddListingMediaUseCase {
	return &AddListingMediaUseCase{listingRepo: listingRepo, mediaRepo: mediaRepo}
}

func (uc *AddListingMediaUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, media []domain.MediaInput) ([]domain.Media, []domain.MediaFailure, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AddListingMedia",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", port.Fields{"count": len(media)})

	if len(media) == 0 {
		return nil, nil, domain.ErrNoMediaProvided
	}
	if err := validateMediaInputs(media); err != nil {
		ucLogger.Warn("Media validation failed", port.Fields{"error": err.Error()})
		return nil, nil, err
	}
	if _, err := loadManagedListing(ctx, uc.listingRepo, principal, listingID); err != nil {
		ucLogger.Warn("Listing is not available for media upload", port.Fields{"error": err.Error()})
		return nil, nil, err
	}

	existing, err := uc.mediaRepo.ListByListing(ctx, listingID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, nil, err
	}

	attached, failures := attachMedia(ctx, uc.mediaRepo, listingID, existing, media, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"attached": len(attached),
		"failed":   len(failures),
	})
	return attached, failures, nil
}

type RemoveListingMediaUseCase struct {
	listingRepo port.ListingRepositoryPort
	mediaRepo   port.MediaRepositoryPort
}

func NewRemoveListingMediaUseCase(listingRepo port.ListingRepositoryPort, mediaRepo port.MediaRepositoryPort) *RemoveListingMediaUseCase {
	return &RemoveListingMediaUseCase{listingRepo: listingRepo, mediaRepo: mediaRepo}
}

// Execute удаляет вложение и при необходимости назначает новую основную картинку
func (uc *RemoveListingMediaUseCase) Execute(ctx context.Context, principal domain.Principal, listingID, mediaID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RemoveListingMedia",
		"listing_id": listingID.String(),
		"media_id":   mediaID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if _, err := loadManagedListing(ctx, uc.listingRepo, principal, listingID); err != nil {
		ucLogger.Warn("Listing is not available for media removal", port.Fields{"error": err.Error()})
		return err
	}

	if err := uc.mediaRepo.Remove(ctx, listingID, mediaID); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return err
	}

	remaining, err := uc.mediaRepo.ListByListing(ctx, listingID)
	if err != nil {
		ucLogger.Error("Failed to load remaining media", err, nil)
		return err
	}
	if primaryID, ok := domain.ElectPrimary(remaining); ok {
		if err := uc.mediaRepo.SetPrimary(ctx, listingID, primaryID); err != nil {
			ucLogger.Error("Failed to elect primary image", err, nil)
			return err
		}
		ucLogger.Debug("New primary image elected", port.Fields{"primary_id": primaryID.String()})
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
