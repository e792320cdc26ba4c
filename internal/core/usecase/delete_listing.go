package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type DeleteListingUseCase struct {
	listingRepo port.ListingRepositoryPort
}

func NewDeleteListingUseCase(listingRepo port.ListingRepositoryPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{listingRepo: listingRepo}
}

// Execute снимает листинг с публикации (is_available=false)
func (uc *DeleteListingUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if _, err := loadManagedListing(ctx, uc.listingRepo, principal, listingID); err != nil {
		ucLogger.Warn("Listing is not available for removal", port.Fields{"error": err.Error()})
		return err
	}

	if err := uc.listingRepo.SetAvailability(ctx, listingID, false); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
