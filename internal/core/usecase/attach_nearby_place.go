package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type AttachNearbyPlaceUseCase struct {
	listingRepo port.ListingRepositoryPort
	placeRepo   port.NearbyPlaceRepositoryPort
}

func NewAttachNearbyPlaceUseCase(listingRepo port.ListingRepositoryPort, placeRepo port.NearbyPlaceRepositoryPort) *AttachNearbyPlaceUseCase {
	return &AttachNearbyPlaceUseCase{listingRepo: listingRepo, placeRepo: placeRepo}
}

func (uc *AttachNearbyPlaceUseCase) Execute(ctx context.Context, principal domain.Principal, listingID, placeID uuid.UUID) (*domain.ListingNearbyPlace, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AttachNearbyPlace",
		"listing_id": listingID.String(),
		"place_id":   placeID.String(),
	})
	ucLogger.Info("Use case started", nil)

	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if !principal.CanManageListing(listing) && !principal.Can(domain.CapManageNearbyPlaces) {
		return nil, domain.ErrNotListingOwner
	}

	place, err := uc.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		ucLogger.Warn("Nearby place lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	link := domain.LinkNearbyPlace(listing, *place)
	if err := uc.placeRepo.Link(ctx, link); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"distance_km": link.DistanceKm})
	return &link, nil
}
