package usecase

import (
	"context"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type CreateNearbyPlaceUseCase struct {
	placeRepo port.NearbyPlaceRepositoryPort
}

func NewCreateNearbyPlaceUseCase(placeRepo port.NearbyPlaceRepositoryPort) *CreateNearbyPlaceUseCase {
	return &CreateNearbyPlaceUseCase{placeRepo: placeRepo}
}

func (uc *CreateNearbyPlaceUseCase) Execute(ctx context.Context, principal domain.Principal, in domain.NearbyPlaceInput) (*domain.NearbyPlace, error) {
	if err := principal.Require(domain.CapManageNearbyPlaces); err != nil {
		return nil, err
	}
	place, err := domain.NewNearbyPlace(in, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.placeRepo.Create(ctx, place); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "CreateNearbyPlace"})
		return nil, err
	}
	return place, nil
}

type ListNearbyPlacesUseCase struct {
	placeRepo port.NearbyPlaceRepositoryPort
}

func NewListNearbyPlacesUseCase(placeRepo port.NearbyPlaceRepositoryPort) *ListNearbyPlacesUseCase {
	return &ListNearbyPlacesUseCase{placeRepo: placeRepo}
}

func (uc *ListNearbyPlacesUseCase) Execute(ctx context.Context, placeType *domain.PlaceType) ([]domain.NearbyPlace, error) {
	if placeType != nil && !placeType.Valid() {
		return nil, domain.NewValidationError("place_type", "unknown place type")
	}
	return uc.placeRepo.List(ctx, placeType)
}
