package usecase

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type ListAmenitiesUseCase struct {
	amenityRepo port.AmenityRepositoryPort
}

func NewListAmenitiesUseCase(amenityRepo port.AmenityRepositoryPort) *ListAmenitiesUseCase {
	return &ListAmenitiesUseCase{amenityRepo: amenityRepo}
}

func (uc *ListAmenitiesUseCase) Execute(ctx context.Context) ([]domain.Amenity, error) {
	amenities, err := uc.amenityRepo.List(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "ListAmenities"})
		return nil, err
	}
	return amenities, nil
}
