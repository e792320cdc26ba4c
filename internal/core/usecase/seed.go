package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// SeedAmenitiesUseCase заполняет справочник аменит, повторный запуск ничего не дублирует
type SeedAmenitiesUseCase struct {
	amenityRepo port.AmenityRepositoryPort
}

func NewSeedAmenitiesUseCase(amenityRepo port.AmenityRepositoryPort) *SeedAmenitiesUseCase {
	return &SeedAmenitiesUseCase{amenityRepo: amenityRepo}
}

func (uc *SeedAmenitiesUseCase) Execute(ctx context.Context, clear bool) (int, int, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "SeedAmenities"})

	if clear {
		deleted, err := uc.amenityRepo.DeleteAll(ctx)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to clear amenities: %w", err)
		}
		logger.Warn("All existing amenities deleted", port.Fields{"deleted": deleted})
	}

	now := time.Now().UTC()
	created := 0
	for _, ref := range domain.ReferenceAmenities {
		amenity, err := domain.NewAmenity(ref.Name, ref.Description, ref.Icon, now)
		if err != nil {
			return created, 0, err
		}
		ok, err := uc.amenityRepo.GetOrCreate(ctx, amenity)
		if err != nil {
			return created, 0, fmt.Errorf("failed to seed amenity %q: %w", ref.Name, err)
		}
		if ok {
			created++
		}
	}

	total, err := uc.amenityRepo.Count(ctx)
	if err != nil {
		return created, 0, err
	}

	logger.Info("Amenities seeded", port.Fields{"created": created, "total": total})
	return created, total, nil
}

type SeedUniversitiesUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewSeedUniversitiesUseCase(universityRepo port.UniversityRepositoryPort) *SeedUniversitiesUseCase {
	return &SeedUniversitiesUseCase{universityRepo: universityRepo}
}

func (uc *SeedUniversitiesUseCase) Execute(ctx context.Context, clear bool) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "SeedUniversities"})

	if clear {
		deleted, err := uc.universityRepo.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to clear universities: %w", err)
		}
		logger.Warn("All existing universities deleted", port.Fields{"deleted": deleted})
	}

	now := time.Now().UTC()
	created := 0
	for _, ref := range domain.ReferenceUniversities {
		university, err := domain.NewUniversity(ref, now)
		if err != nil {
			return created, err
		}
		ok, err := uc.universityRepo.GetOrCreateByName(ctx, university)
		if err != nil {
			return created, fmt.Errorf("failed to seed university %q: %w", ref.Name, err)
		}
		if ok {
			created++
		}
	}

	logger.Info("Universities seeded", port.Fields{"created": created})
	return created, nil
}
