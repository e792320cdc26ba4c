package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type SearchNearMyUniversityUseCase struct {
	geoIndex       port.GeoIndexPort
	userRepo       port.UserRepositoryPort
	universityRepo port.UniversityRepositoryPort
}

func NewSearchNearMyUniversityUseCase(geoIndex port.GeoIndexPort, userRepo port.UserRepositoryPort, universityRepo port.UniversityRepositoryPort) *SearchNearMyUniversityUseCase {
	return &SearchNearMyUniversityUseCase{
		geoIndex:       geoIndex,
		userRepo:       userRepo,
		universityRepo: universityRepo,
	}
}

func (uc *SearchNearMyUniversityUseCase) Execute(ctx context.Context, principal domain.Principal, radiusKm float64, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SearchNearMyUniversity",
		"user_id":   principal.UserID.String(),
		"radius_km": radiusKm,
	})
	ucLogger.Info("Use case started", nil)

	if !principal.Can(domain.CapSearchNearOwnCampus) {
		ucLogger.Warn("Non-student attempted to search near own university", port.Fields{"role": principal.Role})
		return nil, domain.ErrStudentOnly
	}
	if err := domain.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}
	filters.UniversityID = nil
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	university, err := studentUniversity(ctx, uc.userRepo, uc.universityRepo, principal.UserID)
	if err != nil {
		ucLogger.Warn("Student university is not available", port.Fields{"error": err.Error()})
		return nil, err
	}

	result, err := uc.geoIndex.WithinRadius(ctx, university.Location, radiusKm, filters, page)
	if err != nil {
		ucLogger.Error("Geo index returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total": result.TotalCount})
	return result, nil
}

// studentUniversity возвращает университет из профиля студента.
// Нет профиля или университета - ошибка валидации, а не 404.
func studentUniversity(ctx context.Context, userRepo port.UserRepositoryPort, universityRepo port.UniversityRepositoryPort, userID uuid.UUID) (*domain.University, error) {
	profile, err := userRepo.FindStudentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.UniversityID == nil {
		return nil, domain.ErrProfileOrUniversityNotSet
	}

	university, err := universityRepo.FindByID(ctx, *profile.UniversityID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrProfileOrUniversityNotSet
	}
	if err != nil {
		return nil, err
	}
	return university, nil
}
