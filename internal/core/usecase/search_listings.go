package usecase

import (
	"context"
	"errors"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type SearchListingsUseCase struct {
	listingRepo    port.ListingRepositoryPort
	geoIndex       port.GeoIndexPort
	universityRepo port.UniversityRepositoryPort
}

func NewSearchListingsUseCase(listingRepo port.ListingRepositoryPort, geoIndex port.GeoIndexPort, universityRepo port.UniversityRepositoryPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{
		listingRepo:    listingRepo,
		geoIndex:       geoIndex,
		universityRepo: universityRepo,
	}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"page":     page.Page,
	})
	ucLogger.Info("Use case started", nil)

	if err := filters.Validate(); err != nil {
		ucLogger.Warn("Invalid filters", port.Fields{"error": err.Error()})
		return nil, err
	}

	if filters.UniversityID != nil {
		university, err := uc.universityRepo.FindByID(ctx, *filters.UniversityID)
		if errors.Is(err, domain.ErrNotFound) {
			// неизвестный университет в общем списке дает пустую страницу
			ucLogger.Warn("University not found, returning empty page", port.Fields{"university_id": filters.UniversityID.String()})
			return domain.EmptyListingPage(page), nil
		}
		if err != nil {
			ucLogger.Error("Failed to load university", err, nil)
			return nil, err
		}

		result, err := uc.geoIndex.WithinRadius(ctx, university.Location, filters.RadiusKm, filters, page)
		if err != nil {
			ucLogger.Error("Geo index returned an error", err, nil)
			return nil, err
		}
		ucLogger.Info("Use case finished successfully", port.Fields{"total": result.TotalCount})
		return result, nil
	}

	result, err := uc.listingRepo.Find(ctx, filters, page)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total": result.TotalCount})
	return result, nil
}
