package usecase

import (
	"context"
	"errors"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// SearchNearAnchorUseCase - поиск по радиусу вокруг университета, кампуса или точки
type SearchNearAnchorUseCase struct {
	geoIndex       port.GeoIndexPort
	universityRepo port.UniversityRepositoryPort
}

func NewSearchNearAnchorUseCase(geoIndex port.GeoIndexPort, universityRepo port.UniversityRepositoryPort) *SearchNearAnchorUseCase {
	return &SearchNearAnchorUseCase{geoIndex: geoIndex, universityRepo: universityRepo}
}

func (uc *SearchNearAnchorUseCase) Execute(ctx context.Context, anchor domain.AnchorQuery, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SearchNearAnchor",
		"radius_km": anchor.RadiusKm,
	})
	ucLogger.Info("Use case started", nil)

	if err := anchor.Validate(); err != nil {
		ucLogger.Warn("Invalid anchor", port.Fields{"error": err.Error()})
		return nil, err
	}
	filters.UniversityID = nil
	if err := filters.Validate(); err != nil {
		ucLogger.Warn("Invalid filters", port.Fields{"error": err.Error()})
		return nil, err
	}

	point, err := resolveAnchor(ctx, uc.universityRepo, anchor)
	if err != nil {
		ucLogger.Warn("Anchor could not be resolved", port.Fields{"error": err.Error()})
		return nil, err
	}

	result, err := uc.geoIndex.WithinRadius(ctx, point, anchor.RadiusKm, filters, page)
	if err != nil {
		ucLogger.Error("Geo index returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total": result.TotalCount})
	return result, nil
}

// resolveAnchor превращает ссылку на университет или кампус в точку
func resolveAnchor(ctx context.Context, repo port.UniversityRepositoryPort, anchor domain.AnchorQuery) (domain.Point, error) {
	switch {
	case anchor.Point != nil:
		return *anchor.Point, nil
	case anchor.CampusID != nil:
		campus, err := repo.FindCampus(ctx, *anchor.CampusID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Point{}, domain.ErrAnchorNotFound
		}
		if err != nil {
			return domain.Point{}, err
		}
		return campus.Location, nil
	default:
		university, err := repo.FindByID(ctx, *anchor.UniversityID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Point{}, domain.ErrAnchorNotFound
		}
		if err != nil {
			return domain.Point{}, err
		}
		return university.Location, nil
	}
}
