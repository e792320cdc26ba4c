package usecase

import (
	"context"
	"fmt"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// GetMarketingCategoriesUseCase собирает витрины главной страницы
type GetMarketingCategoriesUseCase struct {
	listingRepo    port.ListingRepositoryPort
	geoIndex       port.GeoIndexPort
	userRepo       port.UserRepositoryPort
	universityRepo port.UniversityRepositoryPort
}

func NewGetMarketingCategoriesUseCase(
	listingRepo port.ListingRepositoryPort,
	geoIndex port.GeoIndexPort,
	userRepo port.UserRepositoryPort,
	universityRepo port.UniversityRepositoryPort,
) *GetMarketingCategoriesUseCase {
	return &GetMarketingCategoriesUseCase{
		listingRepo:    listingRepo,
		geoIndex:       geoIndex,
		userRepo:       userRepo,
		universityRepo: universityRepo,
	}
}

func (uc *GetMarketingCategoriesUseCase) Execute(ctx context.Context, principal *domain.Principal, query domain.CategoryQuery) (domain.MarketingCategories, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetMarketingCategories"})

	query, err := query.Normalize()
	if err != nil {
		ucLogger.Warn("Invalid category query", port.Fields{"error": err.Error()})
		return nil, err
	}
	ucLogger.Info("Use case started", port.Fields{"limit": query.Limit, "radius_km": query.RadiusKm})

	categories := domain.NewMarketingCategories()

	loaders := []struct {
		category domain.Category
		load     func() ([]domain.ListingView, error)
	}{
		{domain.CategoryCheap, func() ([]domain.ListingView, error) {
			return uc.listingRepo.FindCheapest(ctx, domain.CheapPriceMin, domain.CheapPriceMax, query.Limit)
		}},
		{domain.CategoryTopRated, func() ([]domain.ListingView, error) {
			return uc.listingRepo.FindTopRated(ctx, query.Limit)
		}},
		{domain.CategorySpecialNeeds, func() ([]domain.ListingView, error) {
			return uc.listingRepo.FindSpecialNeeds(ctx, query.Limit)
		}},
		{domain.CategoryPopular, func() ([]domain.ListingView, error) {
			return uc.listingRepo.FindMostViewed(ctx, query.Limit)
		}},
	}
	for _, l := range loaders {
		listings, err := l.load()
		if err != nil {
			ucLogger.Error("Repository returned an error", err, port.Fields{"category": l.category})
			return nil, fmt.Errorf("failed to load %s listings: %w", l.category, err)
		}
		if listings != nil {
			categories[l.category] = listings
		}
	}

	// ошибки витрины "рядом с университетом" не ломают остальные категории
	near, err := uc.nearUniversity(ctx, principal, query)
	if err != nil {
		ucLogger.Error("Failed to load near-university listings", err, nil)
	} else if near != nil {
		categories[domain.CategoryNearUniversity] = near
	}

	ucLogger.Info("Use case finished successfully", nil)
	return categories, nil
}

func (uc *GetMarketingCategoriesUseCase) nearUniversity(ctx context.Context, principal *domain.Principal, query domain.CategoryQuery) ([]domain.ListingView, error) {
	var anchor *domain.University
	if principal != nil && principal.Can(domain.CapSearchNearOwnCampus) {
		university, err := studentUniversity(ctx, uc.userRepo, uc.universityRepo, principal.UserID)
		if err == nil {
			anchor = university
		}
	}
	if anchor == nil {
		first, err := uc.universityRepo.FindFirst(ctx)
		if err != nil {
			return nil, err
		}
		anchor = first
	}
	if anchor == nil {
		return nil, nil
	}

	page, err := uc.geoIndex.WithinRadius(ctx, anchor.Location, query.RadiusKm, domain.ListingFilters{}, domain.NewPagination(1, query.Limit))
	if err != nil {
		return nil, err
	}
	return page.Listings, nil
}
