package usecases_port

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type SearchNearAnchorUseCasePort interface {
	Execute(ctx context.Context, anchor domain.AnchorQuery, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error)
}

type SearchNearMyUniversityUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, radiusKm float64, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error)
}

type GetMarketingCategoriesUseCasePort interface {
	// principal равен nil для анонимного запроса
	Execute(ctx context.Context, principal *domain.Principal, query domain.CategoryQuery) (domain.MarketingCategories, error)
}
