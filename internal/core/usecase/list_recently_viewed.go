package usecase

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type ListRecentlyViewedUseCase struct {
	listingRepo port.ListingRepositoryPort
	store       port.RecentlyViewedStorePort
}

func NewListRecentlyViewedUseCase(listingRepo port.ListingRepositoryPort, store port.RecentlyViewedStorePort) *ListRecentlyViewedUseCase {
	return &ListRecentlyViewedUseCase{listingRepo: listingRepo, store: store}
}

func (uc *ListRecentlyViewedUseCase) Execute(ctx context.Context, sessionKey string) ([]domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListRecentlyViewed"})

	if sessionKey == "" {
		return []domain.ListingView{}, nil
	}

	ids, err := uc.store.List(ctx, sessionKey)
	if err != nil {
		ucLogger.Error("Failed to read recently viewed", err, nil)
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.ListingView{}, nil
	}

	views, err := uc.listingRepo.FindByIDs(ctx, ids)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	return views, nil
}
