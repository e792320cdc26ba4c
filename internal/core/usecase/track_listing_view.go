package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type TrackListingViewUseCase struct {
	listingRepo port.ListingRepositoryPort
	store       port.RecentlyViewedStorePort
}

func NewTrackListingViewUseCase(listingRepo port.ListingRepositoryPort, store port.RecentlyViewedStorePort) *TrackListingViewUseCase {
	return &TrackListingViewUseCase{listingRepo: listingRepo, store: store}
}

// Execute увеличивает счетчик просмотров и кладет листинг в недавно просмотренные
func (uc *TrackListingViewUseCase) Execute(ctx context.Context, sessionKey string, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "TrackListingView",
		"listing_id": listingID.String(),
	})

	if err := uc.listingRepo.RecordView(ctx, listingID, time.Now().UTC()); err != nil {
		ucLogger.Error("Failed to record listing view", err, nil)
		return err
	}

	if sessionKey == "" {
		return nil
	}
	if err := uc.store.Push(ctx, sessionKey, listingID); err != nil {
		ucLogger.Error("Failed to update recently viewed", err, nil)
		return err
	}
	return nil
}
