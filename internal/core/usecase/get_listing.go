package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type GetListingUseCase struct {
	listingRepo port.ListingRepositoryPort
}

func NewGetListingUseCase(listingRepo port.ListingRepositoryPort) *GetListingUseCase {
	return &GetListingUseCase{listingRepo: listingRepo}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, listingID uuid.UUID) (*domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": listingID.String(),
	})
	ucLogger.Debug("Use case started", nil)

	view, err := uc.listingRepo.GetView(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return nil, err
	}
	// снятые с публикации листинги не показываются
	if !view.IsAvailable {
		return nil, domain.ErrListingNotFound
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return view, nil
}
