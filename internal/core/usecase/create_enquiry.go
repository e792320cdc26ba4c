package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type CreateEnquiryUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
	listingRepo port.ListingRepositoryPort
	notifier    port.EnquiryNotifierPort
}

func NewCreateEnquiryUseCase(enquiryRepo port.EnquiryRepositoryPort, listingRepo port.ListingRepositoryPort, notifier port.EnquiryNotifierPort) *CreateEnquiryUseCase {
	return &CreateEnquiryUseCase{
		enquiryRepo: enquiryRepo,
		listingRepo: listingRepo,
		notifier:    notifier,
	}
}

func (uc *CreateEnquiryUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, content string) (*domain.Enquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateEnquiry",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := principal.Require(domain.CapCreateEnquiry); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if !listing.IsAvailable {
		return nil, domain.ErrListingNotFound
	}

	enquiry, first, err := domain.NewEnquiry(listing, principal.UserID, content, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Enquiry validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.enquiryRepo.CreateWithMessage(ctx, enquiry, first); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return nil, err
	}

	uc.notifier.Notify(ctx, port.EnquiryEvent{
		Type:       port.EnquiryEventCreated,
		Recipients: []uuid.UUID{enquiry.RequesterID, enquiry.OwnerID},
		Enquiry:    *enquiry,
		Message:    first,
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"enquiry_id": enquiry.ID.String()})
	return enquiry, nil
}
