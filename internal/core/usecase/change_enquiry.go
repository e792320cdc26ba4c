package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type CancelEnquiryUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
	notifier    port.EnquiryNotifierPort
}

func NewCancelEnquiryUseCase(enquiryRepo port.EnquiryRepositoryPort, notifier port.EnquiryNotifierPort) *CancelEnquiryUseCase {
	return &CancelEnquiryUseCase{enquiryRepo: enquiryRepo, notifier: notifier}
}

func (uc *CancelEnquiryUseCase) Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error) {
	return changeEnquiryStatus(ctx, uc.enquiryRepo, uc.notifier, "CancelEnquiry", principal, enquiryID, (*domain.Enquiry).Cancel)
}

type ResolveEnquiryUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
	notifier    port.EnquiryNotifierPort
}

func NewResolveEnquiryUseCase(enquiryRepo port.EnquiryRepositoryPort, notifier port.EnquiryNotifierPort) *ResolveEnquiryUseCase {
	return &ResolveEnquiryUseCase{enquiryRepo: enquiryRepo, notifier: notifier}
}

func (uc *ResolveEnquiryUseCase) Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error) {
	return changeEnquiryStatus(ctx, uc.enquiryRepo, uc.notifier, "ResolveEnquiry", principal, enquiryID, (*domain.Enquiry).Resolve)
}

func changeEnquiryStatus(
	ctx context.Context,
	repo port.EnquiryRepositoryPort,
	notifier port.EnquiryNotifierPort,
	useCase string,
	principal domain.Principal,
	enquiryID uuid.UUID,
	transition func(*domain.Enquiry, uuid.UUID, time.Time) error,
) (*domain.Enquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   useCase,
		"user_id":    principal.UserID.String(),
		"enquiry_id": enquiryID.String(),
	})
	ucLogger.Info("Use case started", nil)

	enquiry, err := repo.FindByID(ctx, enquiryID)
	if err != nil {
		ucLogger.Warn("Enquiry lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	from := enquiry.Status
	if err := transition(enquiry, principal.UserID, time.Now().UTC()); err != nil {
		ucLogger.Warn("Transition rejected", port.Fields{"status": from, "error": err.Error()})
		return nil, err
	}

	if err := repo.UpdateStatus(ctx, enquiry, from); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			ucLogger.Warn("Enquiry changed concurrently", port.Fields{"status": from})
			return nil, err
		}
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	notifier.Notify(ctx, port.EnquiryEvent{
		Type:       port.EnquiryEventStatus,
		Recipients: []uuid.UUID{enquiry.RequesterID, enquiry.OwnerID},
		Enquiry:    *enquiry,
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"from": from, "to": enquiry.Status})
	return enquiry, nil
}
