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

type PostMessageUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
	notifier    port.EnquiryNotifierPort
}

func NewPostMessageUseCase(enquiryRepo port.EnquiryRepositoryPort, notifier port.EnquiryNotifierPort) *PostMessageUseCase {
	return &PostMessageUseCase{enquiryRepo: enquiryRepo, notifier: notifier}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID, content string) (*domain.EnquiryMessage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "PostMessage",
		"user_id":    principal.UserID.String(),
		"enquiry_id": enquiryID.String(),
	})
	ucLogger.Info("Use case started", nil)

	enquiry, err := uc.enquiryRepo.FindByID(ctx, enquiryID)
	if err != nil {
		ucLogger.Warn("Enquiry lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	from := enquiry.Status
	msg, err := enquiry.PostMessage(principal.UserID, content, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Message rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.enquiryRepo.AddMessage(ctx, enquiry, from, msg); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			ucLogger.Warn("Enquiry changed concurrently", port.Fields{"status": from})
			return nil, err
		}
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	// ответ владельца означает, что сообщения студента прочитаны
	if principal.UserID == enquiry.OwnerID {
		if _, err := uc.enquiryRepo.MarkRead(ctx, enquiry.ID, principal.UserID); err != nil {
			ucLogger.Warn("Failed to mark requester messages as read", port.Fields{"error": err.Error()})
		}
	}

	uc.notifier.Notify(ctx, port.EnquiryEvent{
		Type:       port.EnquiryEventMessage,
		Recipients: []uuid.UUID{enquiry.RequesterID, enquiry.OwnerID},
		Enquiry:    *enquiry,
		Message:    msg,
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"status": enquiry.Status})
	return msg, nil
}
