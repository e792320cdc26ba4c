package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type ListEnquiriesUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
}

func NewListEnquiriesUseCase(enquiryRepo port.EnquiryRepositoryPort) *ListEnquiriesUseCase {
	return &ListEnquiriesUseCase{enquiryRepo: enquiryRepo}
}

// Execute возвращает только переписки, где вызывающий - участник
func (uc *ListEnquiriesUseCase) Execute(ctx context.Context, principal domain.Principal, filters domain.EnquiryFilters) ([]domain.Enquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListEnquiries",
		"user_id":  principal.UserID.String(),
	})

	filters.ParticipantID = principal.UserID
	enquiries, err := uc.enquiryRepo.List(ctx, filters)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	return enquiries, nil
}

type GetEnquiryUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
}

func NewGetEnquiryUseCase(enquiryRepo port.EnquiryRepositoryPort) *GetEnquiryUseCase {
	return &GetEnquiryUseCase{enquiryRepo: enquiryRepo}
}

func (uc *GetEnquiryUseCase) Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error) {
	return loadVisibleEnquiry(ctx, uc.enquiryRepo, principal, enquiryID)
}

// loadVisibleEnquiry отдает not found посторонним, чтобы не раскрывать существование переписки
func loadVisibleEnquiry(ctx context.Context, repo port.EnquiryRepositoryPort, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error) {
	enquiry, err := repo.FindByID(ctx, enquiryID)
	if err != nil {
		return nil, err
	}
	if err := enquiry.EnsureVisible(principal.UserID); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Enquiry access by non-participant", port.Fields{
			"enquiry_id": enquiryID.String(),
			"user_id":    principal.UserID.String(),
		})
		return nil, err
	}
	return enquiry, nil
}

type ListMessagesUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
}

func NewListMessagesUseCase(enquiryRepo port.EnquiryRepositoryPort) *ListMessagesUseCase {
	return &ListMessagesUseCase{enquiryRepo: enquiryRepo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) ([]domain.EnquiryMessage, error) {
	if _, err := loadVisibleEnquiry(ctx, uc.enquiryRepo, principal, enquiryID); err != nil {
		return nil, err
	}
	messages, err := uc.enquiryRepo.ListMessages(ctx, enquiryID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "ListMessages"})
		return nil, err
	}
	return messages, nil
}

type MarkMessagesReadUseCase struct {
	enquiryRepo port.EnquiryRepositoryPort
}

func NewMarkMessagesReadUseCase(enquiryRepo port.EnquiryRepositoryPort) *MarkMessagesReadUseCase {
	return &MarkMessagesReadUseCase{enquiryRepo: enquiryRepo}
}

// Execute помечает прочитанными сообщения собеседника, свои сообщения не трогаются
func (uc *MarkMessagesReadUseCase) Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (int64, error) {
	if _, err := loadVisibleEnquiry(ctx, uc.enquiryRepo, principal, enquiryID); err != nil {
		return 0, err
	}
	marked, err := uc.enquiryRepo.MarkRead(ctx, enquiryID, principal.UserID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "MarkMessagesRead"})
		return 0, err
	}
	return marked, nil
}
