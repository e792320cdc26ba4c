package usecases_port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type CreateEnquiryUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, content string) (*domain.Enquiry, error)
}

type ListEnquiriesUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, filters domain.EnquiryFilters) ([]domain.Enquiry, error)
}

type GetEnquiryUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error)
}

type CancelEnquiryUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error)
}

type ResolveEnquiryUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error)
}

type PostMessageUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID, content string) (*domain.EnquiryMessage, error)
}

type ListMessagesUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) ([]domain.EnquiryMessage, error)
}

type MarkMessagesReadUseCasePort interface {
	// Возвращает число сообщений, помеченных прочитанными
	Execute(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (int64, error)
}
