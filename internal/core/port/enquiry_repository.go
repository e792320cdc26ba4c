package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type EnquiryRepositoryPort interface {
	// CreateWithMessage атомарно создает переписку и первое сообщение.
	// Повторная активная переписка по тому же листингу дает domain.ErrDuplicateEnquiry.
	CreateWithMessage(ctx context.Context, enquiry *domain.Enquiry, first *domain.EnquiryMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Enquiry, error)
	List(ctx context.Context, filters domain.EnquiryFilters) ([]domain.Enquiry, error)
	// AddMessage сохраняет сообщение и новое состояние переписки в одной транзакции.
	// Запись проходит, только если в хранилище все еще статус from, иначе domain.ErrInvalidTransition.
	AddMessage(ctx context.Context, enquiry *domain.Enquiry, from domain.EnquiryStatus, msg *domain.EnquiryMessage) error
	// UpdateStatus - условная запись, как в AddMessage
	UpdateStatus(ctx context.Context, enquiry *domain.Enquiry, from domain.EnquiryStatus) error
	ListMessages(ctx context.Context, enquiryID uuid.UUID) ([]domain.EnquiryMessage, error)
	// MarkRead помечает прочитанными сообщения собеседника readerID
	MarkRead(ctx context.Context, enquiryID, readerID uuid.UUID) (int64, error)
}
