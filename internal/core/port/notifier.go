package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

const (
	EnquiryEventCreated = "enquiry.created"
	EnquiryEventMessage = "enquiry.message"
	EnquiryEventStatus  = "enquiry.status"
)

// EnquiryEvent - событие переписки для участников
type EnquiryEvent struct {
	Type       string
	Recipients []uuid.UUID
	Enquiry    domain.Enquiry
	Message    *domain.EnquiryMessage
}

// EnquiryNotifierPort - контракт для отправки уведомлений в реальном времени
type EnquiryNotifierPort interface {
	Notify(ctx context.Context, event EnquiryEvent)
}
