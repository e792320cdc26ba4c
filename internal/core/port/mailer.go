package port

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

// MailerPort ставит письма в очередь на отправку
type MailerPort interface {
	SendVerificationEmail(ctx context.Context, email domain.VerificationEmail) error
}

// EmailSenderPort доставляет письмо получателю (SMTP в воркере)
type EmailSenderPort interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}
