package usecase

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// DeliverVerificationEmailUseCase отправляет письмо из очереди
type DeliverVerificationEmailUseCase struct {
	sender port.EmailSenderPort
}

func NewDeliverVerificationEmailUseCase(sender port.EmailSenderPort) *DeliverVerificationEmailUseCase {
	return &DeliverVerificationEmailUseCase{sender: sender}
}

func (uc *DeliverVerificationEmailUseCase) Execute(ctx context.Context, job domain.VerificationEmail) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DeliverVerificationEmail",
		"user_id":  job.UserID.String(),
	})

	if job.Email == "" || job.Link == "" {
		ucLogger.Warn("Verification job is incomplete, skipping", nil)
		return domain.NewValidationError("email", "verification job must have email and link")
	}

	if err := uc.sender.Send(ctx, job.Render()); err != nil {
		ucLogger.Error("Failed to send verification email", err, nil)
		return err
	}

	ucLogger.Info("Verification email sent", nil)
	return nil
}
