package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type RegisterUserUseCase struct {
	userRepo       port.UserRepositoryPort
	universityRepo port.UniversityRepositoryPort
	tokenSvc       port.TokenServicePort
	mailer         port.MailerPort
	tokens         TokenSettings
	verifyURL      string
}

func NewRegisterUserUseCase(
	userRepo port.UserRepositoryPort,
	universityRepo port.UniversityRepositoryPort,
	tokenSvc port.TokenServicePort,
	mailer port.MailerPort,
	tokens TokenSettings,
	verifyURL string,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		universityRepo: universityRepo,
		tokenSvc:       tokenSvc,
		mailer:         mailer,
		tokens:         tokens,
		verifyURL:      verifyURL,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in domain.RegistrationInput) (*domain.Account, *domain.TokenPair, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"username": in.Username,
		"role":     in.Role,
	})
	ucLogger.Info("Use case started: attempting to register user", nil)

	account, err := domain.NewAccount(in, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Registration validation failed", port.Fields{"error": err.Error()})
		return nil, nil, err
	}

	if account.Student != nil {
		if _, err := uc.universityRepo.FindByID(ctx, *account.Student.UniversityID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, domain.NewValidationError("university_id", "university not found")
			}
			ucLogger.Error("Failed to check university", err, nil)
			return nil, nil, err
		}
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": account.User.ID.String()})

	// пользователь и профиль создаются в одной транзакции
	if err := uc.userRepo.CreateAccount(ctx, account); err != nil {
		ucLogger.Warn("Repository failed to create account", port.Fields{"error": err.Error()})
		return nil, nil, err
	}

	// аккаунт уже сохранен: без токенов клиент войдет через /auth/login
	pair, err := issueTokenPair(ctx, uc.tokenSvc, uc.tokens, &account.User)
	if err != nil {
		ucLogger.Error("Failed to issue tokens after registration, returning account without tokens", err, nil)
		pair = nil
	}

	uc.sendVerification(ctx, ucLogger, &account.User)

	ucLogger.Info("Use case finished: user registered successfully", nil)
	return account, pair, nil
}

// sendVerification не возвращает ошибку: регистрация уже состоялась
func (uc *RegisterUserUseCase) sendVerification(ctx context.Context, logger port.LoggerPort, user *domain.User) {
	token, err := uc.tokenSvc.GenerateToken(ctx, domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Type:   domain.TokenVerification,
	}, uc.tokens.VerifyTTL)
	if err != nil {
		logger.Error("Failed to generate verification token", err, nil)
		return
	}

	err = uc.mailer.SendVerificationEmail(ctx, domain.VerificationEmail{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.FullName(),
		Link:   domain.VerificationLink(uc.verifyURL, token),
	})
	if err != nil {
		logger.Error("Failed to enqueue verification email", err, nil)
	}
}
