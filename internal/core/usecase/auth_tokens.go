package usecase

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type RefreshTokenUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
	tokens   TokenSettings
}

func NewRefreshTokenUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, tokens TokenSettings) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userRepo: userRepo, tokenSvc: tokenSvc, tokens: tokens}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "RefreshToken"})

	claims, err := uc.tokenSvc.ValidateToken(ctx, refreshToken, domain.TokenRefresh)
	if err != nil {
		ucLogger.Warn("Refresh token rejected", port.Fields{"error": err.Error()})
		return nil, domain.ErrTokenInvalid
	}

	// роль могла измениться, поэтому берем пользователя из базы
	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		ucLogger.Warn("Refresh for unknown user", port.Fields{"user_id": claims.UserID.String()})
		return nil, domain.ErrTokenInvalid
	}

	return issueTokenPair(ctx, uc.tokenSvc, uc.tokens, user)
}

type VerifyEmailUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
}

func NewVerifyEmailUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{userRepo: userRepo, tokenSvc: tokenSvc}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, token string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "VerifyEmail"})

	claims, err := uc.tokenSvc.ValidateToken(ctx, token, domain.TokenVerification)
	if err != nil {
		ucLogger.Warn("Verification token rejected", port.Fields{"error": err.Error()})
		return domain.ErrTokenInvalid
	}

	if err := uc.userRepo.MarkEmailVerified(ctx, claims.UserID); err != nil {
		ucLogger.Error("Repository returned an error", err, port.Fields{"user_id": claims.UserID.String()})
		return err
	}

	ucLogger.Info("Email verified", port.Fields{"user_id": claims.UserID.String()})
	return nil
}

type AuthenticateUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewAuthenticateUseCase(tokenSvc port.TokenServicePort) *AuthenticateUseCase {
	return &AuthenticateUseCase{tokenSvc: tokenSvc}
}

// Execute превращает access токен в Principal
func (uc *AuthenticateUseCase) Execute(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, accessToken, domain.TokenAccess)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

type GetMeUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetMeUseCase(userRepo port.UserRepositoryPort) *GetMeUseCase {
	return &GetMeUseCase{userRepo: userRepo}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	account, err := uc.userRepo.FindAccount(ctx, principal.UserID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to load account", port.Fields{
			"use_case": "GetMe",
			"user_id":  principal.UserID.String(),
			"error":    err.Error(),
		})
		return nil, err
	}
	return account, nil
}
