package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type LoginUserUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
	tokens   TokenSettings
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, tokens TokenSettings) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		tokens:   tokens,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, login, password string) (*domain.User, *domain.TokenPair, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"login":    login,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.userRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, domain.ErrNotFound) {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return nil, nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := issueTokenPair(ctx, uc.tokenSvc, uc.tokens, user)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, nil, err
	}

	ucLogger.Info("Use case finished: user logged in successfully", nil)
	return user, pair, nil
}
