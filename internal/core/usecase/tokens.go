package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// TokenSettings - сроки жизни токенов
type TokenSettings struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	VerifyTTL  time.Duration
}

func issueTokenPair(ctx context.Context, tokenSvc port.TokenServicePort, settings TokenSettings, user *domain.User) (*domain.TokenPair, error) {
	claims := domain.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}

	claims.Type = domain.TokenAccess
	access, err := tokenSvc.GenerateToken(ctx, claims, settings.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	claims.Type = domain.TokenRefresh
	refresh, err := tokenSvc.GenerateToken(ctx, claims, settings.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    settings.AccessTTL,
	}, nil
}
