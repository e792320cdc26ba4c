package port

import (
	"context"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

// TokenServicePort выпускает и проверяет JWT
type TokenServicePort interface {
	GenerateToken(ctx context.Context, claims domain.Claims, ttl time.Duration) (string, error)
	// ValidateToken проверяет подпись, срок и тип токена
	ValidateToken(ctx context.Context, tokenString string, expected domain.TokenType) (*domain.Claims, error)
}
