package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

const issuer = "campus-stay-api"

// TokenService - реализация TokenServicePort для JWT (HS256).
type TokenService struct {
	signingKey []byte
	now        func() time.Time
}

func NewTokenService(signingKey string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenService{signingKey: []byte(signingKey), now: time.Now}, nil
}

type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

func (s *TokenService) GenerateToken(ctx context.Context, claims domain.Claims, ttl time.Duration) (string, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "TokenService",
		"method":     "GenerateToken",
		"user_id":    claims.UserID.String(),
		"token_type": string(claims.Type),
	})

	now := s.now()
	jwtClaims := &jwtCustomClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      string(claims.Role),
		TokenType: string(claims.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   claims.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		serviceLogger.Error("Failed to sign token", err, nil)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	serviceLogger.Debug("Token generated", port.Fields{"ttl": ttl.String()})
	return signedToken, nil
}

// ValidateToken проверяет подпись, срок и тип токена.
// Любая ошибка превращается в domain.ErrTokenInvalid.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string, expected domain.TokenType) (*domain.Claims, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			serviceLogger.Debug("Token has expired", nil)
		} else {
			serviceLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if domain.TokenType(claims.TokenType) != expected {
		serviceLogger.Warn("Token type mismatch", port.Fields{"expected": string(expected), "actual": claims.TokenType})
		return nil, domain.ErrTokenInvalid
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
		Type:   domain.TokenType(claims.TokenType),
	}, nil
}
