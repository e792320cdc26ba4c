package token_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaims(t domain.TokenType) domain.Claims {
	return domain.Claims{
		UserID: uuid.New(),
		Email:  "amina@udsm.ac.tz",
		Role:   domain.RoleStudent,
		Type:   t,
	}
}

func TestNewTokenService_EmptyKey(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret")
	require.NoError(t, err)
	ctx := context.Background()
	claims := testClaims(domain.TokenAccess)

	token, err := svc.GenerateToken(ctx, claims, time.Minute)
	require.NoError(t, err)

	got, err := svc.ValidateToken(ctx, token, domain.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, claims, *got)
}

func TestTokenService_RejectsWrongType(t *testing.T) {
	svc, _ := NewTokenService("secret")
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, testClaims(domain.TokenRefresh), time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token, domain.TokenAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc, _ := NewTokenService("secret")
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, testClaims(domain.TokenAccess), time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(ctx, token, domain.TokenAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuerSvc, _ := NewTokenService("one")
	verifier, _ := NewTokenService("two")
	ctx := context.Background()

	token, err := issuerSvc.GenerateToken(ctx, testClaims(domain.TokenAccess), time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(ctx, token, domain.TokenAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewTokenService("secret")
	claims := jwt.MapClaims{
		"user_id":    uuid.NewString(),
		"role":       "admin",
		"token_type": "access",
		"iss":        issuer,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token, domain.TokenAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc, _ := NewTokenService("secret")
	_, err := svc.ValidateToken(context.Background(), "not-a-token", domain.TokenAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
