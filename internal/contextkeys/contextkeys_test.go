package contextkeys

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContextFallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(nil).Info("message", nil)
	})
}

func TestTraceIDRoundTrip(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	ctx := ContextWithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}

func TestPrincipalFromContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	p := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	got, ok := PrincipalFromContext(ContextWithPrincipal(context.Background(), p))
	require.True(t, ok)
	assert.Equal(t, p, got)
}
