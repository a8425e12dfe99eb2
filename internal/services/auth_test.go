package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/thorbis-backend/internal/pkg/ctxutil"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

func TestAuthServiceRoundTrip(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "secret", time.Minute)
	userID := uuid.New()

	token, err := svc.IssueToken(userID)
	require.NoError(t, err)

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(ctx)
	require.NotNil(t, rd)
	assert.Equal(t, userID, rd.UserID)
	assert.Equal(t, token, rd.TokenString)
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "secret", time.Minute)
	other := NewAuthService(logger.Nop(), "other-secret", time.Minute)
	expired := NewAuthService(logger.Nop(), "secret", -time.Minute)

	foreign, err := other.IssueToken(uuid.New())
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":   "",
		"garbage": "not-a-token",
		"foreign": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SetContextFromToken(context.Background(), token)
			assert.Error(t, err)
		})
	}

	// A non-positive TTL falls back to the default, so the token stays valid.
	tok, err := expired.IssueToken(uuid.New())
	require.NoError(t, err)
	_, err = svc.SetContextFromToken(context.Background(), tok)
	assert.NoError(t, err)
}
