package utils

import (
	"context"
	"testing"

	"bistro-boss/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
)

func TestGetSetContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithUserEmail(ctx, "user@example.com")
	ctx = WithUserName(ctx, "Jane")
	ctx = WithTokenID(ctx, "jti-1")
	ctx = WithRequestID(ctx, "req1")
	ctx = WithComponent(ctx, "componentA")
	ctx = WithOperation(ctx, "opX")

	email, err := GetUserEmailFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	tokenID, err := GetTokenIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "jti-1", tokenID)

	reqID, err := GetRequestIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "req1", reqID)

	assert.Equal(t, "Jane", ctx.Value(contextkeys.UserNameKey))
	assert.True(t, HasUserEmail(ctx))
}

func TestContextValues_Missing(t *testing.T) {
	ctx := context.Background()

	_, err := GetUserEmailFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserEmailNotFound)
	_, err = GetTokenIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrTokenIDNotFound)
	_, err = GetRequestIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrRequestIDNotFound)

	assert.False(t, HasUserEmail(ctx))
	assert.Equal(t, "anonymous", GetUserEmailOrDefault(ctx, "anonymous"))
}

func TestContextValues_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextkeys.UserEmailKey, 42)
	_, err := GetUserEmailFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserEmailNotString)
}
