package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	secret := "test-secret"
	j := New(WithSecretKey(secret), WithExpiration(time.Minute))

	sessionID := uuid.NewString()
	ctx := context.Background()

	token, err := j.Generate(ctx, sessionID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Valid token should pass validation
	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	// Extract session id
	sid, err := j.GetSessionID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, sessionID, sid)
}

func TestJWT_ExpiredToken(t *testing.T) {
	secret := "test-secret"
	j := New(WithSecretKey(secret), WithExpiration(-time.Minute)) // already expired

	ctx := context.Background()

	token, err := j.Generate(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validation should fail
	err = j.Validate(ctx, token)
	assert.Error(t, err)

	sid, err := j.GetSessionID(ctx, token)
	assert.Error(t, err)
	assert.Empty(t, sid)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	// Totally invalid string
	err := j.Validate(ctx, "invalid.token.string")
	assert.Error(t, err)

	sid, err := j.GetSessionID(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Empty(t, sid)
}

func TestJWT_WrongKey(t *testing.T) {
	ctx := context.Background()

	token, err := New(WithSecretKey("key-a"), WithExpiration(time.Minute)).Generate(ctx, uuid.NewString())
	assert.NoError(t, err)

	err = New(WithSecretKey("key-b")).Validate(ctx, token)
	assert.Error(t, err)
}
