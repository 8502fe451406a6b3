package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/reminder-planner/internal/lib/jwt"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Minute, time.Hour)

	token, err := maker.GenerateAccessToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Minute, time.Hour)

	tokenID, token, err := maker.GenerateRefreshToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, tokenID, claims.ID)
}

func TestParseToken_Expired(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", -time.Minute, time.Hour)

	token, err := maker.GenerateAccessToken("alice")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Minute, time.Hour)
	other := jwt.NewJWTMaker("other-secret", time.Minute, time.Hour)

	token, err := maker.GenerateAccessToken("alice")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}
