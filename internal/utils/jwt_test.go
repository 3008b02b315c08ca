package utils_test

import (
	"context"
	"testing"
	"time"

	"foodgram/internal/testutil"
	"foodgram/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT(42, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID, "every token carries a jti")

	other, err := utils.GenerateJWT(42, "secret", time.Hour)
	require.NoError(t, err)
	otherClaims, err := utils.ParseJWT(other, "secret")
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestParseJWTRejects(t *testing.T) {
	valid, err := utils.GenerateJWT(1, "secret", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(1, "secret", -time.Minute)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, utils.Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]struct {
		token, secret string
	}{
		"wrong secret": {valid, "other"},
		"expired":      {expired, "secret"},
		"alg none":     {unsigned, "secret"},
		"no user":      {anonymous, "secret"},
		"garbage":      {"not-a-token", "secret"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := utils.ParseJWT(tc.token, tc.secret)
			assert.Error(t, err)
		})
	}
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	cache := testutil.NewMemCache()
	token, err := utils.GenerateJWT(7, "secret", time.Hour)
	require.NoError(t, err)
	claims, err := utils.ParseJWT(token, "secret")
	require.NoError(t, err)

	revoked, err := utils.IsRevoked(ctx, cache, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, utils.RevokeToken(ctx, cache, claims))
	revoked, err = utils.IsRevoked(ctx, cache, claims)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, cache.Has("auth:revoked:"+claims.ID))
}

func TestRevokeTokenWithoutCache(t *testing.T) {
	ctx := context.Background()
	claims := &utils.Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	require.NoError(t, utils.RevokeToken(ctx, utils.NopCache{}, claims))
	revoked, err := utils.IsRevoked(ctx, utils.NopCache{}, claims)
	require.NoError(t, err)
	assert.False(t, revoked)
}
