package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "access-secret-access-secret",
		RefreshSecret:          "refresh-secret-refresh-secret",
		Issuer:                 "markethub-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	service := newTestService()

	pair, err := service.GenerateTokenPair(42, "jamie@example.com", "partner")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jamie@example.com", claims.Email)
	assert.Equal(t, "partner", claims.Role)
	assert.Equal(t, "markethub-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	refreshClaims, err := service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.UserID)
	assert.NotEqual(t, claims.ID, refreshClaims.ID)
}

func TestJWTService_Validate(t *testing.T) {
	service := newTestService()

	t.Run("token types are not interchangeable", func(t *testing.T) {
		pair, err := service.GenerateTokenPair(42, "jamie@example.com", "customer")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)

		_, err = service.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "completely-different-secret",
			Issuer:                 "markethub-test",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
		})
		pair, err := other.GenerateTokenPair(42, "jamie@example.com", "customer")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is reported as expired", func(t *testing.T) {
		shortLived := NewJWTService(config.JWTConfig{
			Secret:                 "access-secret-access-secret",
			Issuer:                 "markethub-test",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
		})
		pair, err := shortLived.GenerateTokenPair(42, "jamie@example.com", "customer")
		require.NoError(t, err)

		// Same secret, so only the expiry fails validation
		validator := NewJWTService(config.JWTConfig{
			Secret:                 "access-secret-access-secret",
			Issuer:                 "markethub-test",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
		})
		_, err = validator.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_RemainingValidity(t *testing.T) {
	service := newTestService()
	pair, err := service.GenerateTokenPair(42, "jamie@example.com", "customer")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	t.Run("live token has time left", func(t *testing.T) {
		remaining := claims.RemainingValidity(time.Now())
		assert.Greater(t, remaining, 10*time.Minute)
		assert.LessOrEqual(t, remaining, 15*time.Minute)
	})

	t.Run("past expiry reports zero", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), claims.RemainingValidity(time.Now().Add(time.Hour)))
	})

	t.Run("claims without expiry report zero", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), (&Claims{}).RemainingValidity(time.Now()))
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	t.Run("entries expire with their ttl", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.Add(t.Context(), "jti-1", -time.Second))

		revoked, err := blacklist.IsBlacklisted(t.Context(), "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("live entries are reported", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.Add(t.Context(), "jti-2", time.Minute))

		revoked, err := blacklist.IsBlacklisted(t.Context(), "jti-2")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()

		revoked, err := blacklist.IsBlacklisted(t.Context(), "nope")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
