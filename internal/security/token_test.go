package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("Access token", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(7, "budi")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(7), claims.AdminID)
		assert.Equal(t, "budi", claims.Username)
		assert.Equal(t, TokenTypeAccess, claims.Type)
		assert.Equal(t, "7", claims.Subject)
	})

	t.Run("Refresh token", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(7, "budi")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
	})
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, time.Hour)

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour, time.Hour)
		token, err := other.GenerateAccessToken(1, "x")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		m := tm.(*tokenManager)
		old := m.now
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := m.GenerateAccessToken(1, "x")
		m.now = old
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("None algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, AdminClaims{AdminID: 1, Type: TokenTypeAccess})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
