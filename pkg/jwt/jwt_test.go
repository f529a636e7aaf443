package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "reader@example.com", "reader")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "bookcatalog", claims.Issuer)
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "a@b.com", "a")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTokenExpired, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", time.Hour, time.Hour)
	m2 := NewManager("secret-two", time.Hour, time.Hour)

	pair, err := m1.GenerateToken(1, "a@b.com", "a")
	require.NoError(t, err)

	_, err = m2.ParseToken(pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
}

func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(7, "a@b.com", "a")
	require.NoError(t, err)

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}
