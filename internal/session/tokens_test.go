package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

func testStore(t *testing.T) *TokenStore {
	t.Helper()
	return NewTokenStore(NewMemoryKV(), logging.Nop())
}

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	return signToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
}

func TestTokenStore_SetGetClear(t *testing.T) {
	s := testStore(t)

	s.SetAccessToken("access")
	s.SetRefreshToken("refresh")
	assert.Equal(t, "access", s.AccessToken())
	assert.Equal(t, "refresh", s.RefreshToken())

	s.ClearTokens()
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())

	// Clearing twice is harmless.
	s.ClearTokens()
}

func TestIsTokenExpired_EmptyToken(t *testing.T) {
	assert.True(t, testStore(t).IsTokenExpired(""))
}

func TestIsTokenExpired_MalformedNeverPanics(t *testing.T) {
	s := testStore(t)
	for _, tok := range []string{
		"not-a-jwt",
		"only.two",
		"a.b.c.d",
		"!!!.###.???",
		"eyJhbGciOiJIUzI1NiJ9.truncated",
	} {
		assert.True(t, s.IsTokenExpired(tok), "token %q", tok)
	}
}

func TestIsTokenExpired_NoExpClaim(t *testing.T) {
	s := testStore(t)
	tok := signToken(t, jwt.RegisteredClaims{Subject: "user-1"})
	assert.True(t, s.IsTokenExpired(tok))
}

func TestIsTokenExpired_SafetyBuffer(t *testing.T) {
	s := testStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	// Expiring within the 5s buffer counts as expired.
	assert.True(t, s.IsTokenExpired(tokenExpiringAt(t, now.Add(4*time.Second))))
	assert.True(t, s.IsTokenExpired(tokenExpiringAt(t, now.Add(5*time.Second))))

	// Past the buffer the token is still usable.
	assert.False(t, s.IsTokenExpired(tokenExpiringAt(t, now.Add(6*time.Second))))
	assert.False(t, s.IsTokenExpired(tokenExpiringAt(t, now.Add(time.Hour))))
}

func TestIsTokenExpired_AlreadyExpired(t *testing.T) {
	s := testStore(t)
	assert.True(t, s.IsTokenExpired(tokenExpiringAt(t, time.Now().Add(-time.Hour))))
}

func TestIsAuthenticated_NoToken(t *testing.T) {
	assert.False(t, testStore(t).IsAuthenticated())
}

func TestIsAuthenticated_ValidToken(t *testing.T) {
	s := testStore(t)
	s.SetAccessToken(tokenExpiringAt(t, time.Now().Add(time.Hour)))
	assert.True(t, s.IsAuthenticated())
}

func TestIsAuthenticated_ExpiredTokenClearsBoth(t *testing.T) {
	s := testStore(t)
	s.SetAccessToken(tokenExpiringAt(t, time.Now().Add(-time.Minute)))
	s.SetRefreshToken("refresh")

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
}
