package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhandAgrawal/Bartr/internal/config"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

func testApp(t *testing.T) *app {
	t.Helper()
	log = logging.Nop()
	cfg = config.Defaults()
	base := t.TempDir()
	paths = config.Paths{
		Base:        base,
		Config:      filepath.Join(base, "config.yaml"),
		Credentials: filepath.Join(base, "credentials.db"),
		Logs:        filepath.Join(base, "logs"),
	}

	a, err := newApp()
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSubjectID_NotLoggedIn(t *testing.T) {
	a := testApp(t)
	_, err := a.subjectID()
	assert.Error(t, err)
}

func TestSubjectID_ValidStoredToken(t *testing.T) {
	a := testApp(t)
	a.tokens.SetAccessToken(signedToken(t, "user-1", time.Now().Add(time.Hour)))

	id, err := a.subjectID()
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestSubjectID_ExpiredStoredTokenClearedAndRejected(t *testing.T) {
	a := testApp(t)
	a.tokens.SetAccessToken(signedToken(t, "user-1", time.Now().Add(-time.Minute)))
	a.tokens.SetRefreshToken("refresh")

	_, err := a.subjectID()
	assert.Error(t, err)

	// The expiry check destroyed the dead tokens, so nothing stale is
	// left to attach to outgoing requests.
	assert.Empty(t, a.tokens.AccessToken())
	assert.Empty(t, a.tokens.RefreshToken())
	assert.False(t, a.authenticated())
}
