package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

type fakeDelegated struct {
	sub   string
	token string
}

func (f *fakeDelegated) SubjectID() string   { return f.sub }
func (f *fakeDelegated) AccessToken() string { return f.token }

type fakeTokens struct {
	token string
}

func (f *fakeTokens) AccessToken() string { return f.token }

func subjectToken(t *testing.T, sub string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestResolve_DelegatedWins(t *testing.T) {
	r := NewResolver(
		&fakeDelegated{sub: "oidc-sub"},
		&fakeTokens{token: subjectToken(t, "token-sub")},
	)
	r.SetProfile(&domain.UserProfile{KeycloakID: "profile-sub"})

	assert.Equal(t, "oidc-sub", r.Resolve())
}

func TestResolve_ProfileBeatsToken(t *testing.T) {
	r := NewResolver(nil, &fakeTokens{token: subjectToken(t, "token-sub")})
	r.SetProfile(&domain.UserProfile{KeycloakID: "profile-sub"})

	assert.Equal(t, "profile-sub", r.Resolve())
}

func TestResolve_FallsBackToTokenSub(t *testing.T) {
	r := NewResolver(nil, &fakeTokens{token: subjectToken(t, "token-sub")})
	assert.Equal(t, "token-sub", r.Resolve())
}

func TestResolve_InactiveDelegatedSkipped(t *testing.T) {
	r := NewResolver(&fakeDelegated{}, &fakeTokens{token: subjectToken(t, "token-sub")})
	assert.Equal(t, "token-sub", r.Resolve())
}

func TestResolve_EmptyProfileIDSkipped(t *testing.T) {
	r := NewResolver(nil, &fakeTokens{token: subjectToken(t, "token-sub")})
	r.SetProfile(&domain.UserProfile{})
	assert.Equal(t, "token-sub", r.Resolve())
}

func TestResolve_NoSources(t *testing.T) {
	r := NewResolver(nil, &fakeTokens{})
	assert.Empty(t, r.Resolve())
}

func TestResolve_MalformedTokenYieldsEmpty(t *testing.T) {
	r := NewResolver(nil, &fakeTokens{token: "garbage"})
	assert.Empty(t, r.Resolve())
}

func TestResolve_ClearedProfileFallsThrough(t *testing.T) {
	r := NewResolver(nil, &fakeTokens{token: subjectToken(t, "token-sub")})
	r.SetProfile(&domain.UserProfile{KeycloakID: "profile-sub"})
	r.SetProfile(nil)
	assert.Equal(t, "token-sub", r.Resolve())
}

func TestToken_DelegatedPreferred(t *testing.T) {
	r := NewResolver(&fakeDelegated{token: "oidc-token"}, &fakeTokens{token: "stored-token"})
	assert.Equal(t, "oidc-token", r.Token())
}

func TestToken_FallsBackToStored(t *testing.T) {
	r := NewResolver(&fakeDelegated{}, &fakeTokens{token: "stored-token"})
	assert.Equal(t, "stored-token", r.Token())
}

func TestSubjectFromToken(t *testing.T) {
	assert.Equal(t, "user-9", subjectFromToken(subjectToken(t, "user-9")))
	assert.Empty(t, subjectFromToken(""))
	assert.Empty(t, subjectFromToken("a.b"))
}
