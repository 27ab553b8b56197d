// Package session manages backend-issued bearer tokens for the
// non-delegated authentication path.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

// Storage keys, matching the browser client's localStorage names.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
)

// expirySkew is the safety buffer before actual JWT expiry. A token
// within this window of expiring is treated as already expired so it
// is never used mid-flight.
const expirySkew = 5 * time.Second

// KV is the durable key-value storage behind the token store.
// Get returns "" for an absent or unreadable key.
type KV interface {
	Get(key string) string
	Set(key, value string) error
	Delete(key string) error
}

// TokenStore persists and validates bearer tokens. All failure modes
// degrade to "not authenticated"; no method surfaces a parse error.
type TokenStore struct {
	kv  KV
	log *logging.Logger
	now func() time.Time
}

// NewTokenStore creates a token store over the given storage.
func NewTokenStore(kv KV, log *logging.Logger) *TokenStore {
	return &TokenStore{kv: kv, log: log.Sub("session"), now: time.Now}
}

// SetAccessToken stores the access token.
func (s *TokenStore) SetAccessToken(token string) {
	if err := s.kv.Set(keyAccessToken, token); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist access token")
	}
}

// AccessToken returns the stored access token, or "" if none.
func (s *TokenStore) AccessToken() string {
	return s.kv.Get(keyAccessToken)
}

// SetRefreshToken stores the refresh token.
func (s *TokenStore) SetRefreshToken(token string) {
	if err := s.kv.Set(keyRefreshToken, token); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist refresh token")
	}
}

// RefreshToken returns the stored refresh token, or "" if none.
func (s *TokenStore) RefreshToken() string {
	return s.kv.Get(keyRefreshToken)
}

// ClearTokens removes both tokens. Idempotent.
func (s *TokenStore) ClearTokens() {
	if err := s.kv.Delete(keyAccessToken); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear access token")
	}
	if err := s.kv.Delete(keyRefreshToken); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear refresh token")
	}
}

// IsTokenExpired reports whether token is absent, malformed, missing an
// expiry claim, or expiring within the safety buffer. It never returns
// an error; anything undecodable counts as expired.
func (s *TokenStore) IsTokenExpired(token string) bool {
	if token == "" {
		return true
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}

	return s.now().Add(expirySkew).Unix() >= claims.ExpiresAt.Unix()
}

// IsAuthenticated reports whether a valid, non-expired token is stored.
// Finding an expired token clears both stored tokens as a side effect.
func (s *TokenStore) IsAuthenticated() bool {
	token := s.AccessToken()
	if token == "" {
		return false
	}
	if s.IsTokenExpired(token) {
		s.log.Debug().Msg("stored token expired, clearing")
		s.ClearTokens()
		return false
	}
	return true
}
