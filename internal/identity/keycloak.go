package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/AkhandAgrawal/Bartr/internal/config"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

// KeycloakSession is the delegated authentication path: a direct-access
// grant against the realm's token endpoint. It satisfies
// DelegatedSession; both getters return "" until Login succeeds.
type KeycloakSession struct {
	oauth oauth2.Config
	log   *logging.Logger

	mu      sync.RWMutex
	token   *oauth2.Token
	subject string
}

// NewKeycloakSession builds a session for the configured realm.
// Returns nil when no Keycloak URL is configured; callers treat a nil
// session as "delegated auth unavailable".
func NewKeycloakSession(cfg config.KeycloakConfig, log *logging.Logger) *KeycloakSession {
	if cfg.URL == "" {
		return nil
	}
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token",
		strings.TrimRight(cfg.URL, "/"), cfg.Realm)
	return &KeycloakSession{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		},
		log: log.Sub("keycloak"),
	}
}

// Login exchanges username/password for tokens using the password
// grant and caches the decoded subject claim.
func (s *KeycloakSession) Login(ctx context.Context, username, password string) error {
	token, err := s.oauth.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return fmt.Errorf("keycloak login: %w", err)
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, &claims); err != nil {
		s.log.Warn().Err(err).Msg("access token claims undecodable")
	}

	s.mu.Lock()
	s.token = token
	s.subject = claims.Subject
	s.mu.Unlock()

	s.log.Info().Str("subject", claims.Subject).Msg("delegated session established")
	return nil
}

// Logout drops the session.
func (s *KeycloakSession) Logout() {
	s.mu.Lock()
	s.token = nil
	s.subject = ""
	s.mu.Unlock()
}

// SubjectID returns the sub claim of the active session, or "".
func (s *KeycloakSession) SubjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil || !s.token.Valid() {
		return ""
	}
	return s.subject
}

// AccessToken returns the active session's access token, or "".
func (s *KeycloakSession) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil || !s.token.Valid() {
		return ""
	}
	return s.token.AccessToken
}
