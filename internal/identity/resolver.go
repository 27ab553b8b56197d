// Package identity resolves the canonical subject id of the current
// user from whichever authentication source is active.
package identity

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// DelegatedSession is an externally managed OIDC session. Both getters
// return "" when no session is active.
type DelegatedSession interface {
	SubjectID() string
	AccessToken() string
}

// TokenSource supplies the stored bearer token for the non-delegated
// path. Returns "" when none is stored.
type TokenSource interface {
	AccessToken() string
}

// Resolver derives the subject id on demand. Resolution is pure: it
// consults only in-memory state and decodes at most one JWT locally,
// never the network.
//
// Source priority is fixed and must not be reordered:
//  1. delegated-session claim (freshest, most authoritative)
//  2. cached profile keycloakId (set after a successful profile load)
//  3. sub claim decoded from the stored bearer token (weakest)
type Resolver struct {
	delegated DelegatedSession // may be nil
	tokens    TokenSource

	mu      sync.RWMutex
	profile *domain.UserProfile
}

// NewResolver creates a resolver. delegated may be nil when the client
// runs without an OIDC session.
func NewResolver(delegated DelegatedSession, tokens TokenSource) *Resolver {
	return &Resolver{delegated: delegated, tokens: tokens}
}

// SetProfile caches the last successfully loaded profile as the second
// identity source. Pass nil to drop it (logout).
func (r *Resolver) SetProfile(profile *domain.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = profile
}

// Profile returns the cached profile, or nil.
func (r *Resolver) Profile() *domain.UserProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile
}

// Resolve returns the current subject id, or "" when no source can
// supply one. Decode failures are swallowed; Resolve never fails.
func (r *Resolver) Resolve() string {
	if r.delegated != nil {
		if sub := r.delegated.SubjectID(); sub != "" {
			return sub
		}
	}

	r.mu.RLock()
	profile := r.profile
	r.mu.RUnlock()
	if profile != nil && profile.KeycloakID != "" {
		return profile.KeycloakID
	}

	return subjectFromToken(r.Token())
}

// Token returns the bearer token for outgoing calls: the delegated
// session's token when one is active, otherwise the stored token.
func (r *Resolver) Token() string {
	if r.delegated != nil {
		if tok := r.delegated.AccessToken(); tok != "" {
			return tok
		}
	}
	if r.tokens != nil {
		return r.tokens.AccessToken()
	}
	return ""
}

// subjectFromToken decodes the sub claim without verifying the
// signature. Malformed tokens yield "".
func subjectFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return ""
	}
	return claims.Subject
}
