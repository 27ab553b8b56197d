package api

import (
	"context"
	"net/url"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// UserService talks to the user/profile backend.
type UserService struct {
	c *Client
}

// NewUserService wraps a client for the user service.
func NewUserService(c *Client) *UserService {
	return &UserService{c: c}
}

// Login exchanges username/password for backend-issued tokens. The
// backend calls Keycloak internally.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := s.c.post(ctx, "/v1/auth/login/public", domain.LoginRequest{
		Username: username,
		Password: password,
	}, &out)
	return out, err
}

// Signup creates a new account.
func (s *UserService) Signup(ctx context.Context, req domain.SignupRequest) (domain.UserProfile, error) {
	var out domain.UserProfile
	err := s.c.post(ctx, "/v1/user/profile/signup/public", req, &out)
	return out, err
}

// ProfileByKeycloakID fetches a profile by subject id.
func (s *UserService) ProfileByKeycloakID(ctx context.Context, keycloakID string) (domain.UserProfile, error) {
	var out domain.UserProfile
	q := url.Values{"keycloakId": {keycloakID}}
	err := s.c.get(ctx, "/v1/user/profile", q, &out)
	return out, err
}

// CurrentProfile fetches the authenticated user's own profile.
func (s *UserService) CurrentProfile(ctx context.Context) (domain.UserProfile, error) {
	var out domain.UserProfile
	err := s.c.get(ctx, "/v1/user/profile/me", nil, &out)
	return out, err
}

// UpdateProfile updates the current profile.
func (s *UserService) UpdateProfile(ctx context.Context, req domain.UpdateRequest) (domain.UserProfile, error) {
	var out domain.UserProfile
	err := s.c.put(ctx, "/v1/user/profile/update", req, &out)
	return out, err
}

// ProfilesBySkill searches profiles offering a skill.
func (s *UserService) ProfilesBySkill(ctx context.Context, skill string) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	q := url.Values{"skill": {skill}}
	err := s.c.get(ctx, "/v1/user/profile/skills", q, &out)
	return out, err
}

// ActiveUsersCount returns the landing-page active user counter.
func (s *UserService) ActiveUsersCount(ctx context.Context) (int, error) {
	var out int
	err := s.c.get(ctx, "/v1/user/profile/stats/active-users", nil, &out)
	return out, err
}
