package api

import (
	"context"
	"net/url"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// MatchingService talks to the matching/swipe backend.
type MatchingService struct {
	c *Client
}

// NewMatchingService wraps a client for the matching service.
func NewMatchingService(c *Client) *MatchingService {
	return &MatchingService{c: c}
}

// TopMatches returns candidate profiles to swipe on.
func (s *MatchingService) TopMatches(ctx context.Context, keycloakID string) ([]domain.Candidate, error) {
	var out []domain.Candidate
	q := url.Values{"keycloakId": {keycloakID}}
	err := s.c.get(ctx, "/v1/matches/top", q, &out)
	return out, err
}

// Swipe records a like/pass and reports whether it produced a match.
func (s *MatchingService) Swipe(ctx context.Context, req domain.SwipeRequest) (domain.SwipeResponse, error) {
	var out domain.SwipeResponse
	err := s.c.post(ctx, "/v1/swipe", req, &out)
	return out, err
}

// MatchHistory returns past matches for a user.
func (s *MatchingService) MatchHistory(ctx context.Context, keycloakID string) ([]domain.MatchHistoryEntry, error) {
	var out []domain.MatchHistoryEntry
	q := url.Values{"keycloakId": {keycloakID}}
	err := s.c.get(ctx, "/v1/matches/history", q, &out)
	return out, err
}

// Unmatch removes a match between two users.
func (s *MatchingService) Unmatch(ctx context.Context, user1ID, user2ID string) error {
	q := url.Values{"user1Id": {user1ID}, "user2Id": {user2ID}}
	return s.c.delete(ctx, "/v1/matches/unmatch", q)
}

// MatchesCount returns the landing-page total match counter.
func (s *MatchingService) MatchesCount(ctx context.Context) (int, error) {
	var out int
	err := s.c.get(ctx, "/v1/stats/matches", nil, &out)
	return out, err
}
