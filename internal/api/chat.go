package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// ChatService talks to the chat backend's REST surface. Live messaging
// goes through the websocket transport, not this client.
type ChatService struct {
	c *Client
}

// NewChatService wraps a client for the chat service.
func NewChatService(c *Client) *ChatService {
	return &ChatService{c: c}
}

// History returns the persisted messages between two users, oldest
// first. Every entry carries a server-assigned id.
func (s *ChatService) History(ctx context.Context, senderID, receiverID string) ([]domain.Message, error) {
	var out []domain.Message
	q := url.Values{"senderId": {senderID}, "receiverId": {receiverID}}
	err := s.c.get(ctx, "/messages", q, &out)
	return out, err
}

// Conversations returns the latest message per conversation partner,
// keyed by the partner's subject id.
func (s *ChatService) Conversations(ctx context.Context, userID string) (map[string]domain.Message, error) {
	var out map[string]domain.Message
	q := url.Values{"userId": {userID}}
	err := s.c.get(ctx, "/conversations", q, &out)
	return out, err
}

// CheckMatch reports whether two users are matched and may chat.
func (s *ChatService) CheckMatch(ctx context.Context, user1ID, user2ID string) (bool, error) {
	var out bool
	err := s.c.get(ctx, fmt.Sprintf("/check-match/%s/%s", user1ID, user2ID), nil, &out)
	return out, err
}
