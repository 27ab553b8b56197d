package api

import (
	"context"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// NotificationService talks to the notification backend.
type NotificationService struct {
	c *Client
}

// NewNotificationService wraps a client for the notification service.
func NewNotificationService(c *Client) *NotificationService {
	return &NotificationService{c: c}
}

// List returns the user's notifications.
func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.c.get(ctx, "/notifications/"+userID, nil, &out)
	return out, err
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, notificationID string) error {
	return s.c.delete(ctx, "/notifications/"+notificationID, nil)
}
