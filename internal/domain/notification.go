package domain

import "encoding/json"

// Notification is one entry from the notification service.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	UserID    string          `json:"userId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Read      bool            `json:"read,omitempty"`
	Timestamp string          `json:"timestamp"`
}
