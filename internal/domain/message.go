package domain

import "time"

// DeliveryStatus is the server-reported delivery state of a message.
type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "SENT"
	StatusDelivered DeliveryStatus = "DELIVERED"
	StatusRead      DeliveryStatus = "READ"
)

// SystemSender marks frames originated by the chat service itself
// (join/leave notices, connection acks). They are never shown in a
// conversation.
const SystemSender = "system"

// Message is a single chat message between two users.
//
// ID is assigned by the chat service once the message is persisted; a
// locally created optimistic message has none until the next history
// reload supplies the authoritative copy.
type Message struct {
	ID         string         `json:"id,omitempty"`
	SenderID   string         `json:"senderId"`
	ReceiverID string         `json:"receiverId"`
	Content    string         `json:"content"`
	Timestamp  string         `json:"timestamp,omitempty"` // ISO-8601
	Status     DeliveryStatus `json:"status,omitempty"`
}

// Time parses the message timestamp. The zero time is returned for a
// missing or malformed timestamp.
func (m Message) Time() time.Time {
	if m.Timestamp == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		// Some service responses carry fractional seconds without a zone.
		t, err = time.Parse("2006-01-02T15:04:05.999999999", m.Timestamp)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// OtherParty returns whichever of sender/receiver is not selfID.
func (m Message) OtherParty(selfID string) string {
	if m.SenderID == selfID {
		return m.ReceiverID
	}
	return m.SenderID
}

// ChatKey derives the conversation bucket key for a pair of subject ids.
// The pair is sorted lexicographically so both participants address the
// same bucket: ChatKey(a, b) == ChatKey(b, a).
func ChatKey(userID1, userID2 string) string {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	return userID1 + "_" + userID2
}
