package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatKey_SortsParticipants(t *testing.T) {
	assert.Equal(t, "u1_u2", ChatKey("u1", "u2"))
	assert.Equal(t, "u1_u2", ChatKey("u2", "u1"))
}

func TestChatKey_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"9f2c", "1abc"},
		{"same", "same"},
	}
	for _, p := range pairs {
		assert.Equal(t, ChatKey(p[0], p[1]), ChatKey(p[1], p[0]))
	}
}

func TestOtherParty(t *testing.T) {
	m := Message{SenderID: "u1", ReceiverID: "u2"}
	assert.Equal(t, "u2", m.OtherParty("u1"))
	assert.Equal(t, "u1", m.OtherParty("u2"))
	// A stranger's view still yields the sender.
	assert.Equal(t, "u1", m.OtherParty("u3"))
}

func TestMessage_Time_RFC3339(t *testing.T) {
	m := Message{Timestamp: "2025-06-01T12:00:00Z"}
	got := m.Time()
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), got)
}

func TestMessage_Time_FractionalNoZone(t *testing.T) {
	m := Message{Timestamp: "2025-06-01T12:00:00.123456"}
	got := m.Time()
	assert.False(t, got.IsZero())
	assert.Equal(t, 123456000, got.Nanosecond())
}

func TestMessage_Time_MissingOrMalformed(t *testing.T) {
	assert.True(t, Message{}.Time().IsZero())
	assert.True(t, Message{Timestamp: "yesterday"}.Time().IsZero())
}
