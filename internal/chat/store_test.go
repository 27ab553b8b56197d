package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

func stamped(offset time.Duration) string {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(offset).Format(time.RFC3339Nano)
}

func TestConversationStore_AddAndMessages(t *testing.T) {
	s := NewConversationStore()

	added := s.Add("a_b", domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "hi"})
	assert.True(t, added)

	msgs := s.Messages("a_b")
	assert.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)
}

func TestConversationStore_UnknownKeyEmpty(t *testing.T) {
	s := NewConversationStore()
	assert.Empty(t, s.Messages("nope"))
}

func TestConversationStore_PreservesArrivalOrder(t *testing.T) {
	s := NewConversationStore()
	s.Add("a_b", domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "first"})
	s.Add("a_b", domain.Message{ID: "2", SenderID: "b", ReceiverID: "a", Content: "second"})
	s.Add("a_b", domain.Message{ID: "3", SenderID: "a", ReceiverID: "b", Content: "third"})

	msgs := s.Messages("a_b")
	assert.Equal(t, []string{"first", "second", "third"}, []string{msgs[0].Content, msgs[1].Content, msgs[2].Content})
}

func TestConversationStore_DuplicateByID(t *testing.T) {
	s := NewConversationStore()
	s.Add("a_b", domain.Message{ID: "42", SenderID: "a", ReceiverID: "b", Content: "hello"})

	// Same id, even with different content, is the same message.
	added := s.Add("a_b", domain.Message{ID: "42", SenderID: "a", ReceiverID: "b", Content: "hello (edited)"})
	assert.False(t, added)
	assert.Len(t, s.Messages("a_b"), 1)
}

func TestConversationStore_DifferentIDsNotDuplicate(t *testing.T) {
	s := NewConversationStore()
	ts := stamped(0)
	s.Add("a_b", domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "hello", Timestamp: ts})

	// Identical content but distinct server ids: two real messages.
	added := s.Add("a_b", domain.Message{ID: "2", SenderID: "a", ReceiverID: "b", Content: "hello", Timestamp: ts})
	assert.True(t, added)
	assert.Len(t, s.Messages("a_b"), 2)
}

func TestConversationStore_OptimisticEchoCollapsed(t *testing.T) {
	s := NewConversationStore()

	// Local optimistic copy has no id yet.
	s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "hey", Timestamp: stamped(0)})

	// Live echo lands 300ms later with a server id.
	added := s.Add("a_b", domain.Message{ID: "srv-1", SenderID: "a", ReceiverID: "b", Content: "hey", Timestamp: stamped(300 * time.Millisecond)})
	assert.False(t, added)
	assert.Len(t, s.Messages("a_b"), 1)
}

func TestConversationStore_WindowBoundary(t *testing.T) {
	s := NewConversationStore()
	s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "x", Timestamp: stamped(0)})

	// 999ms apart: duplicate.
	assert.False(t, s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "x", Timestamp: stamped(999 * time.Millisecond)}))

	// Exactly 1s apart: distinct.
	assert.True(t, s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "x", Timestamp: stamped(time.Second)}))
}

func TestConversationStore_MissingTimestampNeverCollapses(t *testing.T) {
	s := NewConversationStore()
	s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "x"})

	added := s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "x", Timestamp: stamped(0)})
	assert.True(t, added)
	assert.Len(t, s.Messages("a_b"), 2)
}

func TestConversationStore_DifferentSenderNotDuplicate(t *testing.T) {
	s := NewConversationStore()
	ts := stamped(0)
	s.Add("a_b", domain.Message{SenderID: "a", ReceiverID: "b", Content: "x", Timestamp: ts})

	assert.True(t, s.Add("a_b", domain.Message{SenderID: "b", ReceiverID: "a", Content: "x", Timestamp: ts}))
}

func TestConversationStore_AddIsIdempotent(t *testing.T) {
	s := NewConversationStore()
	msg := domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "once", Timestamp: stamped(0)}

	for i := 0; i < 5; i++ {
		s.Add("a_b", msg)
	}
	assert.Len(t, s.Messages("a_b"), 1)
}

func TestConversationStore_Clear(t *testing.T) {
	s := NewConversationStore()
	s.Add("a_b", domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "bye"})
	s.Clear("a_b")
	assert.Empty(t, s.Messages("a_b"))
}

func TestConversationStore_MessagesReturnsCopy(t *testing.T) {
	s := NewConversationStore()
	s.Add("a_b", domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "orig"})

	msgs := s.Messages("a_b")
	msgs[0].Content = "mutated"

	assert.Equal(t, "orig", s.Messages("a_b")[0].Content)
}
