package chat

import (
	"sync"
	"time"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// dedupWindow is the timestamp tolerance under which two id-less
// messages with identical sender, receiver, and content are considered
// the same message (an optimistic local echo and its live copy).
// Best-effort heuristic: two distinct legitimate messages with the
// same content inside the window will be collapsed.
const dedupWindow = time.Second

// ConversationStore holds the in-memory message buckets rendered by
// any chat view. It is the single source of truth: both live frames
// and history reloads feed it through Add, which de-duplicates
// regardless of arrival order.
type ConversationStore struct {
	mu      sync.RWMutex
	buckets map[string][]domain.Message
}

// NewConversationStore creates an empty store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{buckets: make(map[string][]domain.Message)}
}

// Add appends msg to the conversation bucket unless it duplicates an
// existing entry. Returns whether the message was appended.
//
// Entries keep insertion order, which is arrival order, not timestamp
// order. Under network jitter two messages can land out of causal
// order; the transport carries no sequence number to repair this.
func (s *ConversationStore) Add(chatKey string, msg domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.buckets[chatKey] {
		if isDuplicate(existing, msg) {
			return false
		}
	}
	s.buckets[chatKey] = append(s.buckets[chatKey], msg)
	return true
}

// Messages returns a copy of the conversation's ordered sequence.
// Unknown keys yield an empty slice.
func (s *ConversationStore) Messages(chatKey string) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.buckets[chatKey]
	out := make([]domain.Message, len(bucket))
	copy(out, bucket)
	return out
}

// Clear removes the entire bucket for a conversation.
func (s *ConversationStore) Clear(chatKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, chatKey)
}

// isDuplicate applies the de-duplication rule. When both messages
// carry a server id, ids decide. Otherwise two messages are the same
// if sender, receiver, and content match and their timestamps are
// both present and within dedupWindow of each other.
func isDuplicate(existing, incoming domain.Message) bool {
	if existing.ID != "" && incoming.ID != "" {
		return existing.ID == incoming.ID
	}

	if existing.SenderID != incoming.SenderID ||
		existing.ReceiverID != incoming.ReceiverID ||
		existing.Content != incoming.Content {
		return false
	}

	t1, t2 := existing.Time(), incoming.Time()
	if t1.IsZero() || t2.IsZero() {
		return false
	}
	diff := t1.Sub(t2)
	if diff < 0 {
		diff = -diff
	}
	return diff < dedupWindow
}
