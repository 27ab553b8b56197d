package chat

import (
	"context"
	"time"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

// reloadDelay is how long after a local send the caller waits before
// reloading history to pick up the authoritative id-bearing copy.
const reloadDelay = 1500 * time.Millisecond

// HistorySource fetches persisted messages for a pair, oldest first.
// The chat service REST client satisfies this.
type HistorySource interface {
	History(ctx context.Context, senderID, receiverID string) ([]domain.Message, error)
}

// Reconciler merges server-fetched history into the conversation
// store, overlapping safely with live frames from the transport: both
// paths converge on ConversationStore.Add, which de-duplicates
// regardless of arrival order.
type Reconciler struct {
	source HistorySource
	store  *ConversationStore
	log    *logging.Logger
	delay  time.Duration
}

// NewReconciler creates a reconciler reading from source and writing
// into store.
func NewReconciler(source HistorySource, store *ConversationStore, log *logging.Logger) *Reconciler {
	return &Reconciler{
		source: source,
		store:  store,
		log:    log.Sub("history"),
		delay:  reloadDelay,
	}
}

// LoadHistory fetches the full persisted history for the pair and
// appends every entry whose id is not already present. Reload is
// idempotent for id-bearing messages; a purely optimistic local echo
// coexists until the authoritative copy arrives and the store's
// content/time-window rule collapses them.
//
// A failed fetch leaves the store unchanged and is not retried here;
// the caller retries on its next user-visible action.
func (r *Reconciler) LoadHistory(ctx context.Context, subjectID, otherID string) error {
	history, err := r.source.History(ctx, subjectID, otherID)
	if err != nil {
		r.log.Warn().Err(err).Str("other", otherID).Msg("history fetch failed")
		return err
	}

	key := domain.ChatKey(subjectID, otherID)
	existing := make(map[string]bool)
	for _, m := range r.store.Messages(key) {
		if m.ID != "" {
			existing[m.ID] = true
		}
	}

	added := 0
	for _, msg := range history {
		if msg.ID != "" && existing[msg.ID] {
			continue
		}
		if r.store.Add(key, msg) {
			added++
		}
	}
	r.log.Debug().Str("chatKey", key).Int("fetched", len(history)).Int("added", added).Msg("history merged")
	return nil
}

// ReloadAfterSend schedules a LoadHistory after the fixed post-send
// delay, so the optimistic local echo is superseded by the persisted
// copy. The reload is skipped when ctx is cancelled first.
func (r *Reconciler) ReloadAfterSend(ctx context.Context, subjectID, otherID string) {
	go func() {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			r.LoadHistory(ctx, subjectID, otherID)
		}
	}()
}
