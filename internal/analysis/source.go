package analysis

import "sync"

// SourceTracker answers "does the chat this result was computed from still
// exist?". It is seeded from a freshly fetched chat collection and then
// updated incrementally through the chat list's delete notifications, never
// by re-fetching.
//
// The id set is the source of truth; the boolean is derived on demand.
type SourceTracker struct {
	mu     sync.Mutex
	source string
	known  map[string]struct{}
	seeded bool
}

// NewSourceTracker tracks the given source chat id.
func NewSourceTracker(sourceChatID string) *SourceTracker {
	return &SourceTracker{
		source: sourceChatID,
		known:  make(map[string]struct{}),
	}
}

// Seed replaces the known-chat set with a freshly fetched collection.
func (t *SourceTracker) Seed(chatIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.known = make(map[string]struct{}, len(chatIDs))
	for _, id := range chatIDs {
		t.known[id] = struct{}{}
	}
	t.seeded = true
}

// ChatDeleted removes one id from the known set. Deleting an unrelated chat
// leaves the source state untouched.
func (t *SourceTracker) ChatDeleted(chatID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.known, chatID)
}

// HasSourceChat reports whether the source chat is still present. Before
// the first Seed the answer is false: nothing is known yet, and the gate
// treats that as "still loading".
func (t *SourceTracker) HasSourceChat() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.seeded || t.source == "" {
		return false
	}
	_, ok := t.known[t.source]
	return ok
}
