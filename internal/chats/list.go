package chats

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chattolabs/chatto/internal/api"
	"go.uber.org/zap"
)

// List is the uploaded-chat list controller for one API mode. It owns the
// fetched collection, the retained error string, and the rename/delete
// mutations with their consistency behavior.
type List struct {
	mu      sync.Mutex
	chats   []api.Chat
	lastErr string

	client  *api.Client
	mode    api.Mode
	board   *Board
	logger  *zap.Logger
	release func()

	// onDeleted lets analysis pages recompute their source-chat state
	// without re-fetching.
	onDeleted func(chatID string)
}

// ListOption configures a List.
type ListOption func(*List)

// WithOnDeleted registers the observer called after a successful delete.
func WithOnDeleted(fn func(chatID string)) ListOption {
	return func(l *List) { l.onDeleted = fn }
}

// NewList creates a list controller bound to the board.
func NewList(client *api.Client, mode api.Mode, board *Board, logger *zap.Logger, opts ...ListOption) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &List{
		client: client,
		mode:   mode,
		board:  board,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Attach installs this list's refresh function into the board's reload slot.
// Call Close when the owning view unmounts.
func (l *List) Attach() {
	l.release = l.board.InstallReload(func() {
		if err := l.Refresh(context.Background()); err != nil {
			l.logger.Warn("chat list reload failed", zap.Error(err))
		}
	})
}

// Close releases the board's reload slot if this list still owns it.
func (l *List) Close() {
	if l.release != nil {
		l.release()
		l.release = nil
	}
}

// Refresh re-fetches the collection. On failure the previous list state is
// kept and the error retained for display.
func (l *List) Refresh(ctx context.Context) error {
	chats, err := l.client.ListChats(ctx, l.mode)
	if err != nil {
		l.setErr(err.Error())
		return err
	}
	l.mu.Lock()
	l.chats = chats
	l.lastErr = ""
	l.mu.Unlock()
	return nil
}

// Chats returns the current collection.
func (l *List) Chats() []api.Chat {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.Chat, len(l.chats))
	copy(out, l.chats)
	return out
}

// ChatIDs returns the ids of the current collection.
func (l *List) ChatIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, len(l.chats))
	for i, c := range l.chats {
		ids[i] = c.ID
	}
	return ids
}

// Err returns the retained error message, or "".
func (l *List) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Grouped partitions the collection for rendering.
func (l *List) Grouped(now time.Time) Grouped {
	l.mu.Lock()
	chats := make([]api.Chat, len(l.chats))
	copy(chats, l.chats)
	l.mu.Unlock()
	return Group(chats, l.board.SelectedChatID(), now)
}

// Mode returns the API side this list is bound to.
func (l *List) Mode() api.Mode { return l.mode }

// Rename commits a title change. A blank trimmed title is a no-op with no
// request. The new title is applied optimistically and rolled back if the
// backend rejects it; on success the list is re-fetched so ordering and any
// server-side normalization are picked up.
func (l *List) Rename(ctx context.Context, chatID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	previous, found := l.applyTitle(chatID, title)
	if !found {
		return nil
	}

	if err := l.client.RenameChat(ctx, l.mode, chatID, title); err != nil {
		l.applyTitle(chatID, previous)
		l.setErr(err.Error())
		return err
	}

	l.logger.Info("chat renamed", zap.String("chat_id", chatID))
	return l.Refresh(ctx)
}

// Delete removes a chat remotely, then locally: the entry is dropped, the
// selection cleared if it pointed at the deleted chat, the OnDeleted
// observer notified, and the collection re-fetched.
func (l *List) Delete(ctx context.Context, chatID string) error {
	if err := l.client.DeleteChat(ctx, l.mode, chatID); err != nil {
		l.setErr(err.Error())
		return err
	}

	l.mu.Lock()
	kept := l.chats[:0]
	for _, c := range l.chats {
		if c.ID != chatID {
			kept = append(kept, c)
		}
	}
	l.chats = kept
	l.mu.Unlock()

	l.board.ClearSelectionIf(chatID)
	if l.onDeleted != nil {
		l.onDeleted(chatID)
	}

	l.logger.Info("chat deleted", zap.String("chat_id", chatID))
	return l.Refresh(ctx)
}

// applyTitle swaps a chat's title in place, returning the prior value.
func (l *List) applyTitle(chatID, title string) (previous string, found bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.chats {
		if l.chats[i].ID == chatID {
			previous = l.chats[i].Title
			l.chats[i].Title = title
			return previous, true
		}
	}
	return "", false
}

func (l *List) setErr(msg string) {
	l.mu.Lock()
	l.lastErr = msg
	l.mu.Unlock()
}
