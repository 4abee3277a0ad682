// Package chats implements the shared chat-selection state and the uploaded
// chat list controller.
//
// The Board is the process-wide coordination point: it holds the currently
// selected chat id and a single reload slot that the active list controller
// installs its refresh function into, so sibling components (upload,
// analysis pages) can force a chat-list refresh without holding a reference
// to the list itself.
package chats

import "sync"

// Board coordinates chat selection and list reloads across components.
type Board struct {
	mu       sync.Mutex
	selected string
	reload   func()
	owner    uint64
	nextID   uint64
}

// NewBoard returns an empty board with no selection.
func NewBoard() *Board {
	return &Board{}
}

// SelectedChatID returns the selected chat id, or "" when nothing is
// selected.
func (b *Board) SelectedChatID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// ToggleSelect selects chatID, or deselects it if it is already the
// selection (radio-with-off-state). Returns the resulting selection.
func (b *Board) ToggleSelect(chatID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == chatID {
		b.selected = ""
	} else {
		b.selected = chatID
	}
	return b.selected
}

// Select sets the selection unconditionally (used after upload).
func (b *Board) Select(chatID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = chatID
}

// ClearSelection drops the selection.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = ""
}

// ClearSelectionIf drops the selection only if it equals chatID. Used when
// the selected chat is deleted.
func (b *Board) ClearSelectionIf(chatID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == chatID {
		b.selected = ""
	}
}

// InstallReload installs fn as the active reload handler and returns a
// release function. Last writer wins; the release only clears the slot if
// this installation still owns it, so a stale list instance tearing down
// after navigation cannot remove its successor's handler.
func (b *Board) InstallReload(fn func()) (release func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.owner = id
	b.reload = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.owner == id {
			b.reload = nil
			b.owner = 0
		}
	}
}

// RequestReload invokes the installed reload handler, if any.
func (b *Board) RequestReload() {
	b.mu.Lock()
	fn := b.reload
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}
