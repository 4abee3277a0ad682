package chats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardToggleSelect(t *testing.T) {
	b := NewBoard()

	assert.Equal(t, "chat-1", b.ToggleSelect("chat-1"))
	assert.Equal(t, "chat-1", b.SelectedChatID())

	// Selecting the selected chat deselects it.
	assert.Equal(t, "", b.ToggleSelect("chat-1"))
	assert.Equal(t, "", b.SelectedChatID())

	// Selecting another chat replaces the selection.
	b.ToggleSelect("chat-1")
	assert.Equal(t, "chat-2", b.ToggleSelect("chat-2"))
}

func TestBoardClearSelectionIf(t *testing.T) {
	b := NewBoard()
	b.Select("chat-1")

	b.ClearSelectionIf("chat-2")
	assert.Equal(t, "chat-1", b.SelectedChatID())

	b.ClearSelectionIf("chat-1")
	assert.Equal(t, "", b.SelectedChatID())
}

func TestBoardReloadSlot(t *testing.T) {
	t.Run("installed handler receives reload requests", func(t *testing.T) {
		b := NewBoard()
		calls := 0
		release := b.InstallReload(func() { calls++ })
		defer release()

		b.RequestReload()
		b.RequestReload()
		assert.Equal(t, 2, calls)
	})

	t.Run("reload without a handler is a no-op", func(t *testing.T) {
		b := NewBoard()
		b.RequestReload()
	})

	t.Run("last writer wins and a stale release cannot evict it", func(t *testing.T) {
		b := NewBoard()
		var got []string

		releaseOld := b.InstallReload(func() { got = append(got, "old") })
		releaseNew := b.InstallReload(func() { got = append(got, "new") })

		// The old instance tears down after navigation; the new owner's
		// handler must survive.
		releaseOld()
		b.RequestReload()
		assert.Equal(t, []string{"new"}, got)

		releaseNew()
		b.RequestReload()
		assert.Equal(t, []string{"new"}, got)
	})
}
