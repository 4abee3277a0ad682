package chats_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chats"
	"github.com/chattolabs/chatto/internal/chattotest"
)

func newList(t *testing.T, opts ...chats.ListOption) (*chattotest.Server, *chats.Board, *chats.List) {
	t.Helper()
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := api.NewAuthorized(srv.URL, api.TokenFunc(func() string {
		return chattotest.Token
	}))
	board := chats.NewBoard()
	list := chats.NewList(client, api.ModePlay, board, nil, opts...)
	return backend, board, list
}

func TestListRefresh(t *testing.T) {
	backend, _, list := newList(t)
	backend.SeedChat("play", "우리 대화", 2, time.Now())
	backend.SeedChat("business", "팀 채널", 5, time.Now())

	require.NoError(t, list.Refresh(context.Background()))

	// Only the play side is visible to a play-mode list.
	require.Len(t, list.Chats(), 1)
	assert.Equal(t, "우리 대화", list.Chats()[0].Title)
	assert.Empty(t, list.Err())
}

func TestListRename(t *testing.T) {
	t.Run("blank title sends no request", func(t *testing.T) {
		backend, _, list := newList(t)
		id := backend.SeedChat("play", "원래 제목", 2, time.Now())
		require.NoError(t, list.Refresh(context.Background()))

		require.NoError(t, list.Rename(context.Background(), id, "   "))
		assert.Equal(t, "원래 제목", list.Chats()[0].Title)
	})

	t.Run("successful rename keeps the new title after re-fetch", func(t *testing.T) {
		backend, _, list := newList(t)
		id := backend.SeedChat("play", "원래 제목", 2, time.Now())
		require.NoError(t, list.Refresh(context.Background()))

		require.NoError(t, list.Rename(context.Background(), id, "새 제목"))
		assert.Equal(t, "새 제목", list.Chats()[0].Title)
	})

	t.Run("failed rename rolls the optimistic title back", func(t *testing.T) {
		backend, _, list := newList(t)
		id := backend.SeedChat("play", "원래 제목", 2, time.Now())
		require.NoError(t, list.Refresh(context.Background()))

		// Another session deletes the chat; our list still shows it.
		backend.RemoveChat(id)

		err := list.Rename(context.Background(), id, "새 제목")
		require.Error(t, err)
		assert.Equal(t, "원래 제목", list.Chats()[0].Title)
		assert.Contains(t, list.Err(), "이미 삭제된 대화")
	})
}

func TestListDelete(t *testing.T) {
	t.Run("deleting the selected chat clears the selection", func(t *testing.T) {
		backend, board, list := newList(t)
		id := backend.SeedChat("play", "우리 대화", 2, time.Now())
		require.NoError(t, list.Refresh(context.Background()))

		board.Select(id)
		require.NoError(t, list.Delete(context.Background(), id))

		assert.Empty(t, board.SelectedChatID())
		assert.Empty(t, list.Chats())
	})

	t.Run("deleting an unrelated chat keeps the selection", func(t *testing.T) {
		backend, board, list := newList(t)
		keep := backend.SeedChat("play", "유지", 2, time.Now())
		drop := backend.SeedChat("play", "삭제", 2, time.Now())
		require.NoError(t, list.Refresh(context.Background()))

		board.Select(keep)
		require.NoError(t, list.Delete(context.Background(), drop))
		assert.Equal(t, keep, board.SelectedChatID())
	})

	t.Run("delete notifies the OnDeleted observer", func(t *testing.T) {
		var deleted []string
		backend, _, list := newList(t, chats.WithOnDeleted(func(id string) {
			deleted = append(deleted, id)
		}))
		id := backend.SeedChat("play", "우리 대화", 2, time.Now())
		require.NoError(t, list.Refresh(context.Background()))

		require.NoError(t, list.Delete(context.Background(), id))
		assert.Equal(t, []string{id}, deleted)
	})
}

func TestListAttach(t *testing.T) {
	backend, board, list := newList(t)
	backend.SeedChat("play", "우리 대화", 2, time.Now())

	list.Attach()
	defer list.Close()

	// A sibling component requests a reload through the board and the list
	// picks up the collection without being referenced directly.
	board.RequestReload()
	require.Len(t, list.Chats(), 1)
}
