package upload_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chats"
	"github.com/chattolabs/chatto/internal/chattotest"
	"github.com/chattolabs/chatto/internal/upload"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func newUploader(t *testing.T) (*chats.Board, *chats.List, *upload.Uploader) {
	t.Helper()
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := api.NewAuthorized(srv.URL, api.TokenFunc(func() string {
		return chattotest.Token
	}))
	board := chats.NewBoard()
	list := chats.NewList(client, api.ModePlay, board, nil)
	return board, list, upload.NewUploader(client, api.ModePlay, board, nil)
}

func TestCheckExport(t *testing.T) {
	t.Run("plain text export passes", func(t *testing.T) {
		path := writeFile(t, "room.txt", []byte("2025년 1월 1일\n철수: 안녕\n"))
		assert.NoError(t, upload.CheckExport(path))
	})

	t.Run("csv export passes", func(t *testing.T) {
		path := writeFile(t, "room.csv", []byte("date,user,message\n"))
		assert.NoError(t, upload.CheckExport(path))
	})

	t.Run("wrong extension is rejected", func(t *testing.T) {
		path := writeFile(t, "room.hwp", []byte("x"))
		err := upload.CheckExport(path)
		assert.ErrorContains(t, err, "지원하지 않는 파일 형식")
	})

	t.Run("binary wearing a txt extension is rejected", func(t *testing.T) {
		// PNG signature.
		png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
		path := writeFile(t, "sneaky.txt", png)
		err := upload.CheckExport(path)
		assert.ErrorContains(t, err, "지원하지 않는 파일 형식")
	})
}

func TestUpload(t *testing.T) {
	board, list, uploader := newUploader(t)
	list.Attach()
	defer list.Close()

	path := writeFile(t, "room.txt", []byte("철수: 안녕\n영희: 안녕!\n"))
	chat, err := uploader.Upload(context.Background(), path)
	require.NoError(t, err)

	// Upload reloads the list through the board and selects the new chat.
	assert.Equal(t, chat.ID, board.SelectedChatID())
	require.Len(t, list.Chats(), 1)
	assert.Equal(t, "제목 없음", list.Chats()[0].Title)
}
