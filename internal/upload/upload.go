// Package upload sends messenger exports to the backend and keeps the chat
// list in sync afterwards: a successful upload triggers the board's reload
// slot and selects the newly created chat, the same flow the drag-and-drop
// widget performed.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chats"
	"go.uber.org/zap"
)

// Uploader uploads export files for one API mode.
type Uploader struct {
	client *api.Client
	mode   api.Mode
	board  *chats.Board
	logger *zap.Logger
}

// NewUploader wires an uploader against the shared board.
func NewUploader(client *api.Client, mode api.Mode, board *chats.Board, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{client: client, mode: mode, board: board, logger: logger}
}

// Upload sends one export file. On success the chat list is reloaded through
// the board and the new chat becomes the selection.
func (u *Uploader) Upload(ctx context.Context, path string) (*api.Chat, error) {
	if err := CheckExport(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("파일을 열 수 없습니다: %w", err)
	}
	defer f.Close()

	chat, err := u.client.UploadChat(ctx, u.mode, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}

	u.board.RequestReload()
	u.board.Select(chat.ID)
	u.logger.Info("chat uploaded",
		zap.String("chat_id", chat.ID),
		zap.String("title", chat.Title),
		zap.Int("people_num", chat.PeopleNum),
	)
	return chat, nil
}
