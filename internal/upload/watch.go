package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay gives the OS a moment to finish writing a dropped file before
// it is read back for upload.
const settleDelay = 500 * time.Millisecond

// Watch uploads every export file newly created in dir until ctx is
// cancelled. It is the terminal analog of the drag-and-drop zone: drop a
// file into the watched directory and it lands in the chat list. onUpload
// is called after each successful upload (nil is allowed).
func (u *Uploader) Watch(ctx context.Context, dir string, onUpload func(chatID, title string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	u.logger.Info("watching for chat exports", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if !allowedExtensions[ext] {
				continue
			}

			time.Sleep(settleDelay)
			chat, err := u.Upload(ctx, event.Name)
			if err != nil {
				u.logger.Warn("auto-upload failed",
					zap.String("file", event.Name),
					zap.Error(err),
				)
				continue
			}
			if onUpload != nil {
				onUpload(chat.ID, chat.Title)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			u.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
