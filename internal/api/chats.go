package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// UploadChat uploads one messenger export and returns the created chat. The
// backend parses the file and defaults the title to "제목 없음" when the
// export carries no room name.
func (c *Client) UploadChat(ctx context.Context, mode Mode, filename string, file io.Reader) (*Chat, error) {
	var out Chat
	err := c.upload(ctx, fmt.Sprintf("/%s/chat/", mode), filename, file, &out, messages{
		400: "대화 파일을 해석할 수 없습니다.",
		415: "지원하지 않는 파일 형식입니다. 텍스트(.txt) 또는 CSV 내보내기만 올릴 수 있습니다.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListChats fetches every chat the user uploaded on the given side.
func (c *Client) ListChats(ctx context.Context, mode Mode) ([]Chat, error) {
	var out []Chat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/chat/", mode), nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// RenameChat changes a chat's title.
func (c *Client) RenameChat(ctx context.Context, mode Mode, chatID, title string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/chat/%s/", mode, chatID), map[string]string{
		"title": title,
	}, nil, messages{
		404: "이미 삭제된 대화입니다.",
	})
}

// DeleteChat removes a chat. Analyses created from it survive and enter the
// source-chat-missing state on the client.
func (c *Client) DeleteChat(ctx context.Context, mode Mode, chatID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/chat/%s/", mode, chatID), nil, nil, messages{
		404: "이미 삭제된 대화입니다.",
	})
}
