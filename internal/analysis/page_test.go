package analysis_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/analysis"
	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chats"
	"github.com/chattolabs/chatto/internal/chattotest"
)

func newBackend(t *testing.T) (*chattotest.Server, *api.Client) {
	t.Helper()
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := api.NewAuthorized(srv.URL, api.TokenFunc(func() string {
		return chattotest.Token
	}))
	return backend, client
}

func TestPageLoad(t *testing.T) {
	backend, client := newBackend(t)
	chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())
	resultID := backend.SeedAnalysis("chemi", chatID, map[string]string{"relation": "친구"})

	page := analysis.NewPage(client, api.KindChemi, resultID, nil)
	require.NoError(t, page.Load(context.Background()))

	result := page.Result()
	require.NotNil(t, result)
	assert.Equal(t, chatID, result.ChatID)
	assert.Equal(t, "친구", result.Relation)

	// Freshly loaded: source chat exists, form untouched, so the gate is
	// closed with the unchanged reason.
	gate := page.Gate()
	assert.False(t, gate.Allowed())
	assert.True(t, gate.HasSourceChat)
	assert.True(t, gate.Unchanged)
}

func TestPageReanalyze(t *testing.T) {
	backend, client := newBackend(t)
	chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())
	resultID := backend.SeedAnalysis("chemi", chatID, map[string]string{"relation": "친구"})

	page := analysis.NewPage(client, api.KindChemi, resultID, nil)
	require.NoError(t, page.Load(context.Background()))

	t.Run("unchanged form is rejected without a request", func(t *testing.T) {
		_, err := page.Reanalyze(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "변경된 내용이 없어")
	})

	t.Run("changed form creates a new immutable result", func(t *testing.T) {
		page.SetField(analysis.FieldRelation, "연인")
		assert.True(t, page.Gate().Allowed())

		fresh, err := page.Reanalyze(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, resultID, fresh.ID)
		assert.Equal(t, chatID, fresh.ChatID)
		assert.Equal(t, "연인", fresh.Relation)

		// The loaded result was not mutated in place.
		assert.Equal(t, "친구", page.Result().Relation)
	})

	t.Run("reverting the field closes the gate again", func(t *testing.T) {
		page.ResetForm()
		gate := page.Gate()
		assert.True(t, gate.Unchanged)
		assert.False(t, gate.Allowed())
	})
}

// TestUploadAnalyzeDeleteScenario walks the end-to-end flow: upload an
// export, analyze it, then delete the source chat through the list and watch
// the re-analyze gate close.
func TestUploadAnalyzeDeleteScenario(t *testing.T) {
	backend, client := newBackend(t)

	// Empty list to start.
	initial, err := client.ListChats(context.Background(), api.ModePlay)
	require.NoError(t, err)
	assert.Empty(t, initial)

	// Upload room.txt: untitled default, today's bucket.
	chat, err := client.UploadChat(context.Background(), api.ModePlay, "room.txt", strings.NewReader("대화"))
	require.NoError(t, err)
	assert.Equal(t, "제목 없음", chat.Title)
	assert.Equal(t, chats.BucketToday, chats.BucketFor(chat.UploadedAt, time.Now()))

	// Analyze it; the result must reference the same chat.
	created, err := client.RequestAnalysis(context.Background(), api.KindChemi, chat.ID, api.Params{})
	require.NoError(t, err)
	assert.Equal(t, chat.ID, created.ChatID)

	page := analysis.NewPage(client, api.KindChemi, created.ID, nil)
	require.NoError(t, page.Load(context.Background()))

	board := chats.NewBoard()
	list := chats.NewList(client, api.ModePlay, board, nil,
		chats.WithOnDeleted(page.ChatDeleted))
	require.NoError(t, list.Refresh(context.Background()))

	// Change a field so only the source chat gates the action.
	page.SetField(analysis.FieldRelation, "동료")
	require.True(t, page.Gate().Allowed())

	// Delete the source chat via the list; the page hears about it through
	// the OnDeleted callback, without any re-fetch.
	require.NoError(t, list.Delete(context.Background(), chat.ID))

	gate := page.Gate()
	assert.False(t, gate.HasSourceChat)
	assert.False(t, gate.Allowed())
	assert.Equal(t, "원본 대화가 삭제되어 재분석할 수 없습니다.", gate.Reason())

	// And the backend agrees: a re-analyze attempt would 404.
	_, err = client.RequestAnalysis(context.Background(), api.KindChemi, chat.ID, api.Params{Relation: "동료"})
	require.ErrorIs(t, err, api.ErrNotFound)
}
