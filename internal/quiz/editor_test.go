package quiz_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chattotest"
	"github.com/chattolabs/chatto/internal/quiz"
)

func newEditor(t *testing.T) (*chattotest.Server, *api.Client, *quiz.Editor) {
	t.Helper()
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := api.NewAuthorized(srv.URL, api.TokenFunc(func() string {
		return chattotest.Token
	}))
	chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())
	analysisID := backend.SeedAnalysis("chemi", chatID, nil)
	return backend, client, quiz.NewEditor(client, api.KindChemi, analysisID, nil)
}

func question(title string, answer int) api.QuestionInput {
	return api.QuestionInput{
		Title:   title,
		Options: [4]string{"하나", "둘", "셋", "넷"},
		Answer:  answer,
	}
}

func TestEditorAdd(t *testing.T) {
	t.Run("added questions come back through the re-fetch", func(t *testing.T) {
		_, _, editor := newEditor(t)
		require.NoError(t, editor.Add(context.Background(), question("첫 질문", 1)))
		require.NoError(t, editor.Add(context.Background(), question("둘째 질문", 3)))

		qs := editor.Questions()
		require.Len(t, qs, 2)
		assert.Equal(t, 1, qs[0].Index)
		assert.Equal(t, 2, qs[1].Index)
	})

	t.Run("invalid input is rejected before any request", func(t *testing.T) {
		_, _, editor := newEditor(t)
		err := editor.Add(context.Background(), question("질문", 5))
		require.ErrorIs(t, err, api.ErrBadRequest)
		assert.Empty(t, editor.Questions())
	})
}

func TestEditorDraftFlow(t *testing.T) {
	_, _, editor := newEditor(t)
	require.NoError(t, editor.Add(context.Background(), question("원래 질문", 1)))
	id := editor.Questions()[0].ID

	t.Run("begin edit snapshots the question", func(t *testing.T) {
		require.NoError(t, editor.BeginEdit(id))
		draft := editor.Draft()
		require.NotNil(t, draft)
		assert.Equal(t, "원래 질문", draft.Title)
	})

	t.Run("cancel drops the draft without sending", func(t *testing.T) {
		editor.CancelEdit()
		assert.Nil(t, editor.Draft())
		assert.Equal(t, "원래 질문", editor.Questions()[0].Title)
	})

	t.Run("commit sends the draft and re-fetches", func(t *testing.T) {
		require.NoError(t, editor.BeginEdit(id))
		draft := editor.Draft()
		draft.Title = "고친 질문"
		editor.SetDraft(*draft)

		require.NoError(t, editor.CommitEdit(context.Background()))
		assert.Nil(t, editor.Draft())
		assert.Equal(t, "고친 질문", editor.Questions()[0].Title)
	})

	t.Run("commit without a draft fails", func(t *testing.T) {
		assert.Error(t, editor.CommitEdit(context.Background()))
	})
}

func TestEditorDelete(t *testing.T) {
	_, _, editor := newEditor(t)
	require.NoError(t, editor.Add(context.Background(), question("하나", 1)))
	require.NoError(t, editor.Add(context.Background(), question("둘", 2)))

	t.Run("single delete reindexes the remainder", func(t *testing.T) {
		first := editor.Questions()[0].ID
		require.NoError(t, editor.Delete(context.Background(), first))

		qs := editor.Questions()
		require.Len(t, qs, 1)
		assert.Equal(t, "둘", qs[0].Title)
		assert.Equal(t, 1, qs[0].Index)
	})

	t.Run("delete all clears the quiz", func(t *testing.T) {
		require.NoError(t, editor.DeleteAll(context.Background()))
		assert.Empty(t, editor.Questions())
	})
}
