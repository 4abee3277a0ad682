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

func TestGuestSession(t *testing.T) {
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	owner := api.NewAuthorized(srv.URL, api.TokenFunc(func() string {
		return chattotest.Token
	}))
	public := api.NewPublic(srv.URL)

	chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())
	analysisID := backend.SeedAnalysis("chemi", chatID, nil)

	editor := quiz.NewEditor(owner, api.KindChemi, analysisID, nil)
	require.NoError(t, editor.Add(context.Background(), api.QuestionInput{
		Title:   "누가 먼저 연락했을까?",
		Options: [4]string{"철수", "영희", "동시에", "기억 안 남"},
		Answer:  2,
	}))
	require.NoError(t, editor.Add(context.Background(), api.QuestionInput{
		Title:   "가장 많이 쓴 이모지는?",
		Options: [4]string{"😂", "❤️", "👍", "😭"},
		Answer:  1,
	}))

	link, err := owner.IssueShareLink(context.Background(), api.KindChemi, analysisID)
	require.NoError(t, err)

	session := quiz.NewGuestSession(public, link.UUID)

	t.Run("answering before registering fails", func(t *testing.T) {
		err := session.Answer(context.Background(), "question-x", 1)
		assert.ErrorContains(t, err, "참여자 등록")
	})

	require.NoError(t, session.Start(context.Background(), "게스트"))
	questions := session.Questions()
	require.Len(t, questions, 2)

	t.Run("answers are hidden from guests", func(t *testing.T) {
		for _, q := range questions {
			assert.Zero(t, q.Answer)
		}
	})

	t.Run("one right one wrong scores one", func(t *testing.T) {
		require.NoError(t, session.Answer(context.Background(), questions[0].ID, 2))
		assert.Equal(t, 1, session.Remaining())
		require.NoError(t, session.Answer(context.Background(), questions[1].ID, 4))
		assert.Equal(t, 0, session.Remaining())

		result, err := session.Result(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "게스트", result.Name)
		assert.Equal(t, 1, result.Score)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("re-answering a question is rejected locally", func(t *testing.T) {
		err := session.Answer(context.Background(), questions[0].ID, 3)
		assert.ErrorContains(t, err, "이미 답변한")
	})
}
