package api_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chattotest"
)

func newClients(t *testing.T) (*chattotest.Server, *api.Client, *api.Client) {
	t.Helper()
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	public := api.NewPublic(srv.URL)
	authorized := api.NewAuthorized(srv.URL, api.TokenFunc(func() string {
		return chattotest.Token
	}))
	return backend, public, authorized
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return a token", func(t *testing.T) {
		_, public, _ := newClients(t)
		resp, err := public.Login(context.Background(), chattotest.Username, chattotest.Password)
		require.NoError(t, err)
		assert.Equal(t, chattotest.Token, resp.AccessToken)
	})

	t.Run("wrong password maps to a credential message", func(t *testing.T) {
		_, public, _ := newClients(t)
		_, err := public.Login(context.Background(), chattotest.Username, "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "아이디 또는 비밀번호")
	})
}

func TestAuthHeader(t *testing.T) {
	t.Run("missing token yields the login-required message", func(t *testing.T) {
		backend := chattotest.New()
		srv := httptest.NewServer(backend.Handler())
		t.Cleanup(srv.Close)

		anon := api.NewAuthorized(srv.URL, api.TokenFunc(func() string { return "" }))
		_, err := anon.GetProfile(context.Background())
		require.Error(t, err)
		assert.True(t, api.IsAuthError(err))
		assert.Equal(t, "로그인이 필요합니다.", err.Error())
	})

	t.Run("bearer token unlocks the profile", func(t *testing.T) {
		_, _, authorized := newClients(t)
		profile, err := authorized.GetProfile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, chattotest.Username, profile.Username)
		assert.Equal(t, 10, profile.Credit)
	})
}

func TestUploadChat(t *testing.T) {
	t.Run("upload defaults the title to untitled", func(t *testing.T) {
		_, _, authorized := newClients(t)
		chat, err := authorized.UploadChat(context.Background(), api.ModePlay, "room.txt", strings.NewReader("대화 내용"))
		require.NoError(t, err)
		assert.Equal(t, "제목 없음", chat.Title)
		assert.NotEmpty(t, chat.ID)
		assert.WithinDuration(t, time.Now(), chat.UploadedAt, time.Minute)
	})

	t.Run("unsupported format maps to the 415 message", func(t *testing.T) {
		_, _, authorized := newClients(t)
		_, err := authorized.UploadChat(context.Background(), api.ModePlay, "photo.png", strings.NewReader("x"))
		require.ErrorIs(t, err, api.ErrUnsupportedMedia)
		assert.Contains(t, err.Error(), "지원하지 않는 파일 형식")
	})
}

func TestRenameChat(t *testing.T) {
	t.Run("rename of a deleted chat reports it as gone", func(t *testing.T) {
		_, _, authorized := newClients(t)
		err := authorized.RenameChat(context.Background(), api.ModePlay, "missing", "새 제목")
		require.ErrorIs(t, err, api.ErrNotFound)
		assert.Equal(t, "이미 삭제된 대화입니다.", err.Error())
	})
}

func TestRequestAnalysis(t *testing.T) {
	t.Run("each request mints a new result id", func(t *testing.T) {
		backend, _, authorized := newClients(t)
		chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())

		params := api.Params{Relation: "친구"}
		first, err := authorized.RequestAnalysis(context.Background(), api.KindChemi, chatID, params)
		require.NoError(t, err)
		second, err := authorized.RequestAnalysis(context.Background(), api.KindChemi, chatID, params)
		require.NoError(t, err)

		assert.Equal(t, chatID, first.ChatID)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("contrib analysis goes through the business side", func(t *testing.T) {
		backend, _, authorized := newClients(t)
		chatID := backend.SeedChat("business", "팀 채널", 5, time.Now())

		result, err := authorized.RequestAnalysis(context.Background(), api.KindContrib, chatID, api.Params{})
		require.NoError(t, err)
		assert.Equal(t, chatID, result.ChatID)
	})

	t.Run("analysis against a deleted chat is a 404", func(t *testing.T) {
		_, _, authorized := newClients(t)
		_, err := authorized.RequestAnalysis(context.Background(), api.KindChemi, "gone", api.Params{})
		require.ErrorIs(t, err, api.ErrNotFound)
	})
}

func TestShareLink(t *testing.T) {
	t.Run("issuing twice returns the same uuid", func(t *testing.T) {
		backend, public, authorized := newClients(t)
		chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())
		analysisID := backend.SeedAnalysis("chemi", chatID, nil)

		first, err := authorized.IssueShareLink(context.Background(), api.KindChemi, analysisID)
		require.NoError(t, err)
		second, err := authorized.IssueShareLink(context.Background(), api.KindChemi, analysisID)
		require.NoError(t, err)
		assert.Equal(t, first.UUID, second.UUID)

		shared, err := public.GetSharedAnalysis(context.Background(), first.UUID)
		require.NoError(t, err)
		assert.Equal(t, analysisID, shared.ID)
	})
}

func TestCredit(t *testing.T) {
	t.Run("purchase raises the balance and lands in history", func(t *testing.T) {
		_, _, authorized := newClients(t)
		profile, err := authorized.PurchaseCredit(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, 15, profile.Credit)

		history, err := authorized.CreditPurchaseHistory(context.Background())
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, 5, history[0].Amount)
	})

	t.Run("analysis spends credit into the usage history", func(t *testing.T) {
		backend, _, authorized := newClients(t)
		chatID := backend.SeedChat("play", "우리 대화", 2, time.Now())
		_, err := authorized.RequestAnalysis(context.Background(), api.KindChemi, chatID, api.Params{})
		require.NoError(t, err)

		usage, err := authorized.CreditUsageHistory(context.Background())
		require.NoError(t, err)
		require.Len(t, usage, 1)
		assert.Equal(t, -1, usage[0].Amount)
		assert.Equal(t, 9, backend.Credit())
	})
}
