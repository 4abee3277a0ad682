package session_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/chattotest"
	"github.com/chattolabs/chatto/internal/session"
)

func newManager(t *testing.T) (*session.Store, *session.Manager) {
	t.Helper()
	backend := chattotest.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	return store, session.NewManager(srv.URL, store, nil)
}

func TestStore(t *testing.T) {
	t.Run("load of a missing file means logged out", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "token"))
		token, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("save writes owner-only and round-trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store := session.NewStore(path)
		require.NoError(t, store.Save("secret"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		token, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "secret", token)
	})

	t.Run("clear twice is fine", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "token"))
		require.NoError(t, store.Save("secret"))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})
}

func TestBootstrap(t *testing.T) {
	t.Run("no token resolves to unauthenticated", func(t *testing.T) {
		_, mgr := newManager(t)
		assert.Equal(t, session.StatusChecking, mgr.Status())

		require.NoError(t, mgr.Bootstrap(context.Background()))
		assert.Equal(t, session.StatusUnauthenticated, mgr.Status())
		assert.Nil(t, mgr.Profile())
	})

	t.Run("valid token restores the profile", func(t *testing.T) {
		store, mgr := newManager(t)
		require.NoError(t, store.Save(chattotest.Token))

		require.NoError(t, mgr.Bootstrap(context.Background()))
		assert.Equal(t, session.StatusAuthenticated, mgr.Status())
		require.NotNil(t, mgr.Profile())
		assert.Equal(t, chattotest.Username, mgr.Profile().Username)
	})

	t.Run("stale token is dropped silently", func(t *testing.T) {
		store, mgr := newManager(t)
		require.NoError(t, store.Save("expired-token"))

		require.NoError(t, mgr.Bootstrap(context.Background()))
		assert.Equal(t, session.StatusUnauthenticated, mgr.Status())

		// The dead token must not survive on disk.
		token, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestLoginLogout(t *testing.T) {
	store, mgr := newManager(t)
	require.NoError(t, mgr.Bootstrap(context.Background()))

	require.NoError(t, mgr.Login(context.Background(), chattotest.Username, chattotest.Password))
	assert.Equal(t, session.StatusAuthenticated, mgr.Status())
	assert.Equal(t, chattotest.Token, mgr.AccessToken())

	// Token persisted for the next process.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, chattotest.Token, token)

	require.NoError(t, mgr.Logout(context.Background()))
	assert.Equal(t, session.StatusUnauthenticated, mgr.Status())
	assert.Empty(t, mgr.AccessToken())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginRejected(t *testing.T) {
	_, mgr := newManager(t)
	require.NoError(t, mgr.Bootstrap(context.Background()))

	err := mgr.Login(context.Background(), chattotest.Username, "wrong")
	require.Error(t, err)
	assert.Equal(t, session.StatusUnauthenticated, mgr.Status())
}
