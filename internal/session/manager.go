// Package session holds the authenticated-user state for the whole process.
//
// On startup Bootstrap checks for a persisted access token and exchanges it
// for the user profile; until that resolves the status is StatusChecking and
// guarded surfaces must not render. Login and Logout update the token store
// and profile in one place.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/chattolabs/chatto/internal/api"
	"go.uber.org/zap"
)

// Status is the client-side authentication state.
type Status int

const (
	StatusChecking Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Manager owns the token, the profile, and the two API client instances.
type Manager struct {
	mu      sync.RWMutex
	token   string
	status  Status
	profile *api.Profile

	store      *Store
	public     *api.Client
	authorized *api.Client
	logger     *zap.Logger
}

// NewManager wires the manager and both client instances against one backend
// base URL.
func NewManager(baseURL string, store *Store, logger *zap.Logger, opts ...api.Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:  store,
		status: StatusChecking,
		logger: logger,
	}
	m.public = api.NewPublic(baseURL, opts...)
	m.authorized = api.NewAuthorized(baseURL, api.TokenFunc(m.AccessToken), opts...)
	return m
}

// Public returns the unauthenticated client instance.
func (m *Manager) Public() *api.Client { return m.public }

// Authorized returns the bearer-token client instance.
func (m *Manager) Authorized() *api.Client { return m.authorized }

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Status returns the current authentication state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Profile returns the cached profile, or nil when not authenticated.
func (m *Manager) Profile() *api.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// Bootstrap performs the initial session check: load the persisted token and
// fetch the profile. A missing token or a rejected one resolves to
// StatusUnauthenticated; transport failures propagate so the caller can
// distinguish "logged out" from "backend unreachable".
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		m.set("", StatusUnauthenticated, nil)
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	profile, err := m.authorized.GetProfile(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			// Stale token. Drop it.
			if clearErr := m.store.Clear(); clearErr != nil {
				m.logger.Warn("failed to clear stale token", zap.Error(clearErr))
			}
			m.set("", StatusUnauthenticated, nil)
			return nil
		}
		m.set("", StatusChecking, nil)
		return err
	}

	m.set(token, StatusAuthenticated, profile)
	m.logger.Info("session restored", zap.String("username", profile.Username))
	return nil
}

// Login exchanges credentials for a token, persists it, and caches the
// profile.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	resp, err := m.public.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := m.store.Save(resp.AccessToken); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = resp.AccessToken
	m.mu.Unlock()

	profile, err := m.authorized.GetProfile(ctx)
	if err != nil {
		return err
	}
	m.set(resp.AccessToken, StatusAuthenticated, profile)
	m.logger.Info("logged in", zap.String("username", profile.Username))
	return nil
}

// Logout invalidates the token server-side (best effort) and clears local
// state.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.authorized.Logout(ctx); err != nil {
		m.logger.Warn("server-side logout failed", zap.Error(err))
	}
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.set("", StatusUnauthenticated, nil)
	return nil
}

// RefreshProfile re-fetches the profile (credit balance changes after
// purchases and analysis requests).
func (m *Manager) RefreshProfile(ctx context.Context) (*api.Profile, error) {
	profile, err := m.authorized.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	return profile, nil
}

func (m *Manager) set(token string, status Status, profile *api.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.status = status
	m.profile = profile
}
