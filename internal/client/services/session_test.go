package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/models"
	"github.com/dmitrijs2005/docuport/internal/logging"
)

func newTestManager(t *testing.T, client *fakeClient, store *memStore) *SessionManager {
	t.Helper()
	return NewSessionManager(client, store, logging.Nop())
}

func TestBootstrap_NoToken(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(t, client, newMemStore())

	sess := m.Bootstrap(context.Background())

	assert.Equal(t, StatusUnauthenticated, sess.Status)
	assert.Empty(t, sess.Token)
	assert.Nil(t, sess.Identity)
	assert.Zero(t, client.callCount("CurrentUser"), "no persisted token must mean no network activity")
}

func TestBootstrap_RestoresSession(t *testing.T) {
	identity := identityWithRole("manager")
	client := &fakeClient{
		currentUserFn: func(ctx context.Context) (*models.Identity, error) {
			return identity, nil
		},
	}
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), tokenSlot, []byte("tok-123")))

	m := newTestManager(t, client, store)
	sess := m.Bootstrap(context.Background())

	assert.Equal(t, StatusAuthenticated, sess.Status)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, identity, sess.Identity)
	assert.Equal(t, "tok-123", m.Token())
}

func TestBootstrap_RejectedTokenErased(t *testing.T) {
	client := &fakeClient{
		currentUserFn: func(ctx context.Context) (*models.Identity, error) {
			return nil, api.ErrUnauthorized
		},
	}
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), tokenSlot, []byte("stale")))

	m := newTestManager(t, client, store)
	sess := m.Bootstrap(context.Background())

	assert.Equal(t, StatusUnauthenticated, sess.Status)
	assert.Empty(t, m.Token())
	assert.Nil(t, store.get(tokenSlot), "rejected token must be erased")
}

func TestBootstrap_Idempotent(t *testing.T) {
	identity := identityWithRole("user")
	client := &fakeClient{
		currentUserFn: func(ctx context.Context) (*models.Identity, error) {
			return identity, nil
		},
	}
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), tokenSlot, []byte("tok")))

	m := newTestManager(t, client, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Bootstrap(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, client.callCount("CurrentUser"), "bootstrap must run at most once")
	assert.Equal(t, StatusAuthenticated, m.Current().Status)
}

func TestLogin_Success(t *testing.T) {
	identity := identityWithRole("admin")
	client := &fakeClient{
		loginFn: func(ctx context.Context, email, password string) (*api.LoginResult, error) {
			return &api.LoginResult{User: identity, AccessToken: "fresh-token"}, nil
		},
	}
	store := newMemStore()
	m := newTestManager(t, client, store)

	got, err := m.Login(context.Background(), "jane@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	sess := m.Current()
	assert.Equal(t, StatusAuthenticated, sess.Status)
	assert.Equal(t, "fresh-token", sess.Token)
	assert.Equal(t, []byte("fresh-token"), store.get(tokenSlot))
	assert.True(t, m.IsAuthenticated())
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	client := &fakeClient{
		loginFn: func(ctx context.Context, email, password string) (*api.LoginResult, error) {
			return nil, api.ErrInvalidCredentials
		},
	}
	store := newMemStore()
	m := newTestManager(t, client, store)

	_, err := m.Login(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)

	sess := m.Current()
	assert.Equal(t, StatusUnauthenticated, sess.Status)
	assert.Empty(t, sess.Token)
	assert.Nil(t, store.get(tokenSlot), "failed login must not persist a token")
}

func TestLogin_PersistFailureStillAuthenticates(t *testing.T) {
	identity := identityWithRole("user")
	client := &fakeClient{
		loginFn: func(ctx context.Context, email, password string) (*api.LoginResult, error) {
			return &api.LoginResult{User: identity, AccessToken: "tok"}, nil
		},
	}
	store := newMemStore()
	store.setErr = errors.New("disk full")
	m := newTestManager(t, client, store)

	_, err := m.Login(context.Background(), "jane@example.com", "pw")
	require.NoError(t, err, "a persist failure only affects the next bootstrap")
	assert.True(t, m.IsAuthenticated())
}

func TestLogout_RevokeFailureStillClears(t *testing.T) {
	client := &fakeClient{
		loginFn: func(ctx context.Context, email, password string) (*api.LoginResult, error) {
			return &api.LoginResult{User: identityWithRole("user"), AccessToken: "tok"}, nil
		},
		logoutFn: func(ctx context.Context) error {
			return api.ErrUnavailable
		},
	}
	store := newMemStore()
	m := newTestManager(t, client, store)

	_, err := m.Login(context.Background(), "jane@example.com", "pw")
	require.NoError(t, err)

	m.Logout(context.Background())

	assert.Equal(t, StatusUnauthenticated, m.Current().Status)
	assert.Empty(t, m.Token())
	assert.Nil(t, store.get(tokenSlot))
}

func TestLogout_NoSessionSkipsRevoke(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(t, client, newMemStore())

	m.Logout(context.Background())

	assert.Zero(t, client.callCount("Logout"))
	assert.Equal(t, StatusUnauthenticated, m.Current().Status)
}

func TestInvalidate_ForcedByTransport(t *testing.T) {
	client := &fakeClient{
		loginFn: func(ctx context.Context, email, password string) (*api.LoginResult, error) {
			return &api.LoginResult{User: identityWithRole("user"), AccessToken: "tok"}, nil
		},
	}
	store := newMemStore()
	m := newTestManager(t, client, store)

	_, err := m.Login(context.Background(), "jane@example.com", "pw")
	require.NoError(t, err)

	var binding api.SessionBinding = m
	binding.Invalidate()
	binding.Invalidate() // idempotent

	assert.Equal(t, StatusUnauthenticated, m.Current().Status)
	assert.Empty(t, binding.Token())
	assert.Nil(t, store.get(tokenSlot))
}
