// Package services contains the application services of the docuport
// client: session lifecycle, batch upload orchestration, and thin
// pass-through services for browsing and administration.
package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/models"
	"github.com/dmitrijs2005/docuport/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docuport/internal/logging"
)

// SessionStatus is the lifecycle state of the process-wide session.
type SessionStatus string

const (
	StatusUnauthenticated SessionStatus = "unauthenticated"
	StatusBootstrapping   SessionStatus = "bootstrapping"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusInvalidating    SessionStatus = "invalidating"
)

// Session is one immutable snapshot of authentication state.
//
// Invariants: Token is non-empty iff Status is Authenticated or
// Invalidating; Identity is non-nil iff Status is Authenticated.
// Snapshots are replaced whole, never mutated in place.
type Session struct {
	Status   SessionStatus
	Token    string
	Identity *models.Identity
}

// tokenSlot is the name of the durable key-value slot holding the bearer
// token between runs.
const tokenSlot = "access_token"

// storeTimeout bounds local-store writes issued outside a caller context
// (forced invalidation happens inside transport error handling).
const storeTimeout = 3 * time.Second

// SessionManager is the single source of truth for "who is logged in" and
// the bearer credential attached to authenticated calls.
//
// It is the session's only writer. Readers obtain whole-value snapshots
// via Current and never observe a partially updated session. The manager
// implements api.SessionBinding: the transport pulls the current token
// from it and calls Invalidate when the server rejects one.
type SessionManager struct {
	client api.Client
	store  metadata.Repository
	log    logging.Logger

	mu     sync.Mutex
	bearer string // credential for outbound calls; may precede Authenticated during bootstrap

	current atomic.Value // Session

	bootstrapOnce sync.Once
}

// NewSessionManager constructs a manager in the Unauthenticated state.
// Call Bootstrap once at process start to restore a persisted session.
func NewSessionManager(client api.Client, store metadata.Repository, log logging.Logger) *SessionManager {
	m := &SessionManager{client: client, store: store, log: log}
	m.current.Store(Session{Status: StatusUnauthenticated})
	return m
}

// Current returns the latest session snapshot.
func (m *SessionManager) Current() Session {
	return m.current.Load().(Session)
}

// Identity returns the authenticated identity, or nil.
func (m *SessionManager) Identity() *models.Identity {
	return m.Current().Identity
}

// IsAuthenticated reports whether a live session exists.
func (m *SessionManager) IsAuthenticated() bool {
	return m.Current().Status == StatusAuthenticated
}

// Token implements api.SessionBinding. It returns the credential attached
// to outbound requests, which during bootstrap is the persisted candidate
// token not yet reflected in the published session.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bearer
}

// Invalidate implements api.SessionBinding: forced invalidation after the
// server rejected the bearer token on any authenticated call. Equivalent
// to the local half of a logout. Idempotent.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// clearLocked drops the in-memory session and erases the persisted token.
// Caller holds m.mu.
func (m *SessionManager) clearLocked() {
	m.bearer = ""
	m.current.Store(Session{Status: StatusUnauthenticated})

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := m.store.Delete(ctx, tokenSlot); err != nil {
		m.log.Warn(ctx, "erasing persisted token", "error", err)
	}
}

// Bootstrap restores the session from the persisted token, if any. Only
// the first invocation performs work; concurrent and later calls observe
// the in-progress or final state without re-issuing requests.
//
// With no persisted token the session becomes Unauthenticated with zero
// network calls. Otherwise an identity fetch is issued; on success the
// session becomes Authenticated, on any failure the token is erased and
// the session degrades silently to Unauthenticated. Bootstrap failures
// are state transitions, not user-facing errors.
func (m *SessionManager) Bootstrap(ctx context.Context) Session {
	m.bootstrapOnce.Do(func() { m.bootstrap(ctx) })
	return m.Current()
}

func (m *SessionManager) bootstrap(ctx context.Context) {
	token, err := m.store.Get(ctx, tokenSlot)
	if err != nil {
		m.log.Warn(ctx, "reading persisted token", "error", err)
	}
	if len(token) == 0 {
		m.current.Store(Session{Status: StatusUnauthenticated})
		return
	}

	m.mu.Lock()
	m.bearer = string(token)
	m.current.Store(Session{Status: StatusBootstrapping})
	m.mu.Unlock()

	identity, err := m.client.CurrentUser(ctx)
	if err != nil {
		// A 401 already invalidated via the transport hook; every other
		// failure ends in the same state.
		m.log.Info(ctx, "bootstrap identity fetch failed", "error", err)
		m.mu.Lock()
		m.clearLocked()
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	// Guard against a concurrent forced invalidation between the fetch
	// and this publish.
	if m.bearer == string(token) {
		m.current.Store(Session{Status: StatusAuthenticated, Token: string(token), Identity: identity})
	}
	m.mu.Unlock()
	m.log.Info(ctx, "session restored", "user", identity.Email)
}

// Login exchanges credentials for an authenticated session. On failure the
// session is left exactly as it was and the api error is returned
// unchanged. Concurrent logins are last-write-wins.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(ctx, tokenSlot, []byte(res.AccessToken)); err != nil {
		// The in-memory session still works for this run; only the next
		// bootstrap is affected.
		m.log.Warn(ctx, "persisting token", "error", err)
	}

	m.mu.Lock()
	m.bearer = res.AccessToken
	m.current.Store(Session{Status: StatusAuthenticated, Token: res.AccessToken, Identity: res.User})
	m.mu.Unlock()

	m.log.Info(ctx, "login successful", "user", res.User.Email)
	return res.User, nil
}

// RefreshIdentity publishes an updated identity snapshot for the current
// authenticated session (profile edits). No-op otherwise.
func (m *SessionManager) RefreshIdentity(identity *models.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.Current()
	if cur.Status == StatusAuthenticated {
		m.current.Store(Session{Status: StatusAuthenticated, Token: cur.Token, Identity: identity})
	}
}

// Logout revokes the session server-side on a best-effort basis and always
// clears local state. A failed or timed-out revoke is swallowed: the user
// can never get stuck logged in client-side because the server is
// unreachable.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	hadSession := m.bearer != ""
	if hadSession {
		m.current.Store(Session{Status: StatusInvalidating, Token: m.bearer})
	}
	m.mu.Unlock()

	if hadSession {
		if err := m.client.Logout(ctx); err != nil {
			m.log.Info(ctx, "server-side revoke failed, clearing locally", "error", err)
		}
	}

	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
}
