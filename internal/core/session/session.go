package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/storefront/internal/api/metrics"
	"github.com/ratehub/storefront/internal/core/domain"
)

// Kind tags the session state. The three variants are exhaustive: there
// is no reachable combination of a trusted token without an identity —
// a token pending verification is Verifying, everything else degrades to
// LoggedOut.
type Kind int

const (
	LoggedOut Kind = iota
	Verifying
	LoggedIn
)

// State is what the view router dispatches on. Token and Identity are
// both set for LoggedIn, only Token for Verifying, neither for LoggedOut.
type State struct {
	Kind     Kind
	Token    string
	Identity *domain.User
}

// Role returns the logged-in user's role, or "" otherwise.
func (s State) Role() string {
	if s.Kind != LoggedIn || s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// Backend is the slice of the gateway the session layer needs.
type Backend interface {
	VerifyToken(ctx context.Context, token string) (int64, error)
	GetUserByID(ctx context.Context, token string, id int64) (*domain.User, error)
}

// Manager is the single source of truth for session state. Tokens are
// persisted through the Store; resolved identities are cached in memory,
// so after a process restart a persisted token goes through one
// verification round before the session is trusted again.
type Manager struct {
	store   Store
	backend Backend
	ttl     time.Duration
	log     zerolog.Logger

	mu         sync.Mutex
	identities map[string]*domain.User
	verifying  map[string]struct{}
}

// NewManager builds a Manager. ttl bounds how long a persisted token is
// kept by the store.
func NewManager(store Store, backend Backend, ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		backend:    backend,
		ttl:        ttl,
		log:        log,
		identities: make(map[string]*domain.User),
		verifying:  make(map[string]struct{}),
	}
}

// Resolve computes the session state for one request. A persisted token
// without a cached identity kicks off a single background verification
// and reports Verifying until it completes; verification failures are
// swallowed (logged) and degrade to LoggedOut, never surfaced.
func (m *Manager) Resolve(ctx context.Context, sid string) State {
	if sid == "" {
		return State{Kind: LoggedOut}
	}

	token, err := m.store.Get(ctx, sid)
	if err != nil {
		m.log.Error().Err(err).Msg("session store unavailable")
		return State{Kind: LoggedOut}
	}
	if token == "" {
		m.forget(sid)
		return State{Kind: LoggedOut}
	}

	m.mu.Lock()
	if identity, ok := m.identities[sid]; ok {
		m.mu.Unlock()
		return State{Kind: LoggedIn, Token: token, Identity: identity}
	}
	if _, inFlight := m.verifying[sid]; !inFlight {
		m.verifying[sid] = struct{}{}
		go m.verify(context.WithoutCancel(ctx), sid, token)
	}
	m.mu.Unlock()

	return State{Kind: Verifying, Token: token}
}

// verify runs the startup sequence for a persisted token: verify it,
// resolve the user it belongs to, cache the identity. Any failure
// discards the token. The in-flight marker is cleared exactly once, on
// both paths.
func (m *Manager) verify(ctx context.Context, sid, token string) {
	defer func() {
		m.mu.Lock()
		delete(m.verifying, sid)
		m.mu.Unlock()
	}()

	id, err := m.backend.VerifyToken(ctx, token)
	if err == nil {
		var identity *domain.User
		identity, err = m.backend.GetUserByID(ctx, token, id)
		if err == nil {
			m.mu.Lock()
			m.identities[sid] = identity
			m.mu.Unlock()
			metrics.SessionVerificationsTotal.WithLabelValues("ok").Inc()
			return
		}
	}

	m.log.Warn().Err(err).Msg("token verification failed, discarding session")
	metrics.SessionVerificationsTotal.WithLabelValues("discarded").Inc()
	if derr := m.store.Delete(ctx, sid); derr != nil {
		m.log.Error().Err(derr).Msg("failed to discard stale token")
	}
}

// Login persists the token and resolves the identity behind id. The
// session becomes visible as LoggedIn only after both steps succeed; a
// failed identity resolution discards the token and returns the error,
// so callers surface it instead of leaving a half-logged-in session.
func (m *Manager) Login(ctx context.Context, sid string, id int64, token string) (*domain.User, error) {
	if err := m.store.Put(ctx, sid, token, m.ttl); err != nil {
		return nil, err
	}

	identity, err := m.backend.GetUserByID(ctx, token, id)
	if err != nil {
		if derr := m.store.Delete(ctx, sid); derr != nil {
			m.log.Error().Err(derr).Msg("failed to roll back token after resolution failure")
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	m.mu.Lock()
	m.identities[sid] = identity
	m.mu.Unlock()
	return identity, nil
}

// Logout clears the persisted token and cached identity. No backend call
// is made; an unreachable store is logged and the in-memory state is
// cleared regardless.
func (m *Manager) Logout(ctx context.Context, sid string) {
	m.forget(sid)
	if err := m.store.Delete(ctx, sid); err != nil {
		m.log.Error().Err(err).Msg("failed to delete persisted token")
	}
}

func (m *Manager) forget(sid string) {
	m.mu.Lock()
	delete(m.identities, sid)
	m.mu.Unlock()
}
