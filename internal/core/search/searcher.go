// Package search implements the debounced owner search behind the
// add-store form. A backend query fires only after the typing has been
// quiet for the debounce window, and every fired query carries a
// monotonically increasing sequence number so a slow early response can
// never overwrite the result of a later keystroke.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ratehub/storefront/internal/api/metrics"
	"github.com/ratehub/storefront/internal/core/domain"
)

// DefaultWindow is the quiet window between keystrokes.
const DefaultWindow = 300 * time.Millisecond

// ErrSuperseded is returned to a caller whose term was replaced by a
// newer keystroke before (or while) its query ran. Callers drop the
// result silently; the newer call carries the answer.
var ErrSuperseded = errors.New("search superseded by newer term")

// Backend is the slice of the gateway the searcher needs. Exactly one of
// name/email is non-empty per call.
type Backend interface {
	AdminUsers(ctx context.Context, token, name, email string) ([]domain.User, error)
}

// Searcher debounces search terms for one open add-store form. It is
// safe for concurrent use; each keystroke request calls Search and the
// newest call wins.
type Searcher struct {
	backend Backend
	window  time.Duration

	mu      sync.Mutex
	seq     uint64        // last issued sequence number
	applied uint64        // sequence of the last applied result
	cancel  chan struct{} // closed when a newer term arrives
}

// New builds a Searcher. A non-positive window falls back to
// DefaultWindow.
func New(backend Backend, window time.Duration) *Searcher {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Searcher{backend: backend, window: window}
}

// Search waits out the debounce window and then queries the backend for
// the term: by email when it contains '@', by name otherwise. If a newer
// Search arrives first, this call returns ErrSuperseded without touching
// the network, so rapid keystrokes issue at most one query for the
// settled term. A result that lost the sequence race is likewise
// discarded.
func (s *Searcher) Search(ctx context.Context, token, term string) ([]domain.User, error) {
	s.mu.Lock()
	s.seq++
	my := s.seq
	if s.cancel != nil {
		close(s.cancel)
	}
	cancel := make(chan struct{})
	s.cancel = cancel
	s.mu.Unlock()

	timer := time.NewTimer(s.window)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-cancel:
		metrics.OwnerSearchTotal.WithLabelValues("superseded").Inc()
		return nil, ErrSuperseded
	case <-timer.C:
	}

	name, email := splitTerm(term)
	metrics.OwnerSearchTotal.WithLabelValues("fired").Inc()
	users, err := s.backend.AdminUsers(ctx, token, name, email)
	if err != nil {
		metrics.OwnerSearchTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if my < s.applied {
		metrics.OwnerSearchTotal.WithLabelValues("superseded").Inc()
		return nil, ErrSuperseded
	}
	s.applied = my
	return users, nil
}

// Close cancels any pending debounce so an abandoned form cannot fire a
// late query. In-flight backend requests are not interrupted, only their
// results discarded by the sequence check.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
	s.applied = s.seq
}

// splitTerm routes a term to the backend's email filter when it looks
// like one, name filter otherwise.
func splitTerm(term string) (name, email string) {
	if strings.Contains(term, "@") {
		return "", term
	}
	return term, ""
}

// Registry hands out one Searcher per open form, keyed by session id.
type Registry struct {
	backend Backend
	window  time.Duration

	mu sync.Mutex
	m  map[string]*Searcher
}

// NewRegistry builds a Registry creating searchers with the given window.
func NewRegistry(backend Backend, window time.Duration) *Registry {
	return &Registry{backend: backend, window: window, m: make(map[string]*Searcher)}
}

// For returns the searcher for a session, creating it on first use.
func (r *Registry) For(sid string) *Searcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[sid]
	if !ok {
		s = New(r.backend, r.window)
		r.m[sid] = s
	}
	return s
}

// Reset discards a session's searcher; called when the add-store form is
// (re)opened or abandoned.
func (r *Registry) Reset(sid string) {
	r.mu.Lock()
	s, ok := r.m[sid]
	delete(r.m, sid)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}
