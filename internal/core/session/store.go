// Package session owns "who is logged in": the persisted bearer token,
// the resolved identity, and the tagged state every page decision is
// based on. The browser holds only an opaque session id cookie; the
// token itself lives server-side in a Store.
package session

import (
	"context"
	"time"
)

// Store persists the single piece of durable client state: one opaque
// bearer token per browser session. Implementations must treat the token
// as opaque.
type Store interface {
	// Get returns the persisted token, or "" when none exists.
	Get(ctx context.Context, sid string) (string, error)
	// Put persists the token for the session, replacing any previous one.
	Put(ctx context.Context, sid, token string, ttl time.Duration) error
	// Delete discards the persisted token. Deleting a missing session is
	// not an error.
	Delete(ctx context.Context, sid string) error
}
