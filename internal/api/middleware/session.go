package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/storefront/internal/core/session"
)

const (
	ctxSID   = "sid"
	ctxState = "session_state"
)

// Resolver computes the session state for a request.
type Resolver interface {
	Resolve(ctx context.Context, sid string) session.State
}

// Session resolves the session behind the request's sid cookie and injects
// it into context. It never rejects: downstream gates decide what each
// state may reach.
func Session(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := session.FromRequest(c.Request())
			c.Set(ctxSID, sid)
			c.Set(ctxState, resolver.Resolve(c.Request().Context(), sid))
			return next(c)
		}
	}
}

// StateFrom extracts the session state injected by the Session middleware.
// A missing state reads as LoggedOut.
func StateFrom(c echo.Context) session.State {
	st, _ := c.Get(ctxState).(session.State)
	return st
}

// SIDFrom extracts the request's session id, or "".
func SIDFrom(c echo.Context) string {
	sid, _ := c.Get(ctxSID).(string)
	return sid
}

// SetState injects a session state directly. Intended for tests.
func SetState(c echo.Context, st session.State) {
	c.Set(ctxState, st)
}

// SetSID injects a session id directly. Intended for tests.
func SetSID(c echo.Context, sid string) {
	c.Set(ctxSID, sid)
}
