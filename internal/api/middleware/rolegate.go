package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/session"
)

// RequireRole gates a route group on session state. A logged-out visitor
// is sent back to the sign-in page, a session still verifying its
// persisted token gets the self-refreshing loading page, and a logged-in
// user with the wrong role is refused outright.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := StateFrom(c)
			switch st.Kind {
			case session.LoggedOut:
				return c.Redirect(http.StatusSeeOther, "/")
			case session.Verifying:
				return c.Render(http.StatusOK, "loading", nil)
			}
			if _, ok := allowed[st.Role()]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAuthenticated gates routes shared by every role, such as the
// password-change page.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := StateFrom(c)
			switch st.Kind {
			case session.LoggedOut:
				return c.Redirect(http.StatusSeeOther, "/")
			case session.Verifying:
				return c.Render(http.StatusOK, "loading", nil)
			}
			return next(c)
		}
	}
}
