package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/storefront/internal/api/metrics"
	apimw "github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/forms"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/core/search"
	"github.com/ratehub/storefront/internal/core/session"
	"github.com/ratehub/storefront/internal/gateway"
)

// AuthHandler serves the entry point and the login/register/logout flows.
type AuthHandler struct {
	gw           ports.Gateway
	sessions     *session.Manager
	searches     *search.Registry
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(gw ports.Gateway, sessions *session.Manager, searches *search.Registry, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		gw:           gw,
		sessions:     sessions,
		searches:     searches,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

// loginPage backs the sign-in template.
type loginPage struct {
	Error string
	Email string
}

// registerPage backs the registration template.
type registerPage struct {
	Draft  forms.RegisterDraft
	Errors forms.Errors
}

// Home is the single entry point. It dispatches on session state: a
// verifying session sees the loading page until the background check
// lands, a logged-in user is sent to the one dashboard their role allows,
// and everyone else gets the sign-in (or, on request, registration) form.
func (h *AuthHandler) Home(c echo.Context) error {
	st := apimw.StateFrom(c)
	switch st.Kind {
	case session.Verifying:
		return c.Render(http.StatusOK, "loading", nil)
	case session.LoggedIn:
		return c.Redirect(http.StatusSeeOther, roleHome(st.Role()))
	}
	if c.QueryParam("register") != "" {
		return c.Render(http.StatusOK, "register", registerPage{Errors: forms.Errors{}})
	}
	return c.Render(http.StatusOK, "login", loginPage{})
}

// Login handles the sign-in form. Credential rejection re-renders the
// form with the backend's message; an accepted login that then fails
// identity resolution is a hard failure, not a half-open session.
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	ctx := c.Request().Context()

	token, id, err := h.gw.Login(ctx, email, password)
	if err != nil {
		return h.loginFailed(c, email, err)
	}

	sid, err := session.NewID()
	if err != nil {
		return h.loginFailed(c, email, err)
	}
	if _, err := h.sessions.Login(ctx, sid, id, token); err != nil {
		return h.loginFailed(c, email, err)
	}

	session.SetCookie(c.Response(), sid, h.cookieTTL, h.cookieSecure)
	metrics.LoginsTotal.WithLabelValues("login", "ok").Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) loginFailed(c echo.Context, email string, err error) error {
	msg := "Unable to sign in. Please try again."
	result := "error"
	var ge *gateway.Error
	if errors.As(err, &ge) {
		msg = ge.Message
		result = "rejected"
	}
	metrics.LoginsTotal.WithLabelValues("login", result).Inc()
	return c.Render(http.StatusOK, "login", loginPage{Error: msg, Email: email})
}

// Register handles the public registration form. Local validation runs
// first; the backend is only contacted with a draft that already passes
// every field rule. A successful signup logs the new account straight in.
func (h *AuthHandler) Register(c echo.Context) error {
	var draft forms.RegisterDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if errs := draft.Validate(); !errs.Valid() {
		return c.Render(http.StatusOK, "register", registerPage{Draft: draft, Errors: errs})
	}

	ctx := c.Request().Context()
	token, id, err := h.gw.Signup(ctx, ports.SignupInput{
		Name:     draft.Name,
		Email:    draft.Email,
		Address:  draft.Address,
		Password: draft.Password,
	})
	if err != nil {
		return h.registerFailed(c, draft, err)
	}

	sid, err := session.NewID()
	if err != nil {
		return h.registerFailed(c, draft, err)
	}
	if _, err := h.sessions.Login(ctx, sid, id, token); err != nil {
		return h.registerFailed(c, draft, err)
	}

	session.SetCookie(c.Response(), sid, h.cookieTTL, h.cookieSecure)
	metrics.LoginsTotal.WithLabelValues("register", "ok").Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) registerFailed(c echo.Context, draft forms.RegisterDraft, err error) error {
	msg := "Unable to create the account. Please try again."
	result := "error"
	var ge *gateway.Error
	if errors.As(err, &ge) {
		msg = ge.Message
		result = "rejected"
	}
	metrics.LoginsTotal.WithLabelValues("register", result).Inc()
	return c.Render(http.StatusOK, "register", registerPage{
		Draft:  draft,
		Errors: forms.Errors{"submit": msg},
	})
}

// Logout discards the session and any in-progress owner search, clears
// the cookie and lands back on the sign-in page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := apimw.SIDFrom(c); sid != "" {
		h.sessions.Logout(c.Request().Context(), sid)
		h.searches.Reset(sid)
	}
	session.ClearCookie(c.Response(), h.cookieSecure)
	return c.Redirect(http.StatusSeeOther, "/")
}

// roleHome maps a role to the one dashboard it may see.
func roleHome(role string) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleStoreOwner:
		return "/owner"
	default:
		return "/stores"
	}
}
