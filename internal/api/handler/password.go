package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/forms"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/gateway"
)

// PasswordHandler serves the password-change page shared by every role.
type PasswordHandler struct {
	gw ports.Gateway
}

func NewPasswordHandler(gw ports.Gateway) *PasswordHandler {
	return &PasswordHandler{gw: gw}
}

// passwordPage backs the password-change template. BackURL points at the
// caller's own dashboard.
type passwordPage struct {
	Title   string
	User    *domain.User
	Errors  forms.Errors
	BackURL string
}

// Show renders an empty password-change form.
func (h *PasswordHandler) Show(c echo.Context) error {
	st := apimw.StateFrom(c)
	return c.Render(http.StatusOK, "password", passwordPage{
		Title:   "Change Password",
		User:    st.Identity,
		Errors:  forms.Errors{},
		BackURL: roleHome(st.Role()),
	})
}

// Update validates the new password locally before asking the backend to
// change it; a wrong current password comes back as the backend's message.
func (h *PasswordHandler) Update(c echo.Context) error {
	st := apimw.StateFrom(c)

	var draft forms.PasswordChangeDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	page := passwordPage{
		Title:   "Change Password",
		User:    st.Identity,
		BackURL: roleHome(st.Role()),
	}
	if page.Errors = draft.Validate(); !page.Errors.Valid() {
		return c.Render(http.StatusOK, "password", page)
	}

	err := h.gw.UpdatePassword(c.Request().Context(), st.Token, draft.OldPassword, draft.NewPassword)
	if err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) {
			page.Errors["submit"] = ge.Message
			return c.Render(http.StatusOK, "password", page)
		}
		return err
	}

	setFlash(c, "Password updated successfully")
	return c.Redirect(http.StatusSeeOther, page.BackURL)
}
