package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/gateway"
	"github.com/ratehub/storefront/internal/view"
)

func newErrorContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler_Forbidden(t *testing.T) {
	c, rec := newErrorContext(t)
	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "You do not have access to this page.") {
		t.Fatalf("forbidden message not rendered")
	}
}

func TestErrorHandler_BackendRejection(t *testing.T) {
	c, rec := newErrorContext(t)
	NewHTTPErrorHandler(zerolog.Nop())(&gateway.Error{Status: http.StatusConflict, Message: "Email already exists"}, c)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already exists") {
		t.Fatalf("backend message not surfaced")
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	c, rec := newErrorContext(t)
	NewHTTPErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	c, rec := newErrorContext(t)
	NewHTTPErrorHandler(zerolog.Nop())(errors.New("boom"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("internal error details must not leak")
	}
}
